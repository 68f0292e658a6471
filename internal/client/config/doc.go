// Package config loads runtime configuration for the Lynq CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: LYNQ_API_URL, LYNQ_LOG_LEVEL.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the authentication API
//	-d string   directory holding the local database
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations are strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.lynq.chat",
//	  "data_dir": ".lynq",
//	  "request_timeout": "15s",
//	  "conflict_redirect_delay": "2s",
//	  "resend_notice_ttl": "3s",
//	  "log_level": "info"
//	}
package config
