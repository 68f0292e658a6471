// Package credentials validates what the user types into the signup and
// login forms before anything is sent over the network.
package credentials

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// SpecialChars is the set of characters that satisfy the special-character rule.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return email != "" && emailRe.MatchString(email)
}

// PasswordChecks is the result of evaluating the five strength rules.
// Each field is computed independently of the others.
type PasswordChecks struct {
	Length    bool
	Uppercase bool
	Lowercase bool
	Number    bool
	Special   bool
}

// CheckPassword evaluates every strength rule against password.
func CheckPassword(password string) PasswordChecks {
	var c PasswordChecks
	c.Length = utf8.RuneCountInString(password) >= MinPasswordLength
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.Uppercase = true
		case r >= 'a' && r <= 'z':
			c.Lowercase = true
		case r >= '0' && r <= '9':
			c.Number = true
		case strings.ContainsRune(SpecialChars, r):
			c.Special = true
		}
	}
	return c
}

// AllPassed is true iff every rule holds.
func (c PasswordChecks) AllPassed() bool {
	return c.Length && c.Uppercase && c.Lowercase && c.Number && c.Special
}

// Rule is one line of the checklist shown under the password field.
type Rule struct {
	Label  string
	Passed bool
}

// Rules lists the checks in display order.
func (c PasswordChecks) Rules() []Rule {
	return []Rule{
		{Label: "At least 8 characters", Passed: c.Length},
		{Label: "One uppercase letter (A-Z)", Passed: c.Uppercase},
		{Label: "One lowercase letter (a-z)", Passed: c.Lowercase},
		{Label: "One number (0-9)", Passed: c.Number},
		{Label: "One special character (!@#$%^&*)", Passed: c.Special},
	}
}
