package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir creates dir, resolved against the working directory when
// relative, and returns its absolute path. The directory holds the session
// token, so it is readable by the owner only.
func EnsureDataDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
