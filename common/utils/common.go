package utils

import (
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
)

func HomeDir() string {
	if home, err := homedir.Dir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	return homedir.Expand(p)
}

// FindProjectRoot finds the project root directory
func FindProjectRoot(startDir string) string {
	// Start from the current directory and move up to find go.mod file
	dir := startDir
	for {
		if _, err := os.Stat(path.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parentDir := path.Dir(dir)
		if parentDir == dir {
			// Reached root but couldn't find go.mod
			return startDir
		}
		dir = parentDir
	}
}
