package util

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GetProjectRoot prefers WORKING_DIRECTORY, then the enclosing go module,
// then the current directory.
func GetProjectRoot() (string, error) {
	dir, set := os.LookupEnv("WORKING_DIRECTORY")
	if set {
		return filepath.Dir(dir), nil
	}

	cmd := exec.Command("go", "env", "GOMOD")
	stdout, err := cmd.Output()
	if err == nil {
		gomod := strings.TrimSpace(string(stdout))
		if gomod != "" && gomod != os.DevNull {
			return filepath.Dir(gomod), nil
		}
	}

	return os.Getwd()
}
