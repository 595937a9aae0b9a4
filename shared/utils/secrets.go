package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir is where Docker mounts secrets.
const DefaultSecretsDir = "/run/secrets"

// ErrSecretNotFound is returned when the secret file does not exist.
var ErrSecretNotFound = errors.New("secret not found")

// ReadSecret reads the secret called name from dir. Surrounding whitespace is
// trimmed and an empty file is an error. There is no environment fallback.
func ReadSecret(dir, name string) (string, error) {
	if dir == "" {
		dir = DefaultSecretsDir
	}
	filePath := filepath.Join(dir, name)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, filePath)
		}
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}
