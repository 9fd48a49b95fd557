package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// CredentialEnv names the API key variable.
const CredentialEnv = "CLAUDE_API_KEY"

// DotEnvFile is read from the working directory when CredentialEnv is unset.
const DotEnvFile = ".env"

var (
	// ErrMissingCredential means neither the environment nor .env set a key.
	ErrMissingCredential = errors.New(CredentialEnv + " is not set")
	// ErrInvalidCredential means the key does not look like an Anthropic key.
	ErrInvalidCredential = errors.New(CredentialEnv + " has an invalid format")
)

var credentialPattern = regexp.MustCompile(`^sk-[A-Za-z0-9_-]{40,}$`)

// LoadCredential returns the API key from the environment, falling back to
// the .env file in dir. The key must start with "sk-" followed by at least 40
// letters, digits, '-' or '_'.
func LoadCredential(dir string) (string, error) {
	key := strings.TrimSpace(os.Getenv(CredentialEnv))
	if key == "" {
		var err error
		key, err = readDotEnv(filepath.Join(dir, DotEnvFile))
		if err != nil {
			return "", err
		}
	}
	if key == "" {
		return "", ErrMissingCredential
	}
	if !credentialPattern.MatchString(key) {
		return "", ErrInvalidCredential
	}
	return key, nil
}

func readDotEnv(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(v.GetString(CredentialEnv)), nil
}
