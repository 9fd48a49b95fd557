package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var validKey = "sk-ant-api03-" + strings.Repeat("Ab9_", 12)

func TestLoadCredential(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		dotenv  string
		want    string
		wantErr error
	}{
		{name: "env", env: validKey, want: validKey},
		{name: "env trimmed", env: "  " + validKey + "\n", want: validKey},
		{name: "dotenv", dotenv: "CLAUDE_API_KEY=" + validKey + "\n", want: validKey},
		{name: "dotenv quoted", dotenv: `CLAUDE_API_KEY="` + validKey + `"` + "\n", want: validKey},
		{name: "env wins", env: validKey, dotenv: "CLAUDE_API_KEY=sk-other\n", want: validKey},
		{name: "missing", wantErr: ErrMissingCredential},
		{name: "dotenv without key", dotenv: "OTHER=1\n", wantErr: ErrMissingCredential},
		{name: "short", env: "sk-abc123", wantErr: ErrInvalidCredential},
		{name: "wrong prefix", env: "pk-" + strings.Repeat("a", 45), wantErr: ErrInvalidCredential},
		{name: "spaces inside", env: "sk-" + strings.Repeat("a", 20) + " " + strings.Repeat("b", 20), wantErr: ErrInvalidCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(CredentialEnv, tt.env)
			dir := t.TempDir()
			if tt.dotenv != "" {
				if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(tt.dotenv), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			got, err := LoadCredential(dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}
