package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	return path
}

func TestLoad_SetsVariables(t *testing.T) {
	t.Setenv("HALLMARK_SPECS_DIR", "")
	path := writeEnvFile(t, "HALLMARK_SPECS_DIR=./docs/specs\n")

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := os.Getenv("HALLMARK_SPECS_DIR"); got != "./docs/specs" {
		t.Errorf("HALLMARK_SPECS_DIR = %q, want %q", got, "./docs/specs")
	}
}

func TestLoad_EnvironmentTakesPrecedence(t *testing.T) {
	t.Setenv("HALLMARK_SESSIONS_DIR", "/already/set")
	path := writeEnvFile(t, "HALLMARK_SESSIONS_DIR=/from/file\n")

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := os.Getenv("HALLMARK_SESSIONS_DIR"); got != "/already/set" {
		t.Errorf("HALLMARK_SESSIONS_DIR = %q, environment should win", got)
	}
}

func TestLoad_MissingFileIsNil(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("Load(missing) error = %v, want nil", err)
	}
}

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	t.Setenv("HALLMARK_TEST_KEY", "")
	path := writeEnvFile(t, "# comment\n\nHALLMARK_TEST_KEY=value\n")

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := os.Getenv("HALLMARK_TEST_KEY"); got != "value" {
		t.Errorf("HALLMARK_TEST_KEY = %q, want %q", got, "value")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"plain", "KEY=value", "KEY", "value", true},
		{"export prefix", "export KEY=value", "KEY", "value", true},
		{"double quoted", `KEY="a value"`, "KEY", "a value", true},
		{"single quoted", "KEY='a value'", "KEY", "a value", true},
		{"no equals", "KEY", "", "", false},
		{"empty key", "=value", "", "", false},
		{"empty value", "KEY=", "KEY", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := parseLine(tt.line)
			if ok != tt.wantOK || key != tt.wantKey || value != tt.wantValue {
				t.Errorf("parseLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, key, value, ok, tt.wantKey, tt.wantValue, tt.wantOK)
			}
		})
	}
}
