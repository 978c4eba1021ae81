package main

import (
	"bytes"
	"strings"
	"testing"
)

// execCmd runs the root command with args and returns combined output.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	out, err := execCmd(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "hallmark") {
		t.Errorf("--version output should contain 'hallmark': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execCmd(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	expectations := []string{
		"hallmark",
		"Usage:",
		"encode",
		"decode",
		"--json",
	}
	for _, expected := range expectations {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q: %q", expected, out)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	out, err := execCmd(t, "--json")
	if err == nil {
		t.Fatal("Execute() should fail when --json is set with no subcommand")
	}
	if !strings.Contains(out, `"error"`) {
		t.Errorf("JSON mode error output should be structured: %q", out)
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		commit      string
		date        string
		wantContain []string
	}{
		{"dev defaults", "dev", "none", "unknown", []string{"dev"}},
		{"release", "1.0.0", "abcdef1234567890", "2026-02-12", []string{"1.0.0", "abcdef1", "2026-02-12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, commit, date = tt.version, tt.commit, tt.date
			got := buildVersion()
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("buildVersion() = %q, should contain %q", got, want)
				}
			}
		})
	}
}
