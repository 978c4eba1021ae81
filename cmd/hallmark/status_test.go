package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatusCommand_JSON(t *testing.T) {
	root := t.TempDir()
	specsDir := filepath.Join(root, "specs")
	sessionsDir := filepath.Join(root, "sessions")

	if _, err := execCmd(t, "new", "user-auth", "--at", "20260212-1500", "--dir", specsDir); err != nil {
		t.Fatalf("new error = %v", err)
	}
	if _, err := execCmd(t, "session", "start", "base62-research", "--dir", sessionsDir); err != nil {
		t.Fatalf("session start error = %v", err)
	}

	out, err := execCmd(t, "status", "--specs-dir", specsDir, "--sessions-dir", sessionsDir, "--json")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}

	var result statusResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if result.Epoch != "2026-01-01T00:00:00Z" {
		t.Errorf("epoch = %q", result.Epoch)
	}
	if result.MaxOffset != 14776335 {
		t.Errorf("max_offset = %d, want 14776335", result.MaxOffset)
	}
	if result.FeatureCount != 1 {
		t.Errorf("feature_count = %d, want 1", result.FeatureCount)
	}
	if result.SessionCount != 1 {
		t.Errorf("session_count = %d, want 1", result.SessionCount)
	}
	if result.ActiveSession == "" {
		t.Error("active_session should be set")
	}
}

func TestStatusCommand_MissingDirs(t *testing.T) {
	root := t.TempDir()

	out, err := execCmd(t, "status",
		"--specs-dir", filepath.Join(root, "nope-specs"),
		"--sessions-dir", filepath.Join(root, "nope-sessions"))
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if !strings.Contains(out, "(missing)") {
		t.Errorf("output should flag missing directories: %q", out)
	}
}
