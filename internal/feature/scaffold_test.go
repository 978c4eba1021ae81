package feature

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/hallmark/internal/output"
)

var testStamp = time.Date(2026, 2, 12, 15, 0, 0, 0, time.UTC)

func TestNew_CreatesFolder(t *testing.T) {
	specsDir := filepath.Join(t.TempDir(), "specs")

	feat, err := New(specsDir, "user-auth", testStamp)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	wantDir := filepath.Join(specsDir, "20260212-1500-user-auth")
	if feat.Dir != wantDir {
		t.Errorf("Dir = %q, want %q", feat.Dir, wantDir)
	}

	spec, err := os.ReadFile(filepath.Join(feat.Dir, SpecFile))
	if err != nil {
		t.Fatalf("reading SPEC.md: %v", err)
	}
	for _, want := range []string{"# User Auth", "UC-0Fy0-001", "US-0Fy0-001", "FR-0Fy0-001", "NFR-0Fy0-001", "20260212-1500"} {
		if !strings.Contains(string(spec), want) {
			t.Errorf("SPEC.md missing %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(feat.Dir, MetadataFile)); err != nil {
		t.Errorf("feature.json not written: %v", err)
	}
}

func TestNew_ConflictOnExistingFolder(t *testing.T) {
	specsDir := filepath.Join(t.TempDir(), "specs")

	if _, err := New(specsDir, "user-auth", testStamp); err != nil {
		t.Fatalf("first New() error = %v", err)
	}

	_, err := New(specsDir, "user-auth", testStamp)
	if output.GetExitCode(err) != output.ExitConflict {
		t.Errorf("second New() exit code = %d, want %d (err: %v)", output.GetExitCode(err), output.ExitConflict, err)
	}
}

func TestNew_RejectsBadSlug(t *testing.T) {
	_, err := New(t.TempDir(), "Bad Slug", testStamp)
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("New(bad slug) exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
}

func TestNew_RejectsPreEpochStamp(t *testing.T) {
	_, err := New(t.TempDir(), "auth", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("New(pre-epoch) exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
}

func TestPlan_DoesNotWrite(t *testing.T) {
	specsDir := filepath.Join(t.TempDir(), "specs")

	feat, err := Plan(specsDir, "user-auth", testStamp)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if feat.Tag != "0Fy0" {
		t.Errorf("Tag = %q, want %q", feat.Tag, "0Fy0")
	}
	if _, err := os.Stat(specsDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Plan() should not create the specs directory")
	}
}

func TestLoad(t *testing.T) {
	specsDir := filepath.Join(t.TempDir(), "specs")
	created, err := New(specsDir, "user-auth", testStamp)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	loaded, err := Load(created.Dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Tag != created.Tag || loaded.Slug != created.Slug {
		t.Errorf("Load() = %+v, want %+v", loaded.Metadata, created.Metadata)
	}
}

func TestLoad_NotAFeatureFolder(t *testing.T) {
	_, err := Load(t.TempDir())
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("Load(empty dir) exit code = %d, want %d", output.GetExitCode(err), output.ExitUserError)
	}
}

func TestList(t *testing.T) {
	specsDir := filepath.Join(t.TempDir(), "specs")

	later := testStamp.Add(90 * time.Minute)
	if _, err := New(specsDir, "second", later); err != nil {
		t.Fatalf("New(second) error = %v", err)
	}
	if _, err := New(specsDir, "first", testStamp); err != nil {
		t.Fatalf("New(first) error = %v", err)
	}

	// A stray non-feature folder should be skipped.
	if err := os.MkdirAll(filepath.Join(specsDir, "not-a-feature"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	features, err := List(specsDir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("List() returned %d features, want 2", len(features))
	}
	if features[0].Slug != "first" || features[1].Slug != "second" {
		t.Errorf("List() order = [%s, %s], want [first, second]", features[0].Slug, features[1].Slug)
	}
}

func TestList_MissingDirIsEmpty(t *testing.T) {
	features, err := List(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List(missing) error = %v", err)
	}
	if len(features) != 0 {
		t.Errorf("List(missing) = %d features, want 0", len(features))
	}
}
