package skill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	raw := `---
name: example
description: An example skill
version: 2
---

# Example

Body text.`

	doc, err := parseDocument(raw)
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if doc.Name != "example" {
		t.Errorf("Name = %q, want %q", doc.Name, "example")
	}
	if doc.Description != "An example skill" {
		t.Errorf("Description = %q", doc.Description)
	}
	if doc.Version != 2 {
		t.Errorf("Version = %d, want 2", doc.Version)
	}
	if !strings.HasPrefix(doc.Content, "# Example") {
		t.Errorf("Content = %q, want markdown body", doc.Content)
	}
}

func TestParseDocument_NoFrontmatter(t *testing.T) {
	doc, err := parseDocument("# Just markdown\n\nNo metadata.")
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if doc.Name != "" {
		t.Errorf("Name = %q, want empty", doc.Name)
	}
	if !strings.HasPrefix(doc.Content, "# Just markdown") {
		t.Errorf("Content = %q", doc.Content)
	}
}

func TestParseDocument_InvalidFrontmatter(t *testing.T) {
	_, err := parseDocument("---\nname: [unclosed\n---\nbody")
	if err == nil {
		t.Fatal("parseDocument() should reject invalid YAML frontmatter")
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		wantFrontmatter string
		wantContent     string
	}{
		{"with frontmatter", "---\nname: x\n---\nbody", "name: x", "body"},
		{"no frontmatter", "plain body", "", "plain body"},
		{"unterminated", "---\nname: x\nbody", "", "---\nname: x\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, content := splitFrontmatter(tt.raw)
			if fm != tt.wantFrontmatter || content != tt.wantContent {
				t.Errorf("splitFrontmatter() = (%q, %q), want (%q, %q)", fm, content, tt.wantFrontmatter, tt.wantContent)
			}
		})
	}
}

func TestLoadBuiltins(t *testing.T) {
	for _, name := range []string{"tagging", "features", "sessions"} {
		doc, err := loadBuiltin(name)
		if err != nil {
			t.Errorf("loadBuiltin(%q) error = %v", name, err)
			continue
		}
		if doc.Name != name {
			t.Errorf("loadBuiltin(%q).Name = %q", name, doc.Name)
		}
		if doc.Description == "" {
			t.Errorf("loadBuiltin(%q) has empty description", name)
		}
		if doc.Content == "" {
			t.Errorf("loadBuiltin(%q) has empty content", name)
		}
	}
}

func TestLoad_BuiltinFallback(t *testing.T) {
	chdirTemp(t)

	doc, err := Load("tagging")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Source != "built-in" {
		t.Errorf("Source = %q, want %q", doc.Source, "built-in")
	}
}

func TestLoad_ProjectOverridesBuiltin(t *testing.T) {
	dir := chdirTemp(t)

	override := "---\nname: tagging\ndescription: project override\n---\ncustom content"
	skillsDir := filepath.Join(dir, ".hallmark", "skills")
	if err := os.MkdirAll(skillsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(skillsDir, "tagging.md"), []byte(override), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	doc, err := Load("tagging")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Source != "project" {
		t.Errorf("Source = %q, want %q", doc.Source, "project")
	}
	if doc.Description != "project override" {
		t.Errorf("Description = %q, want override", doc.Description)
	}
}

func TestLoad_NotFound(t *testing.T) {
	chdirTemp(t)

	if _, err := Load("no-such-skill"); err == nil {
		t.Fatal("Load() should fail for unknown skills")
	}
}

func TestList_IncludesBuiltinsAndMarksOverrides(t *testing.T) {
	dir := chdirTemp(t)

	override := "---\nname: sessions\ndescription: project override\n---\nbody"
	skillsDir := filepath.Join(dir, ".hallmark", "skills")
	if err := os.MkdirAll(skillsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(skillsDir, "sessions.md"), []byte(override), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	skills, err := List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	found := make(map[string]Info)
	for _, info := range skills {
		found[info.Name+"/"+info.Source] = info
	}

	if _, ok := found["tagging/built-in"]; !ok {
		t.Error("List() missing built-in tagging skill")
	}
	if _, ok := found["sessions/project"]; !ok {
		t.Error("List() missing project sessions override")
	}
	if info, ok := found["sessions/built-in"]; !ok || info.Overrides != "project" {
		t.Errorf("built-in sessions should be marked as overridden, got %+v", info)
	}
}

// chdirTemp moves the test into a temp dir (project-local skill resolution
// is cwd-relative) and points the global config dir away from the user's.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HALLMARK_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}
