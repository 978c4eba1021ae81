// Package skill loads hallmark skill documents.
//
// A skill is a markdown document with YAML frontmatter (name, description)
// that teaches an agent how to use hallmark: tagging conventions, feature
// scaffolding, session discipline. Built-in skills ship embedded in the
// binary and can be overridden per project or per user.
package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/hallmark/internal/config"
)

// Document represents a skill document with metadata and content.
type Document struct {
	// Metadata from frontmatter
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     int    `yaml:"version,omitempty"`

	// Markdown body (after frontmatter)
	Content string `yaml:"-"`

	// Source location for display
	Source string `yaml:"-"`
}

// Info provides skill metadata for listing.
type Info struct {
	Name        string
	Description string
	Source      string // "built-in", "global", or "project"
	Overrides   string // empty or the source this entry shadows
}

// Load finds and loads a skill by name.
// Resolution order: project-local → user global → built-in.
func Load(name string) (*Document, error) {
	if doc, err := loadFromPath(projectSkillsDir(), name); err == nil {
		doc.Source = "project"
		return doc, nil
	}

	if doc, err := loadFromPath(globalSkillsDir(), name); err == nil {
		doc.Source = "global"
		return doc, nil
	}

	if doc, err := loadBuiltin(name); err == nil {
		doc.Source = "built-in"
		return doc, nil
	}

	return nil, fmt.Errorf("skill %q not found", name)
}

// List returns all available skills, with overrides marked.
func List() ([]Info, error) {
	seen := make(map[string]string) // name -> first source
	var skills []Info

	sources := []struct {
		name string
		dir  string
	}{
		{"project", projectSkillsDir()},
		{"global", globalSkillsDir()},
	}

	for _, src := range sources {
		infos, err := listFromPath(src.dir, src.name)
		if err != nil {
			continue // directory might not exist
		}
		for _, info := range infos {
			if _, exists := seen[info.Name]; !exists {
				seen[info.Name] = src.name
				skills = append(skills, info)
			}
		}
	}

	// Built-ins always appear; shadowed ones are marked with what hides them.
	for _, info := range listBuiltins() {
		if overrideSource, exists := seen[info.Name]; exists {
			info.Overrides = overrideSource
		}
		skills = append(skills, info)
	}

	return skills, nil
}

// projectSkillsDir returns the project-local skills directory.
func projectSkillsDir() string {
	return ".hallmark/skills"
}

// globalSkillsDir returns the user's global skills directory.
func globalSkillsDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "skills")
}

// loadFromPath attempts to load a skill from a directory.
func loadFromPath(dir, name string) (*Document, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill %s: %w", path, err)
	}

	return parseDocument(string(data))
}

// listFromPath lists skills in a directory.
func listFromPath(dir, source string) ([]Info, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var skills []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		doc, err := parseDocument(string(data))
		if err != nil {
			continue
		}

		skills = append(skills, Info{
			Name:        name,
			Description: doc.Description,
			Source:      source,
		})
	}

	return skills, nil
}

// parseDocument parses a skill from raw content with YAML frontmatter.
func parseDocument(raw string) (*Document, error) {
	frontmatter, content := splitFrontmatter(raw)

	var doc Document
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &doc); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	doc.Content = strings.TrimSpace(content)
	return &doc, nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:] // skip opening ---
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}
