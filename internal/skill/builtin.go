package skill

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed skills/*.md
var builtinFS embed.FS

// loadBuiltin loads a built-in skill by name.
func loadBuiltin(name string) (*Document, error) {
	path := "skills/" + name + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin skill %s: %w", path, err)
	}
	return parseDocument(string(data))
}

// listBuiltins returns info for all built-in skills.
func listBuiltins() []Info {
	dirEntries, err := builtinFS.ReadDir("skills")
	if err != nil {
		return nil
	}

	var skills []Info
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		data, err := builtinFS.ReadFile("skills/" + entry.Name())
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
			Source:      "built-in",
		})
	}

	return skills
}
