package feature

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// specTemplate is parsed once at startup; the template is embedded, so a
// parse failure is a packaging bug.
var specTemplate = template.Must(template.ParseFS(templateFS, "templates/spec.md"))

// specData is the render context for the spec template.
type specData struct {
	Title string
	Slug  string
	Stamp string
	Tag   string
	UC    string
	US    string
	FR    string
	NFR   string
}

// renderSpec renders the embedded spec template for a feature.
func renderSpec(meta *Metadata) ([]byte, error) {
	data := specData{
		Title: meta.Title(),
		Slug:  meta.Slug,
		Stamp: meta.Stamp,
		Tag:   meta.Tag,
		UC:    meta.ID("UC", 1),
		US:    meta.ID("US", 1),
		FR:    meta.ID("FR", 1),
		NFR:   meta.ID("NFR", 1),
	}

	var buf bytes.Buffer
	if err := specTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering spec template: %w", err)
	}
	return buf.Bytes(), nil
}
