// Package feature scaffolds feature spec folders keyed by hallmark tags.
//
// A feature lives at <specs-dir>/<stamp>-<slug>/ and contains a rendered
// SPEC.md plus a feature.json metadata file. The tag derived from the stamp
// is embedded in the spec's requirement IDs (UC/US/FR/NFR), which keeps
// every requirement traceable to the feature it belongs to.
package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gorewood/hallmark/internal/tag"
)

// SchemaVersion is the current schema version for feature metadata.
const SchemaVersion = "hallmark.feature/v1"

// DefaultSpecsDir is where feature folders are created unless overridden
// by --dir or HALLMARK_SPECS_DIR.
const DefaultSpecsDir = "specs"

// MetadataFile is the name of the per-feature metadata file.
const MetadataFile = "feature.json"

// SpecFile is the name of the rendered spec document.
const SpecFile = "SPEC.md"

// slugRegex constrains slugs to lowercase kebab-case, 1-64 characters.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// maxSlugLength caps slug length to keep folder names readable.
const maxSlugLength = 64

// Metadata is the persisted description of a feature.
type Metadata struct {
	Schema    string    `json:"schema"`
	Slug      string    `json:"slug"`
	Stamp     string    `json:"stamp"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
}

// Feature pairs feature metadata with its folder location.
type Feature struct {
	Metadata
	Dir string `json:"dir"`
}

// FolderName returns the feature folder name: <stamp>-<slug>.
func (m *Metadata) FolderName() string {
	return m.Stamp + "-" + m.Slug
}

// ID returns a seed requirement ID for the feature, e.g. "FR-0Fy0-001".
func (m *Metadata) ID(kind string, n int) string {
	return fmt.Sprintf("%s-%s-%03d", kind, m.Tag, n)
}

// ValidateSlug checks that a slug is lowercase kebab-case within length limits.
func ValidateSlug(slug string) error {
	if slug == "" {
		return errors.New("slug must not be empty")
	}
	if len(slug) > maxSlugLength {
		return fmt.Errorf("slug exceeds %d characters", maxSlugLength)
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("slug %q must be lowercase letters, digits, and hyphens", slug)
	}
	return nil
}

// NewMetadata builds feature metadata for a slug at a given instant.
// The instant is truncated to the minute and must be inside the tag domain.
func NewMetadata(slug string, t time.Time) (*Metadata, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	encoded, err := tag.Encode(t)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Schema:    SchemaVersion,
		Slug:      slug,
		Stamp:     tag.FormatStamp(t),
		Tag:       encoded,
		CreatedAt: t.UTC().Truncate(time.Minute),
	}, nil
}

// ToJSON serializes the metadata with indentation for on-disk readability.
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing feature metadata: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes feature metadata, rejecting other schemas.
func FromJSON(data []byte) (*Metadata, error) {
	if len(data) == 0 {
		return nil, errors.New("empty JSON data")
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing feature metadata: %w", err)
	}
	if m.Schema != SchemaVersion {
		return nil, fmt.Errorf("unexpected schema %q, want %q", m.Schema, SchemaVersion)
	}
	return &m, nil
}
