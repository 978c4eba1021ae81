package feature

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/tag"
)

// Plan computes the feature that New would create, without touching disk.
// Used by --dry-run and by the scaffold itself.
func Plan(specsDir, slug string, t time.Time) (*Feature, error) {
	meta, err := NewMetadata(slug, t)
	if err != nil {
		return nil, userOrDomainError(err)
	}
	return &Feature{
		Metadata: *meta,
		Dir:      filepath.Join(specsDir, meta.FolderName()),
	}, nil
}

// New creates the feature folder with a rendered SPEC.md and feature.json.
// Returns a conflict error if the folder already exists.
func New(specsDir, slug string, t time.Time) (*Feature, error) {
	feat, err := Plan(specsDir, slug, t)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(feat.Dir); err == nil {
		return nil, output.NewConflictError("feature folder already exists: " + feat.Dir)
	}

	if err := os.MkdirAll(feat.Dir, 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create feature folder", err)
	}

	spec, err := renderSpec(&feat.Metadata)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to render spec template", err)
	}
	if err := atomicWrite(filepath.Join(feat.Dir, SpecFile), spec); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to write spec", err)
	}

	meta, err := feat.Metadata.ToJSON()
	if err != nil {
		return nil, output.NewSystemError(err.Error())
	}
	if err := atomicWrite(filepath.Join(feat.Dir, MetadataFile), meta); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to write feature metadata", err)
	}

	return feat, nil
}

// Load reads a feature back from its folder.
func Load(dir string) (*Feature, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewUserError("not a feature folder: " + dir)
		}
		return nil, output.NewSystemErrorWithCause("failed to read feature metadata", err)
	}

	meta, err := FromJSON(data)
	if err != nil {
		return nil, output.NewUserError("failed to parse feature metadata: " + err.Error())
	}
	return &Feature{Metadata: *meta, Dir: dir}, nil
}

// List returns all features under a specs directory, sorted by folder name
// (which sorts by stamp, and therefore by tag). Folders without parseable
// metadata are skipped. Returns an empty slice if the directory is missing.
func List(specsDir string) ([]*Feature, error) {
	dirEntries, err := os.ReadDir(specsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, output.NewSystemErrorWithCause("failed to read specs directory", err)
	}

	var features []*Feature
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		feat, err := Load(filepath.Join(specsDir, entry.Name()))
		if err != nil {
			continue
		}
		features = append(features, feat)
	}
	return features, nil
}

// userOrDomainError maps tag-domain and validation failures to user errors.
func userOrDomainError(err error) error {
	switch {
	case errors.Is(err, tag.ErrBeforeEpoch):
		return output.NewUserError("timestamp precedes the tag epoch (2026-01-01 00:00 UTC)")
	case errors.Is(err, tag.ErrOutOfRange):
		return output.NewUserError("timestamp is past the encodable range (~2054)")
	default:
		return output.NewUserError(err.Error())
	}
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Title derives a human title from the slug: "user-auth" -> "User Auth".
func (m *Metadata) Title() string {
	words := strings.Split(m.Slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
