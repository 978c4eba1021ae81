// Package session manages timestamped research session directories.
//
// A session lives at <sessions-dir>/<stamp>-<topic>/ and holds a
// session.json metadata file plus an append-only findings.log. Sessions
// carry the same base-62 tag as feature folders, so research notes and
// the features they led to can be cross-referenced by tag.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// SchemaVersion is the current schema version for session metadata.
const SchemaVersion = "hallmark.session/v1"

// DefaultSessionsDir is where sessions are created unless overridden
// by --dir or HALLMARK_SESSIONS_DIR.
const DefaultSessionsDir = "research/sessions"

// MetadataFile is the name of the per-session metadata file.
const MetadataFile = "session.json"

// LogFile is the name of the append-only findings log.
const LogFile = "findings.log"

// Session status values.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// ErrNoActiveSession is returned when an operation needs an active session
// and none exists.
var ErrNoActiveSession = errors.New("no active session")

// topicRegex constrains topics to lowercase kebab-case, like feature slugs.
var topicRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// maxTopicLength caps topic length to keep folder names readable.
const maxTopicLength = 64

// Session is the persisted description of a research session.
type Session struct {
	Schema    string     `json:"schema"`
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Stamp     string     `json:"stamp"`
	Tag       string     `json:"tag"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Summary   string     `json:"summary,omitempty"`

	// Dir is the session folder; derived from location, not persisted.
	Dir string `json:"-"`
}

// FolderName returns the session folder name: <stamp>-<topic>.
func (s *Session) FolderName() string {
	return s.Stamp + "-" + s.Topic
}

// ValidateTopic checks that a topic is lowercase kebab-case within limits.
func ValidateTopic(topic string) error {
	if topic == "" {
		return errors.New("topic must not be empty")
	}
	if len(topic) > maxTopicLength {
		return fmt.Errorf("topic exceeds %d characters", maxTopicLength)
	}
	if !topicRegex.MatchString(topic) {
		return fmt.Errorf("topic %q must be lowercase letters, digits, and hyphens", topic)
	}
	return nil
}

// ToJSON serializes the session with indentation for on-disk readability.
func (s *Session) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing session metadata: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes session metadata, rejecting other schemas.
func FromJSON(data []byte) (*Session, error) {
	if len(data) == 0 {
		return nil, errors.New("empty JSON data")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session metadata: %w", err)
	}
	if s.Schema != SchemaVersion {
		return nil, fmt.Errorf("unexpected schema %q, want %q", s.Schema, SchemaVersion)
	}
	return &s, nil
}
