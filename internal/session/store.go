package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/tag"
)

// Store provides file-based storage for research sessions.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a Store rooted at dir.
// If now is nil, time.Now is used. Tests inject a fixed clock.
func NewStore(dir string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{dir: dir, now: now}
}

// Dir returns the sessions directory path.
func (st *Store) Dir() string {
	return st.dir
}

// Start creates a new session folder with metadata and an empty findings log.
// Starting while another session is active is a conflict unless force is set.
func (st *Store) Start(topic string, force bool) (*Session, error) {
	if err := ValidateTopic(topic); err != nil {
		return nil, output.NewUserError(err.Error())
	}

	if !force {
		if active, err := st.Active(); err == nil {
			return nil, output.NewConflictError("session already active: " + active.FolderName() + " (use --force to start anyway)")
		} else if !errors.Is(err, ErrNoActiveSession) {
			return nil, err
		}
	}

	started := st.now().UTC().Truncate(time.Minute)
	encoded, err := tag.Encode(started)
	if err != nil {
		return nil, output.NewUserError("cannot tag session start time: " + err.Error())
	}

	sess := &Session{
		Schema:    SchemaVersion,
		ID:        uuid.NewString(),
		Topic:     topic,
		Stamp:     tag.FormatStamp(started),
		Tag:       encoded,
		Status:    StatusActive,
		StartedAt: started,
	}
	sess.Dir = filepath.Join(st.dir, sess.FolderName())

	if _, err := os.Stat(sess.Dir); err == nil {
		return nil, output.NewConflictError("session folder already exists: " + sess.Dir)
	}
	if err := os.MkdirAll(sess.Dir, 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create session folder", err)
	}

	if err := st.writeMetadata(sess); err != nil {
		return nil, err
	}

	// Touch the findings log so appends never race folder creation.
	logPath := filepath.Join(sess.Dir, LogFile)
	if err := os.WriteFile(logPath, nil, 0o644); err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create findings log", err)
	}

	return sess, nil
}

// Log appends a timestamped line to the active session's findings log.
// Returns the session and the exact line written.
func (st *Store) Log(message string) (*Session, string, error) {
	if message == "" {
		return nil, "", output.NewUserError("log message must not be empty")
	}

	sess, err := st.Active()
	if err != nil {
		return nil, "", err
	}

	line := st.now().UTC().Format(time.RFC3339) + " " + message + "\n"
	logPath := filepath.Join(sess.Dir, LogFile)

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", output.NewSystemErrorWithCause("failed to open findings log", err)
	}
	defer file.Close() //nolint:errcheck // close error surfaced by the write below

	if _, err := file.WriteString(line); err != nil {
		return nil, "", output.NewSystemErrorWithCause("failed to append to findings log", err)
	}

	return sess, line, nil
}

// End marks the active session as ended, recording the end time and an
// optional summary.
func (st *Store) End(summary string) (*Session, error) {
	sess, err := st.Active()
	if err != nil {
		return nil, err
	}

	ended := st.now().UTC().Truncate(time.Minute)
	sess.Status = StatusEnded
	sess.EndedAt = &ended
	sess.Summary = summary

	if err := st.writeMetadata(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Active returns the most recently started active session.
// Returns ErrNoActiveSession when none exists.
func (st *Store) Active() (*Session, error) {
	sessions, err := st.List()
	if err != nil {
		return nil, err
	}

	// List is sorted by folder name, which sorts by stamp; walk from the
	// newest end.
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Status == StatusActive {
			return sessions[i], nil
		}
	}
	return nil, ErrNoActiveSession
}

// List returns all sessions under the store directory, sorted by folder
// name (and therefore by stamp). Folders without parseable metadata are
// skipped. Returns an empty slice if the directory is missing.
func (st *Store) List() ([]*Session, error) {
	dirEntries, err := os.ReadDir(st.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, output.NewSystemErrorWithCause("failed to read sessions directory", err)
	}

	var sessions []*Session
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		sess, err := st.load(filepath.Join(st.dir, entry.Name()))
		if err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// load reads a session from its folder.
func (st *Store) load(dir string) (*Session, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, err
	}
	sess, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	sess.Dir = dir
	return sess, nil
}

// writeMetadata persists session metadata atomically.
func (st *Store) writeMetadata(sess *Session) error {
	data, err := sess.ToJSON()
	if err != nil {
		return output.NewSystemError(err.Error())
	}
	if err := atomicWrite(filepath.Join(sess.Dir, MetadataFile), data); err != nil {
		return output.NewSystemErrorWithCause("failed to write session metadata", err)
	}
	return nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
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
