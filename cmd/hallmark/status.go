package main

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/feature"
	"github.com/gorewood/hallmark/internal/session"
	"github.com/gorewood/hallmark/internal/tag"
)

// statusResult is the structured output of the status command.
type statusResult struct {
	Epoch         string `json:"epoch"`
	RangeEnd      string `json:"range_end"`
	MaxOffset     int    `json:"max_offset"`
	SpecsDir      string `json:"specs_dir"`
	SpecsDirOK    bool   `json:"specs_dir_exists"`
	FeatureCount  int    `json:"feature_count"`
	SessionsDir   string `json:"sessions_dir"`
	SessionsDirOK bool   `json:"sessions_dir_exists"`
	SessionCount  int    `json:"session_count"`
	ActiveSession string `json:"active_session,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var specsDirFlag string
	var sessionsDirFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tag domain and workspace state",
		Long: `Status shows the tag epoch, the end of the encodable range, and the
state of the specs and sessions directories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, specsDirFlag, sessionsDirFlag)
		},
	}

	cmd.Flags().StringVar(&specsDirFlag, "specs-dir", "", "Specs directory (default $HALLMARK_SPECS_DIR or specs)")
	cmd.Flags().StringVar(&sessionsDirFlag, "sessions-dir", "", "Sessions directory (default $HALLMARK_SESSIONS_DIR or research/sessions)")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, specsDirFlag, sessionsDirFlag string) error {
	printer := newPrinter(cmd)

	specsDir := resolveSpecsDir(specsDirFlag)
	sessionsDir := resolveSessionsDir(sessionsDirFlag)
	store := session.NewStore(sessionsDir, nil)

	features, err := feature.List(specsDir)
	if err != nil {
		printer.Error(err)
		return err
	}
	sessions, err := store.List()
	if err != nil {
		printer.Error(err)
		return err
	}

	result := statusResult{
		Epoch:         tag.Epoch.Format(time.RFC3339),
		RangeEnd:      tag.Time(tag.MaxOffset).Format(time.RFC3339),
		MaxOffset:     tag.MaxOffset,
		SpecsDir:      specsDir,
		SpecsDirOK:    dirExists(specsDir),
		FeatureCount:  len(features),
		SessionsDir:   sessionsDir,
		SessionsDirOK: dirExists(sessionsDir),
		SessionCount:  len(sessions),
	}
	if active, activeErr := store.Active(); activeErr == nil {
		result.ActiveSession = active.FolderName()
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Section("Tag Domain")
	printer.KeyValue("Epoch", result.Epoch)
	printer.KeyValue("Range end", result.RangeEnd)
	printer.KeyValue("Max offset", strconv.Itoa(result.MaxOffset))

	printer.Section("Workspace")
	printer.KeyValue("Specs dir", describeDir(result.SpecsDir, result.SpecsDirOK))
	printer.KeyValue("Features", strconv.Itoa(result.FeatureCount))
	printer.KeyValue("Sessions dir", describeDir(result.SessionsDir, result.SessionsDirOK))
	printer.KeyValue("Sessions", strconv.Itoa(result.SessionCount))
	if result.ActiveSession != "" {
		printer.KeyValue("Active session", result.ActiveSession)
	}
	return nil
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// describeDir annotates a directory path with its existence.
func describeDir(path string, exists bool) string {
	if exists {
		return path
	}
	return path + " (missing)"
}
