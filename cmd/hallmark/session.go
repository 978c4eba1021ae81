package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/session"
)

// sessionResult is the structured output of session subcommands.
type sessionResult struct {
	ID      string `json:"id"`
	Topic   string `json:"topic"`
	Dir     string `json:"dir"`
	Tag     string `json:"tag"`
	Stamp   string `json:"stamp"`
	Status  string `json:"status"`
	Summary string `json:"summary,omitempty"`
	Line    string `json:"line,omitempty"`
}

// newSessionCmd creates the session command with its subcommands.
func newSessionCmd() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage research sessions",
		Long: `Session manages timestamped research session folders.

Each session is a folder under the sessions directory named
<stamp>-<topic>, holding session.json metadata and an append-only
findings.log. Sessions carry the same base-62 tags as features.

Examples:
  hallmark session start base62-research
  hallmark session log "found the alphabet ordering"
  hallmark session end --summary "alphabet and range confirmed"
  hallmark session status`,
	}

	cmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Sessions directory (default $HALLMARK_SESSIONS_DIR or research/sessions)")

	cmd.AddCommand(newSessionStartCmd(&dirFlag))
	cmd.AddCommand(newSessionLogCmd(&dirFlag))
	cmd.AddCommand(newSessionEndCmd(&dirFlag))
	cmd.AddCommand(newSessionStatusCmd(&dirFlag))

	return cmd
}

// sessionStore builds the store for the resolved sessions directory.
func sessionStore(dirFlag string) *session.Store {
	return session.NewStore(resolveSessionsDir(dirFlag), nil)
}

// newSessionStartCmd creates the session start subcommand.
func newSessionStartCmd(dirFlag *string) *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "start <topic>",
		Short: "Start a research session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			sess, err := sessionStore(*dirFlag).Start(args[0], forceFlag)
			if err != nil {
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(toSessionResult(sess, ""))
			}
			printer.KeyValue("Session", sess.FolderName())
			printer.KeyValue("Tag", printer.Styles().Tag.Render(sess.Tag))
			printer.KeyValue("Folder", sess.Dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Start even if another session is active")

	return cmd
}

// newSessionLogCmd creates the session log subcommand.
func newSessionLogCmd(dirFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log <message>",
		Short: "Append a finding to the active session's log",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			sess, line, err := sessionStore(*dirFlag).Log(strings.Join(args, " "))
			if err != nil {
				err = mapNoActiveSession(err)
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(toSessionResult(sess, line))
			}
			return printer.Success(map[string]any{"message": "logged to " + sess.FolderName()})
		},
	}
}

// newSessionEndCmd creates the session end subcommand.
func newSessionEndCmd(dirFlag *string) *cobra.Command {
	var summaryFlag string

	cmd := &cobra.Command{
		Use:   "end",
		Short: "End the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			sess, err := sessionStore(*dirFlag).End(summaryFlag)
			if err != nil {
				err = mapNoActiveSession(err)
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(toSessionResult(sess, ""))
			}
			return printer.Success(map[string]any{"message": "ended " + sess.FolderName()})
		},
	}

	cmd.Flags().StringVar(&summaryFlag, "summary", "", "One-line summary of what the session found")

	return cmd
}

// newSessionStatusCmd creates the session status subcommand.
func newSessionStatusCmd(dirFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			sess, err := sessionStore(*dirFlag).Active()
			if err != nil {
				if errors.Is(err, session.ErrNoActiveSession) {
					if printer.IsJSON() {
						return printer.WriteJSON(map[string]any{"active": false})
					}
					printer.Println("no active session")
					return nil
				}
				printer.Error(err)
				return err
			}

			if printer.IsJSON() {
				return printer.WriteJSON(toSessionResult(sess, ""))
			}
			printer.KeyValue("Session", sess.FolderName())
			printer.KeyValue("Tag", printer.Styles().Tag.Render(sess.Tag))
			printer.KeyValue("Started", sess.StartedAt.Format("2006-01-02 15:04")+" UTC")
			printer.KeyValue("Running", time.Since(sess.StartedAt).Round(time.Minute).String())
			return nil
		},
	}
}

// mapNoActiveSession turns the store sentinel into a user-facing error.
func mapNoActiveSession(err error) error {
	if errors.Is(err, session.ErrNoActiveSession) {
		return output.NewUserError("no active session; run 'hallmark session start <topic>' first")
	}
	return err
}

// toSessionResult converts a session for JSON output.
func toSessionResult(sess *session.Session, line string) sessionResult {
	return sessionResult{
		ID:      sess.ID,
		Topic:   sess.Topic,
		Dir:     sess.Dir,
		Tag:     sess.Tag,
		Stamp:   sess.Stamp,
		Status:  sess.Status,
		Summary: sess.Summary,
		Line:    line,
	}
}
