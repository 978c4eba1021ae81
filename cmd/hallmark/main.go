// Package main provides the entry point for the hallmark CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/config"
	"github.com/gorewood/hallmark/internal/envfile"
	"github.com/gorewood/hallmark/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2026-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// newPrinter builds the standard printer for a command.
func newPrinter(cmd *cobra.Command) *output.Printer {
	w := cmd.OutOrStdout()
	return output.NewPrinter(w, isJSONMode(cmd), output.IsTTY(w)).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the hallmark CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hallmark",
		Short: "Deterministic feature tags for spec-driven development",
		Long: `Hallmark mints short, deterministic feature tags from UTC timestamps and
builds the folders that carry them.

A tag is 4 base-62 characters encoding the minutes elapsed since
2026-01-01 00:00 UTC. The same minute always yields the same tag, tags
sort in creation order, and the 4-character range lasts until ~2054.

Hallmark uses tags to:
  - Scaffold feature spec folders whose requirement IDs embed the tag
  - Track research sessions in timestamped folders with findings logs
  - Give agents a stable, collision-resistant identifier scheme

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := newPrinter(cmd)
				err := output.NewUserError("no command specified. Run 'hallmark --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for per-repo defaults like
	// HALLMARK_SPECS_DIR. Environment variables always take precedence
	// over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	// Add persistent --json flag (available to all subcommands)
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/hallmark/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "tag", Title: "Tag Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "scaffold", Title: "Scaffold Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "docs", Title: "Docs Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newEncodeCmd(), "tag")
	addGroupedCommand(cmd, newDecodeCmd(), "tag")

	addGroupedCommand(cmd, newNewCmd(), "scaffold")
	addGroupedCommand(cmd, newSessionCmd(), "scaffold")

	addGroupedCommand(cmd, newSkillCmd(), "docs")

	addGroupedCommand(cmd, newStatusCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
