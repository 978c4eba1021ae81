package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/feature"
	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/tag"
)

// newResult is the structured output of the new command.
type newResult struct {
	Dir    string   `json:"dir"`
	Slug   string   `json:"slug"`
	Stamp  string   `json:"stamp"`
	Tag    string   `json:"tag"`
	IDs    []string `json:"seed_ids"`
	DryRun bool     `json:"dry_run,omitempty"`
}

// newNewCmd creates the new command.
func newNewCmd() *cobra.Command {
	var atFlag string
	var dirFlag string
	var dryRunFlag bool

	cmd := &cobra.Command{
		Use:   "new <slug>",
		Short: "Scaffold a feature spec folder keyed by a fresh tag",
		Long: `New creates a feature spec folder under the specs directory.

The folder is named <stamp>-<slug> and contains a SPEC.md skeleton whose
requirement IDs (UC/US/FR/NFR) embed the feature's base-62 tag, plus a
feature.json metadata file.

The stamp defaults to the current UTC minute. Pass --at to scaffold
deterministically from a known stamp.

Examples:
  hallmark new user-auth
  hallmark new user-auth --at 20260212-1500
  hallmark new user-auth --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], atFlag, dirFlag, dryRunFlag)
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Stamp to scaffold at (YYYYMMDD-HHmm UTC, default now)")
	cmd.Flags().StringVar(&dirFlag, "dir", "", "Specs directory (default $HALLMARK_SPECS_DIR or specs)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview the folder and IDs without writing")

	return cmd
}

// runNew executes the new command.
func runNew(cmd *cobra.Command, slug, atFlag, dirFlag string, dryRun bool) error {
	printer := newPrinter(cmd)
	specsDir := resolveSpecsDir(dirFlag)

	t := time.Now().UTC()
	if atFlag != "" {
		parsed, err := tag.ParseStamp(atFlag)
		if err != nil {
			userErr := output.NewUserError(err.Error())
			printer.Error(userErr)
			return userErr
		}
		t = parsed
	}

	var feat *feature.Feature
	var err error
	if dryRun {
		feat, err = feature.Plan(specsDir, slug, t)
	} else {
		feat, err = feature.New(specsDir, slug, t)
	}
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(newResult{
			Dir:    feat.Dir,
			Slug:   feat.Slug,
			Stamp:  feat.Stamp,
			Tag:    feat.Tag,
			IDs:    seedIDs(&feat.Metadata),
			DryRun: dryRun,
		})
	}

	if dryRun {
		printer.Println(printer.Styles().Muted.Render("dry run, nothing written"))
	}
	printer.KeyValue("Feature", feat.Title())
	printer.KeyValue("Folder", feat.Dir)
	printer.KeyValue("Tag", printer.Styles().Tag.Render(feat.Tag))
	for _, id := range seedIDs(&feat.Metadata) {
		printer.Println("  " + id)
	}
	return nil
}

// seedIDs returns the requirement IDs seeded into a new spec.
func seedIDs(meta *feature.Metadata) []string {
	return []string{
		meta.ID("UC", 1),
		meta.ID("US", 1),
		meta.ID("FR", 1),
		meta.ID("NFR", 1),
	}
}
