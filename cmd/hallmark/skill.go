package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/skill"
)

// skillInfoResult is the structured output of skill list.
type skillInfoResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Overrides   string `json:"overrides,omitempty"`
}

// skillShowResult is the structured output of skill show.
type skillShowResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Content     string `json:"content"`
}

// newSkillCmd creates the skill command with its subcommands.
func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Browse hallmark skill documents",
		Long: `Skill lists and shows hallmark's skill documents: markdown guides with
YAML frontmatter that teach agents the tagging, feature, and session
conventions.

Built-in skills ship with the binary. Put overrides in
.hallmark/skills/ (project) or the global config skills/ directory.

Examples:
  hallmark skill list
  hallmark skill show tagging`,
	}

	cmd.AddCommand(newSkillListCmd())
	cmd.AddCommand(newSkillShowCmd())

	return cmd
}

// newSkillListCmd creates the skill list subcommand.
func newSkillListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			skills, err := skill.List()
			if err != nil {
				sysErr := output.NewSystemErrorWithCause("failed to list skills", err)
				printer.Error(sysErr)
				return sysErr
			}

			if printer.IsJSON() {
				results := make([]skillInfoResult, 0, len(skills))
				for _, info := range skills {
					results = append(results, skillInfoResult(info))
				}
				return printer.WriteJSON(results)
			}

			for _, info := range skills {
				suffix := " (" + info.Source + ")"
				if info.Overrides != "" {
					suffix = " (" + info.Source + ", hidden by " + info.Overrides + ")"
				}
				printer.Print("%s%s\n    %s\n",
					printer.Styles().Bold.Render(info.Name),
					printer.Styles().Muted.Render(suffix),
					info.Description)
			}
			return nil
		},
	}
}

// newSkillShowCmd creates the skill show subcommand.
func newSkillShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a skill document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			doc, err := skill.Load(args[0])
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(skillShowResult{
					Name:        doc.Name,
					Description: doc.Description,
					Source:      doc.Source,
					Content:     doc.Content,
				})
			}

			printer.Println(doc.Content)
			return nil
		},
	}
}
