package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/tag"
)

// decodeResult is the structured output of the decode command.
type decodeResult struct {
	Tag    string `json:"tag"`
	Offset int    `json:"offset"`
	Stamp  string `json:"stamp"`
	Time   string `json:"time"`
}

// newDecodeCmd creates the decode command.
func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <tag>",
		Short: "Decode a feature tag back to its minute offset and timestamp",
		Long: `Decode recovers the minute offset a 4-character base-62 tag encodes,
along with the UTC instant it represents.

Examples:
  hallmark decode 0Fy0   # -> offset 61380, 2026-02-12 15:00 UTC
  hallmark decode zzzz   # the last encodable minute (~2054)`,
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}
}

// runDecode executes the decode command.
func runDecode(cmd *cobra.Command, args []string) error {
	printer := newPrinter(cmd)

	offset, err := tag.Decode(args[0])
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	t := tag.Time(offset)

	if printer.IsJSON() {
		return printer.WriteJSON(decodeResult{
			Tag:    args[0],
			Offset: offset,
			Stamp:  tag.FormatStamp(t),
			Time:   t.Format(time.RFC3339),
		})
	}

	printer.KeyValue("Tag", printer.Styles().Tag.Render(args[0]))
	printer.KeyValue("Offset", strconv.Itoa(offset))
	printer.KeyValue("Time", t.Format("2006-01-02 15:04")+" UTC")
	return nil
}
