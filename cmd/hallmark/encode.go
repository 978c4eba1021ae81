package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/hallmark/internal/output"
	"github.com/gorewood/hallmark/internal/tag"
)

// encodeResult is the structured output of the encode command.
type encodeResult struct {
	Tag    string `json:"tag"`
	Offset int    `json:"offset"`
	Stamp  string `json:"stamp"`
}

// newEncodeCmd creates the encode command.
func newEncodeCmd() *cobra.Command {
	var nowFlag bool
	var offsetFlag bool

	cmd := &cobra.Command{
		Use:   "encode [stamp]",
		Short: "Encode a UTC timestamp as a 4-character feature tag",
		Long: `Encode converts a UTC timestamp into a deterministic base-62 feature tag.

The stamp must be YYYYMMDD-HHmm (fixed-width, single hyphen, 24-hour
clock, always UTC). The tag encodes whole minutes since
2026-01-01 00:00 UTC as exactly 4 characters over [0-9A-Za-z].

Examples:
  hallmark encode 20260212-1500   # -> 0Fy0
  hallmark encode --now           # tag for the current minute
  hallmark encode 20260212-1500 --offset`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args, nowFlag, offsetFlag)
		},
	}

	cmd.Flags().BoolVar(&nowFlag, "now", false, "Encode the current minute instead of a stamp")
	cmd.Flags().BoolVar(&offsetFlag, "offset", false, "Also print the minute offset")

	return cmd
}

// runEncode executes the encode command.
func runEncode(cmd *cobra.Command, args []string, nowFlag, offsetFlag bool) error {
	printer := newPrinter(cmd)

	var t time.Time
	switch {
	case nowFlag && len(args) > 0:
		err := output.NewUserError("cannot use both --now and a stamp argument")
		printer.Error(err)
		return err
	case nowFlag:
		t = time.Now().UTC()
	case len(args) == 1:
		parsed, err := tag.ParseStamp(args[0])
		if err != nil {
			userErr := output.NewUserError(err.Error())
			printer.Error(userErr)
			return userErr
		}
		t = parsed
	default:
		err := output.NewUserError("provide a YYYYMMDD-HHmm stamp or --now")
		printer.Error(err)
		return err
	}

	encoded, err := tag.Encode(t)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	// Re-derive the offset from the tag; cheaper than exposing a second
	// arithmetic path and guaranteed consistent with what was printed.
	offset, err := tag.Decode(encoded)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("decoding freshly encoded tag", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(encodeResult{
			Tag:    encoded,
			Offset: offset,
			Stamp:  tag.FormatStamp(t),
		})
	}

	if offsetFlag {
		printer.KeyValue("Tag", encoded)
		printer.KeyValue("Offset", strconv.Itoa(offset))
		printer.KeyValue("Stamp", tag.FormatStamp(t))
		return nil
	}

	printer.Println(printer.Styles().Tag.Render(encoded))
	return nil
}
