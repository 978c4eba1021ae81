package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hallmark/internal/feature"
	"github.com/gorewood/hallmark/internal/session"
	"github.com/gorewood/hallmark/internal/tag"
)

// --- Encode tool ---

// EncodeInput is the input for the encode tool.
type EncodeInput struct {
	Stamp string `json:"stamp,omitempty" jsonschema:"UTC timestamp as YYYYMMDD-HHmm; current minute if omitted"`
}

// EncodeOutput is the output for the encode tool.
type EncodeOutput struct {
	Tag    string `json:"tag"    jsonschema:"4-character base-62 feature tag"`
	Offset int    `json:"offset" jsonschema:"whole minutes since the epoch"`
	Stamp  string `json:"stamp"  jsonschema:"the encoded timestamp as YYYYMMDD-HHmm UTC"`
}

func handleEncode() mcp.ToolHandlerFor[EncodeInput, EncodeOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EncodeInput) (*mcp.CallToolResult, EncodeOutput, error) {
		var t time.Time
		if input.Stamp == "" {
			t = time.Now().UTC()
		} else {
			parsed, err := tag.ParseStamp(input.Stamp)
			if err != nil {
				return nil, EncodeOutput{}, err
			}
			t = parsed
		}

		encoded, err := tag.Encode(t)
		if err != nil {
			return nil, EncodeOutput{}, err
		}

		offset, err := tag.Decode(encoded)
		if err != nil {
			return nil, EncodeOutput{}, fmt.Errorf("decoding freshly encoded tag: %w", err)
		}

		return nil, EncodeOutput{
			Tag:    encoded,
			Offset: offset,
			Stamp:  tag.FormatStamp(t),
		}, nil
	}
}

// --- Decode tool ---

// DecodeInput is the input for the decode tool.
type DecodeInput struct {
	Tag string `json:"tag" jsonschema:"4-character base-62 tag to decode"`
}

// DecodeOutput is the output for the decode tool.
type DecodeOutput struct {
	Offset int    `json:"offset" jsonschema:"whole minutes since the epoch"`
	Stamp  string `json:"stamp"  jsonschema:"the decoded timestamp as YYYYMMDD-HHmm UTC"`
	Time   string `json:"time"   jsonschema:"the decoded instant as RFC3339 UTC"`
}

func handleDecode() mcp.ToolHandlerFor[DecodeInput, DecodeOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DecodeInput) (*mcp.CallToolResult, DecodeOutput, error) {
		offset, err := tag.Decode(input.Tag)
		if err != nil {
			return nil, DecodeOutput{}, err
		}

		t := tag.Time(offset)
		return nil, DecodeOutput{
			Offset: offset,
			Stamp:  tag.FormatStamp(t),
			Time:   t.Format(time.RFC3339),
		}, nil
	}
}

// --- Feature new tool ---

// FeatureNewInput is the input for the feature_new tool.
type FeatureNewInput struct {
	Slug   string `json:"slug"             jsonschema:"lowercase kebab-case feature slug"`
	Stamp  string `json:"stamp,omitempty"  jsonschema:"UTC timestamp as YYYYMMDD-HHmm; current minute if omitted"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"preview the folder and IDs without writing"`
}

// FeatureNewOutput is the output for the feature_new tool.
type FeatureNewOutput struct {
	Dir    string `json:"dir"     jsonschema:"feature folder path"`
	Tag    string `json:"tag"     jsonschema:"the feature's base-62 tag"`
	Stamp  string `json:"stamp"   jsonschema:"the feature's timestamp as YYYYMMDD-HHmm UTC"`
	SeedID string `json:"seed_id" jsonschema:"first functional requirement ID"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"true when nothing was written"`
}

func handleFeatureNew(specsDir string) mcp.ToolHandlerFor[FeatureNewInput, FeatureNewOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FeatureNewInput) (*mcp.CallToolResult, FeatureNewOutput, error) {
		var t time.Time
		if input.Stamp == "" {
			t = time.Now().UTC()
		} else {
			parsed, err := tag.ParseStamp(input.Stamp)
			if err != nil {
				return nil, FeatureNewOutput{}, err
			}
			t = parsed
		}

		var feat *feature.Feature
		var err error
		if input.DryRun {
			feat, err = feature.Plan(specsDir, input.Slug, t)
		} else {
			feat, err = feature.New(specsDir, input.Slug, t)
		}
		if err != nil {
			return nil, FeatureNewOutput{}, err
		}

		return nil, FeatureNewOutput{
			Dir:    feat.Dir,
			Tag:    feat.Tag,
			Stamp:  feat.Stamp,
			SeedID: feat.ID("FR", 1),
			DryRun: input.DryRun,
		}, nil
	}
}

// --- Session tools ---

// SessionStartInput is the input for the session_start tool.
type SessionStartInput struct {
	Topic string `json:"topic"           jsonschema:"lowercase kebab-case session topic"`
	Force bool   `json:"force,omitempty" jsonschema:"start even if another session is active"`
}

// SessionStartOutput is the output for the session_start tool.
type SessionStartOutput struct {
	ID    string `json:"id"    jsonschema:"session UUID"`
	Dir   string `json:"dir"   jsonschema:"session folder path"`
	Tag   string `json:"tag"   jsonschema:"the session's base-62 tag"`
	Stamp string `json:"stamp" jsonschema:"session start as YYYYMMDD-HHmm UTC"`
}

func handleSessionStart(sessions *session.Store) mcp.ToolHandlerFor[SessionStartInput, SessionStartOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SessionStartInput) (*mcp.CallToolResult, SessionStartOutput, error) {
		sess, err := sessions.Start(input.Topic, input.Force)
		if err != nil {
			return nil, SessionStartOutput{}, err
		}

		return nil, SessionStartOutput{
			ID:    sess.ID,
			Dir:   sess.Dir,
			Tag:   sess.Tag,
			Stamp: sess.Stamp,
		}, nil
	}
}

// SessionLogInput is the input for the session_log tool.
type SessionLogInput struct {
	Message string `json:"message" jsonschema:"finding to append to the active session's log"`
}

// SessionLogOutput is the output for the session_log tool.
type SessionLogOutput struct {
	Session string `json:"session" jsonschema:"folder name of the session logged to"`
	Line    string `json:"line"    jsonschema:"the exact line appended"`
}

func handleSessionLog(sessions *session.Store) mcp.ToolHandlerFor[SessionLogInput, SessionLogOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SessionLogInput) (*mcp.CallToolResult, SessionLogOutput, error) {
		sess, line, err := sessions.Log(input.Message)
		if err != nil {
			if errors.Is(err, session.ErrNoActiveSession) {
				return nil, SessionLogOutput{}, errors.New("no active session; run session_start first")
			}
			return nil, SessionLogOutput{}, err
		}

		return nil, SessionLogOutput{
			Session: sess.FolderName(),
			Line:    line,
		}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Epoch         string `json:"epoch"                    jsonschema:"the tag epoch as RFC3339 UTC"`
	RangeEnd      string `json:"range_end"                jsonschema:"last encodable instant as RFC3339 UTC"`
	SpecsDir      string `json:"specs_dir"                jsonschema:"feature specs directory"`
	FeatureCount  int    `json:"feature_count"            jsonschema:"number of feature folders"`
	SessionsDir   string `json:"sessions_dir"             jsonschema:"research sessions directory"`
	SessionCount  int    `json:"session_count"            jsonschema:"number of session folders"`
	ActiveSession string `json:"active_session,omitempty" jsonschema:"folder name of the active session"`
}

func handleStatus(specsDir string, sessions *session.Store) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		features, err := feature.List(specsDir)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("listing features: %w", err)
		}

		allSessions, err := sessions.List()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("listing sessions: %w", err)
		}

		out := StatusOutput{
			Epoch:        tag.Epoch.Format(time.RFC3339),
			RangeEnd:     tag.Time(tag.MaxOffset).Format(time.RFC3339),
			SpecsDir:     specsDir,
			FeatureCount: len(features),
			SessionsDir:  sessions.Dir(),
			SessionCount: len(allSessions),
		}

		if active, err := sessions.Active(); err == nil {
			out.ActiveSession = active.FolderName()
		}

		return nil, out, nil
	}
}
