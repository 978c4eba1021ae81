package main

import (
	"os"

	"github.com/gorewood/hallmark/internal/feature"
	"github.com/gorewood/hallmark/internal/session"
)

// resolveSpecsDir picks the feature specs directory.
// Precedence: --dir flag, HALLMARK_SPECS_DIR, built-in default.
func resolveSpecsDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv("HALLMARK_SPECS_DIR"); dir != "" {
		return dir
	}
	return feature.DefaultSpecsDir
}

// resolveSessionsDir picks the research sessions directory.
// Precedence: --dir flag, HALLMARK_SESSIONS_DIR, built-in default.
func resolveSessionsDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if dir := os.Getenv("HALLMARK_SESSIONS_DIR"); dir != "" {
		return dir
	}
	return session.DefaultSessionsDir
}
