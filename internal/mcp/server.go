// Package mcp provides a Model Context Protocol server for hallmark.
// It exposes the tag codec and scaffolding operations as MCP tools that
// any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hallmark/internal/session"
)

// NewServer creates an MCP server with all hallmark tools registered.
// specsDir is where feature_new scaffolds; sessions backs the session tools.
func NewServer(version string, specsDir string, sessions *session.Store) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hallmark",
		Version: version,
	}, nil)
	registerTools(server, specsDir, sessions)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all hallmark tools to the server.
func registerTools(server *mcp.Server, specsDir string, sessions *session.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "encode",
		Description: "Encode a UTC timestamp (YYYYMMDD-HHmm) as a 4-character base-62 feature tag. Omit the stamp to tag the current minute.",
		Annotations: readOnlyAnnotations(),
	}, handleEncode())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decode",
		Description: "Decode a 4-character base-62 tag back to its minute offset and UTC timestamp.",
		Annotations: readOnlyAnnotations(),
	}, handleDecode())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "feature_new",
		Description: "Scaffold a feature spec folder with a rendered SPEC.md whose requirement IDs carry the feature tag.",
		Annotations: writeAnnotations(),
	}, handleFeatureNew(specsDir))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "session_start",
		Description: "Start a research session: a timestamped folder with JSON metadata and an empty findings log.",
		Annotations: writeAnnotations(),
	}, handleSessionStart(sessions))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "session_log",
		Description: "Append a timestamped finding to the active research session's log.",
		Annotations: writeAnnotations(),
	}, handleSessionLog(sessions))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show hallmark state: epoch, encodable range, feature count, and the active session if any.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(specsDir, sessions))
}
