package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cryptomod/cryptomod/internal/adapters/outbound/certcache"
	configAdapter "github.com/cryptomod/cryptomod/internal/adapters/outbound/config"
	"github.com/cryptomod/cryptomod/internal/adapters/outbound/gitinfo"
	"github.com/cryptomod/cryptomod/internal/adapters/outbound/modstore"
	"github.com/cryptomod/cryptomod/internal/adapters/outbound/render"
	"github.com/cryptomod/cryptomod/internal/application"
	"github.com/cryptomod/cryptomod/internal/domain"
	"github.com/cryptomod/cryptomod/internal/logging"
)

// registerTools registers all cryptomod MCP tools on the given server.
func registerTools(s *server.MCPServer, repoDir string) {
	// 1. cryptomod_validate
	s.AddTool(
		mcplib.NewTool("cryptomod_validate",
			mcplib.WithDescription("Validate every module record against schema, CMVP certificate status, and FedRAMP policy rules. Returns the full validation report as JSON."),
			mcplib.WithBoolean("strict", mcplib.Description("Treat warnings as errors")),
			mcplib.WithNumber("min_level", mcplib.Description("Minimum required security level (1-4, 0 disables)")),
		),
		handleValidate(repoDir),
	)

	// 2. cryptomod_lookup_certificate
	s.AddTool(
		mcplib.NewTool("cryptomod_lookup_certificate",
			mcplib.WithDescription("Look up one certificate number in the cached CMVP snapshot"),
			mcplib.WithNumber("number",
				mcplib.Required(),
				mcplib.Description("CMVP certificate number"),
			),
		),
		handleLookupCertificate(repoDir),
	)

	// 3. cryptomod_snapshot_status
	s.AddTool(
		mcplib.NewTool("cryptomod_snapshot_status",
			mcplib.WithDescription("Returns the CMVP snapshot's age, size, and status breakdown"),
		),
		handleSnapshotStatus(repoDir),
	)

	// 4. cryptomod_report
	s.AddTool(
		mcplib.NewTool("cryptomod_report",
			mcplib.WithDescription("Validate the inventory and return the compliance report (markdown or JSON summary)"),
			mcplib.WithString("format", mcplib.Description("Output format: md or json (default: md)")),
		),
		handleReport(repoDir),
	)
}

func newValidateService() *application.ValidateService {
	log := logging.Nop()
	return application.NewValidateService(
		modstore.New(log),
		certcache.New(log),
		configAdapter.New(),
		gitinfo.New(),
	)
}

func handleValidate(repoDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		strict, _ := args["strict"].(bool)
		minLevel := 0
		if lvl, ok := args["min_level"].(float64); ok {
			minLevel = int(lvl)
		}

		report, _, err := newValidateService().Run(application.ValidateOptions{
			RepoDir:          repoDir,
			Strict:           strict,
			MinSecurityLevel: minLevel,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleLookupCertificate(repoDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, ok := request.GetArguments()["number"].(float64)
		if !ok {
			return errorResult("number must be a certificate number"), nil
		}
		number := int(raw)

		snapshot, err := loadSnapshot(repoDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading snapshot: %v", err)), nil
		}

		entry, found := snapshot.Resolve(number)
		if !found {
			return textResult(fmt.Sprintf("certificate #%d not found in the CMVP snapshot", number)), nil
		}
		return jsonResult(entry)
	}
}

func handleSnapshotStatus(repoDir string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		snapshot, err := loadSnapshot(repoDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading snapshot: %v", err)), nil
		}

		status := map[string]any{
			"totalCertificates": snapshot.Total(),
			"statusCounts":      snapshot.StatusCounts,
		}
		if !snapshot.TakenAt.IsZero() {
			status["takenAt"] = snapshot.TakenAt
		}
		return jsonResult(status)
	}
}

func handleReport(repoDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		format := "md"
		if f, ok := request.GetArguments()["format"].(string); ok && f != "" {
			format = f
		}

		report, files, err := newValidateService().Run(application.ValidateOptions{RepoDir: repoDir})
		if err != nil {
			return errorResult(fmt.Sprintf("report failed: %v", err)), nil
		}
		records := application.RecordsByName(files)

		switch format {
		case "md":
			return textResult(render.Markdown(report, records)), nil
		case "json":
			return jsonResult(render.BuildSummary(report, records))
		default:
			return errorResult(fmt.Sprintf("unknown format %q (want md or json)", format)), nil
		}
	}
}

func loadSnapshot(repoDir string) (*domain.Snapshot, error) {
	cfg, err := configAdapter.New().Load(repoDir)
	if err != nil {
		return nil, err
	}
	return certcache.New(logging.Nop()).Load(filepath.Join(repoDir, cfg.SnapshotDir))
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
