package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/gamepulse/core"
	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	src     contract.DataSource
}

func (h *toolHandler) reportHandler(report schema.ReportName) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cfg := h.baseCfg.Clone()
		if err := cfg.ApplySection(report, sectionFromRequest(request)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid %s parameters: %v", report, err)), nil
		}

		p, err := core.GetReportPresentation(core.WithSuppressHeader(ctx), cfg, h.src, report)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
		}

		jsonData, _ := json.MarshalIndent(p.ToJSON(), "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// sectionFromRequest reads the selection arguments of a tool call. Absent
// arguments keep the configured selection.
func sectionFromRequest(request mcp.CallToolRequest) contract.SectionRawInput {
	var raw contract.SectionRawInput
	args := request.GetArguments()

	if countries := strings.TrimSpace(request.GetString("countries", "")); countries != "" {
		raw.Countries = strings.Split(countries, ",")
	}
	if _, ok := args["min"]; ok {
		lo := request.GetInt("min", schema.MinRangeBound)
		raw.Min = &lo
	}
	if _, ok := args["max"]; ok {
		hi := request.GetInt("max", schema.MaxRangeBound)
		raw.Max = &hi
	}
	raw.Rating = request.GetString("rating", "")
	return raw
}
