// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// reportTool describes one report section exposed as an MCP tool.
type reportTool struct {
	name        string
	report      schema.ReportName
	description string
}

// reportTools lists the tools in dashboard order.
var reportTools = []reportTool{
	{"get_retention", schema.RetentionReport, "Retention percent by retention day and country, with total day 1 and day 7 gauges."},
	{"get_loserate", schema.LoserateReport, "Churn rate per level (sentinel levels excluded), with a stacked lose/retain chart."},
	{"get_players_left", schema.PlayersLeftReport, "Players started, completed and churned per level."},
	{"get_level_duration", schema.LevelDurationReport, "Average time spent per level, formatted as HH:MM:SS."},
	{"get_session_duration", schema.SessionDurationReport, "Average session duration per session rank, formatted as HH:MM:SS."},
	{"get_gun_popularity", schema.GunPopularityReport, "Gun popularity per level, ranked after the most popular gun."},
}

// NewMCPServer initializes and configures the Gamepulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, src contract.DataSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Gamepulse Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		src:     src,
	}

	for _, t := range reportTools {
		opts := []mcp.ToolOption{
			mcp.WithDescription(t.description),
			mcp.WithString("countries", mcp.Description("Comma-separated country codes, or 'all' for every country.")),
			mcp.WithNumber("min", mcp.Description("Lowest level or session rank to include (1-20).")),
			mcp.WithNumber("max", mcp.Description("Highest level or session rank to include (1-20).")),
		}
		if t.report == schema.GunPopularityReport {
			opts = append(opts, mcp.WithString("rating",
				mcp.Description("How many guns per level to show. Defaults to 'Top-3'."),
				mcp.Enum("Top-1", "Top-3", "Top-5", "Top-10")))
		}
		s.AddTool(mcp.NewTool(t.name, opts...), h.reportHandler(t.report))
	}

	return s
}

// StartMCPServer starts the Gamepulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, src contract.DataSource) error {
	s := NewMCPServer(baseCfg, src)
	return server.ServeStdio(s)
}
