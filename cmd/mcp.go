package cmd

import (
	"github.com/huangsam/gamepulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Gamepulse MCP server",
	Long: `Launch an MCP server over stdio that exposes every report section as a
tool returning its JSON presentation.`,
	// Section headers are suppressed per tool call so stdio only carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, dataSource)
	},
}
