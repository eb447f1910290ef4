package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/adapters/driving/mcp"
	"github.com/surmado/surmado-go/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can order and
track Surmado reports.

By default, the server communicates over stdio using JSON-RPC. Use --port to
start an HTTP server instead, e.g. for the MCP Inspector.

Changes to the config file, such as a new API key, are picked up without a
restart.

Examples:
  # Stdio mode (default, for desktop assistants)
  surmado mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  surmado mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "surmado": {
        "command": "/path/to/surmado",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	reports, err := getReports()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Reports: reports})
	if err != nil {
		return err
	}

	if wiring.WatchConfig != nil {
		go func() {
			err := wiring.WatchConfig(cmd.Context(), func() {
				fresh, err := buildReports()
				if err != nil {
					logger.Warn("config changed but reload failed: %v", err)
					return
				}
				if err := server.SetReports(fresh); err != nil {
					logger.Warn("failed to swap report service: %v", err)
					return
				}
				logger.Info("config reloaded")
			})
			if err != nil {
				logger.Debug("config watch stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
