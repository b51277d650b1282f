package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"capnarrative/internal/mcpserver"

	"github.com/spf13/cobra"
)

// newServeCmd defines the serve command, which exposes the renderer as MCP tools.
func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer as MCP tools",
		Long: `Starts an MCP server exposing two tools to AI assistants:

  render_capability_statement    render a statement as an XHTML narrative
  describe_capability_statement  describe a statement in one line

The server speaks stdio by default, so it can be registered directly as a
command in an assistant's MCP configuration. With --transport sse it listens
on mcp.host:mcp.port from the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transport == "" {
				transport = cfg.MCP.Transport
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := mcpserver.New(mcpserver.Config{
				Transport: transport,
				Host:      cfg.MCP.Host,
				Port:      cfg.MCP.Port,
				Version:   rootCmd.Version,
				Prefix:    cfg.Rendering.Prefix,
				Source:    sourceOptions(cmd),
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "MCP transport (stdio, sse); default from config mcp.transport")
	return cmd
}
