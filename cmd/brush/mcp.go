package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/brush/internal/cli"
	"github.com/aretw0/brush/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Connects the bot and exposes it as an MCP server, so an assistant can
look at the canvas and draw with tool calls.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if transport != "stdio" && transport != "sse" {
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}

		opts := commonOptions(cmd)
		opts.DryRun = dryRun
		// logs go to stderr so they never corrupt JSON-RPC on stdout
		opts.LogOutput = cmd.ErrOrStderr()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		setup, err := cli.NewSetup(opts)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, setup.Close())
		}()

		state, err := setup.Client.Connect(ctx)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err = errors.Join(err, setup.Client.Close(closeCtx))
		}()

		canvas := setup.Client.Canvas()
		dims, err := canvas.Look(ctx)
		if err != nil {
			return err
		}
		session, err := setup.Client.NewSession(state)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(canvas, session, dims, mcp.WithLogger(setup.Logger))

		switch transport {
		case "stdio":
			setup.Logger.Info("Starting brush MCP server (stdio)", "bot", setup.Client.Identity().Name)
			return srv.ServeStdio()
		default:
			setup.Logger.Info("Starting brush MCP server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			setup.Logger.Info("MCP server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Bool("dry-run", false, "Draw on an in-memory canvas instead of the service")
}
