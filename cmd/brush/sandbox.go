package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/brush/internal/cli"
	"github.com/aretw0/brush/internal/sandbox"
	"github.com/aretw0/brush/pkg/adapters/memory"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Serve a local in-memory canvas",
	Long: `Starts a local canvas service speaking the paint-bots protocol, for
trying programs without the real service. GET / shows the canvas, GET /bots
the registered bots and GET /metrics the request counters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		cfg, err := cli.LoadConfig(commonOptions(cmd))
		if err != nil {
			return err
		}
		logger, err := cli.NewLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		canvas, err := memory.NewCanvas(domain.CanvasDimensions{Width: width, Height: height})
		if err != nil {
			return err
		}
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           sandbox.New(canvas, sandbox.WithLogger(logger), sandbox.WithRegistry(reg)).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting sandbox canvas", "addr", srv.Addr, "width", width, "height", height)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("sandbox server failed: %w", err)
		case <-ctx.Done():
			logger.Info("Shutting down sandbox", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Join(fmt.Errorf("graceful shutdown failed: %w", err), srv.Close())
			}
			logger.Info("Sandbox stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd)

	sandboxCmd.Flags().IntP("port", "p", 31173, "Port to listen on")
	sandboxCmd.Flags().Int("width", cli.DefaultDryRunCanvas.Width, "Canvas width")
	sandboxCmd.Flags().Int("height", cli.DefaultDryRunCanvas.Height, "Canvas height")
}
