package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/brush"
	"github.com/aretw0/brush/internal/cli"
	"github.com/aretw0/brush/internal/presentation/tui"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/spf13/cobra"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw the configured program",
	Long: `Connects the bot (registering it on first use), draws the shapes listed
in the config file and prints a report. Without shapes the classic program
runs: move to the center, then a wave of circles across the canvas.

With --dry-run the program is drawn on an in-memory canvas and the result
is printed instead of touching the service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		deregister, _ := cmd.Flags().GetBool("deregister")
		quiet, _ := cmd.Flags().GetBool("quiet")

		opts := commonOptions(cmd)
		opts.DryRun = dryRun
		opts.DryRunCanvas = domain.CanvasDimensions{Width: width, Height: height}

		out := cmd.OutOrStdout()
		if !quiet {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(brush.Version))
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err := cli.RunDraw(ctx, cli.DrawOptions{
			Options:     opts,
			MetricsAddr: metricsAddr,
			Deregister:  deregister,
			Quiet:       quiet,
			Out:         out,
		})
		if err != nil && cli.IsInterrupted(err) && ctx.Signal() != nil {
			return fmt.Errorf("interrupted by %v", ctx.Signal())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(drawCmd)

	drawCmd.Flags().Bool("dry-run", false, "Draw on an in-memory canvas and print it")
	drawCmd.Flags().Int("width", cli.DefaultDryRunCanvas.Width, "Dry run canvas width")
	drawCmd.Flags().Int("height", cli.DefaultDryRunCanvas.Height, "Dry run canvas height")
	drawCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while drawing")
	drawCmd.Flags().Bool("deregister", false, "Say bye and forget the bot when done")
	drawCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and report")
}
