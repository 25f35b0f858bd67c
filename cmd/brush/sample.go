package main

import (
	"github.com/aretw0/brush/internal/cli"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:       "sample circle|droplet|wave",
	Short:     "Print the cells a curve passes through",
	Long:      `Prints one line per sample: index, parameter t, x and y. Use --json for a JSON array.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"circle", "droplet", "wave"},
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetInt("x")
		y, _ := cmd.Flags().GetInt("y")
		radius, _ := cmd.Flags().GetFloat64("radius")
		sharpness, _ := cmd.Flags().GetFloat64("sharpness")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		amplitude, _ := cmd.Flags().GetFloat64("amplitude")
		step, _ := cmd.Flags().GetFloat64("step")
		asJSON, _ := cmd.Flags().GetBool("json")

		samples, err := cli.Sample(cli.SampleParams{
			Kind:      args[0],
			Center:    domain.Pos(x, y),
			Radius:    radius,
			Sharpness: sharpness,
			Width:     width,
			Height:    height,
			Amplitude: amplitude,
			Step:      step,
		})
		if err != nil {
			return err
		}
		return cli.WriteSamples(cmd.OutOrStdout(), samples, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().Int("x", 0, "Center column (circle, droplet)")
	sampleCmd.Flags().Int("y", 0, "Center row (circle, droplet)")
	sampleCmd.Flags().Float64("radius", 5, "Radius (circle, droplet)")
	sampleCmd.Flags().Float64("sharpness", 2, "Tip sharpness (droplet)")
	sampleCmd.Flags().Int("width", 80, "Canvas width (wave)")
	sampleCmd.Flags().Int("height", 40, "Canvas height (wave)")
	sampleCmd.Flags().Float64("amplitude", 10, "Amplitude (wave)")
	sampleCmd.Flags().Float64("step", 0, "Fixed parameter step (default per curve)")
	sampleCmd.Flags().Bool("json", false, "Print samples as JSON")
}
