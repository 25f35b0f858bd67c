package main

import (
	"github.com/aretw0/brush/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the color tokens the canvas accepts",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintPalette(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}
