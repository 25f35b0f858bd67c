package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/brush"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of brush",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "brush version %s\n", strings.TrimSpace(brush.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
