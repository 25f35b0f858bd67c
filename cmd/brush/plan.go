package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/brush/internal/cli"
	"github.com/aretw0/brush/pkg/domain"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan FROM_X FROM_Y TO_X TO_Y",
	Short: "Print the unit moves between two cells",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var coords [4]int
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", domain.ErrParameter, arg)
			}
			coords[i] = n
		}
		from := domain.Known(domain.Pos(coords[0], coords[1]))
		return cli.WritePlan(cmd.OutOrStdout(), from, domain.Pos(coords[2], coords[3]))
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
