package main

import (
	"fmt"

	"github.com/aretw0/brush/internal/cli"
	"github.com/spf13/cobra"
)

var byeCmd = &cobra.Command{
	Use:   "bye",
	Short: "Deregister the bot and forget its stored identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := cli.RunBye(ctx, commonOptions(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Bye!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(byeCmd)
}
