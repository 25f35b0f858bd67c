package main

import (
	"fmt"
	"os"

	"github.com/aretw0/brush/internal/cli"
	"github.com/aretw0/brush/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brush",
	Short: "Brush drives a paint bot on a shared canvas",
	Long: `Brush registers a bot with a paint-bots canvas service and draws
circles, droplets and waves on it, one unit move at a time.

The service URL is read from the config file, the PAINTBOTS_URL
environment variable or the --url flag, in increasing precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().String("url", "", "Canvas service URL")
	rootCmd.PersistentFlags().StringP("name", "n", "", "Bot name")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("config")
	url, _ := cmd.Flags().GetString("url")
	name, _ := cmd.Flags().GetString("name")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{
		ConfigPath: path,
		URL:        url,
		Name:       name,
		Debug:      debug,
		LogOutput:  os.Stderr,
	}
}
