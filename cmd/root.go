package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subcast/subcast/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "subcast",
	Short: "Local podcast subscription manager",
	Long: `subcast keeps your podcast subscriptions in a local SQLite store,
syncs episode metadata from the Podcast Index directory, and tracks
per-episode playback position.

Subscriptions are added by feed URL; episode lists are refreshed on a
schedule or on demand with 'subcast sync'.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
