package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/subcast/subcast/pkg/config"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh every subscribed podcast once",
	Long: `Fetch the current episode list for every subscribed podcast from the
directory and merge it into the local store. Podcasts whose initial add
never completed are completed here.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	service, stopDirectory := buildService(db, cfg)
	defer stopDirectory()

	if err := service.RefreshAll(cmd.Context()); err != nil {
		return err
	}

	podcasts, err := service.GetPodcasts(cmd.Context())
	if err != nil {
		return err
	}
	log.Printf("[INFO] Refreshed %d podcasts", len(podcasts))
	return nil
}
