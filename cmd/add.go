package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/subcast/subcast/internal/services/podcasts"
	"github.com/subcast/subcast/internal/services/subscriptions"
	"github.com/subcast/subcast/pkg/config"
)

var addTitle string

var addCmd = &cobra.Command{
	Use:   "add <feed-url> [feed-url...]",
	Short: "Subscribe to one or more podcast feeds",
	Long: `Subscribe to podcast feeds by URL. Each podcast is stored immediately;
metadata and episodes are fetched from the directory. A feed whose fetch
fails is kept in a pending state and completed on the next sync.

Example:
  subcast add https://example.com/feed.xml
  subcast add --title "My Show" https://example.com/feed.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addTitle, "title", "", "display title override (single feed only)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addTitle != "" && len(args) > 1 {
		return fmt.Errorf("--title can only be used with a single feed URL")
	}

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

	if len(args) == 1 {
		podcast, err := service.AddPodcast(cmd.Context(), subscriptions.NewSubscription{
			FeedURL: args[0],
			Title:   addTitle,
		})
		if errors.Is(err, podcasts.ErrDuplicateFeedURL) {
			return fmt.Errorf("already subscribed to %s", args[0])
		}
		if err != nil {
			return err
		}
		log.Printf("[INFO] Subscribed to %q (%s)", podcast.Title, podcast.FeedURL)
		return nil
	}

	subs := make([]subscriptions.NewSubscription, 0, len(args))
	for _, feedURL := range args {
		subs = append(subs, subscriptions.NewSubscription{FeedURL: feedURL})
	}
	if err := service.AddPodcasts(cmd.Context(), subs); err != nil {
		return err
	}
	log.Printf("[INFO] Subscribed to %d feeds", len(args))
	return nil
}
