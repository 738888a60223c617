package cmd

import (
	"fmt"

	"github.com/subcast/subcast/internal/database"
	"github.com/subcast/subcast/internal/services/episodes"
	"github.com/subcast/subcast/internal/services/podcastindex"
	"github.com/subcast/subcast/internal/services/podcasts"
	"github.com/subcast/subcast/internal/services/subscriptions"
	"github.com/subcast/subcast/pkg/config"
)

// openStore opens the local store and migrates the schema
func openStore(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// buildService wires the repositories and the directory client into the
// subscription service. The returned cleanup releases the directory cache's
// background goroutine.
func buildService(db *database.DB, cfg *config.Config) (*subscriptions.Service, func()) {
	directory := podcastindex.NewCachedClient(podcastindex.Config{
		APIKey:    cfg.PodcastIndex.APIKey,
		APISecret: cfg.PodcastIndex.APISecret,
		BaseURL:   cfg.PodcastIndex.BaseURL,
		UserAgent: cfg.PodcastIndex.UserAgent,
		Timeout:   cfg.PodcastIndex.Timeout,
		RateLimit: cfg.PodcastIndex.RateLimit,
	}, nil, 0)

	service := subscriptions.NewService(
		podcasts.NewRepository(db.DB),
		episodes.NewRepository(db.DB),
		directory,
	)
	service.SetEpisodeLimit(cfg.Sync.EpisodeLimit)
	return service, directory.Stop
}
