package subscriptions

import (
	"context"
	"time"

	"github.com/subcast/subcast/internal/models"
	"github.com/subcast/subcast/internal/services/podcastindex"
)

// DirectoryClient is the remote podcast directory the controller syncs
// against. Satisfied by *podcastindex.Client.
type DirectoryClient interface {
	GetPodcastByFeedURL(ctx context.Context, feedURL string) (*podcastindex.Podcast, error)
	GetEpisodesByFeedURL(ctx context.Context, feedURL string, limit int) ([]podcastindex.Episode, error)
}

// NewSubscription is the caller-supplied seed for a new podcast subscription
type NewSubscription struct {
	FeedURL string `json:"feed_url"`
	Title   string `json:"title,omitempty"`
}

// EpisodeWithPodcast pairs an episode with its owning podcast record for
// cross-podcast listings.
type EpisodeWithPodcast struct {
	Episode models.Episode  `json:"episode"`
	Podcast *models.Podcast `json:"podcast"`
}

// SubscriptionService defines the business logic interface for managing
// podcast subscriptions and episode synchronization.
type SubscriptionService interface {
	// Subscription lifecycle
	AddPodcast(ctx context.Context, sub NewSubscription) (*models.Podcast, error)
	AddPodcasts(ctx context.Context, subs []NewSubscription) error
	DeletePodcast(ctx context.Context, id uint) error

	// Refresh/sync
	RefreshAll(ctx context.Context) error

	// Podcast lookups
	GetPodcasts(ctx context.Context) ([]models.Podcast, error)
	GetPodcast(ctx context.Context, feedURL string) (*models.Podcast, error)
	GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error)

	// Episode lookups
	GetEpisodes(ctx context.Context, feedURL string) ([]models.Episode, error)
	GetAllEpisodes(ctx context.Context, limit int, asOfPubDate time.Time) ([]EpisodeWithPodcast, error)
	GetEpisodesInProgress(ctx context.Context) ([]EpisodeWithPodcast, error)

	// Playback state
	UpdateEpisodePosition(ctx context.Context, episodeID uint, position int) error
}
