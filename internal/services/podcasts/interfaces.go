package podcasts

import (
	"context"

	"github.com/subcast/subcast/internal/models"
)

// PodcastRepository defines the data access interface for podcasts
type PodcastRepository interface {
	// Create/Update
	CreatePodcast(ctx context.Context, podcast *models.Podcast) error
	PatchPodcast(ctx context.Context, id uint, patch models.PodcastPatch) error
	AddAltFeedURL(ctx context.Context, podcastID uint, url string) error

	// Read
	GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error)
	GetPodcastByFeedURL(ctx context.Context, feedURL string) (*models.Podcast, error)
	ListPodcasts(ctx context.Context) ([]models.Podcast, error)

	// Delete
	DeletePodcastCascade(ctx context.Context, id uint) error
}
