package episodes

import (
	"context"
	"time"

	"github.com/subcast/subcast/internal/models"
)

// EpisodeRepository defines the interface for episode data persistence
type EpisodeRepository interface {
	// Write operations
	PutEpisodes(ctx context.Context, episodes []models.Episode) error
	PatchEpisode(ctx context.Context, id uint, patch models.EpisodePatch) error

	// Read operations
	GetEpisodeByID(ctx context.Context, id uint) (*models.Episode, error)
	GetEpisodesByPodcastID(ctx context.Context, podcastID uint) ([]models.Episode, error)
	GetAllEpisodes(ctx context.Context, limit int, asOfPubDate time.Time) ([]models.Episode, error)
	GetEpisodesInProgress(ctx context.Context) ([]models.Episode, error)
}
