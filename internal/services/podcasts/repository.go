package podcasts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subcast/subcast/internal/models"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements PodcastRepository interface
var _ PodcastRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreatePodcast inserts a new podcast. The feed URL must be unique across
// all stored podcasts.
func (r *Repository) CreatePodcast(ctx context.Context, podcast *models.Podcast) error {
	if err := r.db.WithContext(ctx).Create(podcast).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateFeedURL, podcast.FeedURL)
		}
		return fmt.Errorf("creating podcast: %w", err)
	}
	return nil
}

// PatchPodcast applies a partial update by id. Fields not set in the patch
// are left unchanged.
func (r *Repository) PatchPodcast(ctx context.Context, id uint, patch models.PodcastPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}

	var existing models.Podcast
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrPodcastNotFound, id)
		}
		return fmt.Errorf("looking up podcast: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Podcast{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("patching podcast: %w", err)
	}
	return nil
}

// GetPodcastByID retrieves a podcast by its database ID
func (r *Repository) GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error) {
	var podcast models.Podcast
	if err := r.db.WithContext(ctx).First(&podcast, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrPodcastNotFound, id)
		}
		return nil, fmt.Errorf("getting podcast: %w", err)
	}
	return &podcast, nil
}

// GetPodcastByFeedURL retrieves a podcast by its unique feed URL. Alternate
// feed URLs recorded after directory redirects are matched as a fallback.
func (r *Repository) GetPodcastByFeedURL(ctx context.Context, feedURL string) (*models.Podcast, error) {
	var podcast models.Podcast
	err := r.db.WithContext(ctx).
		Where("feed_url = ?", feedURL).
		First(&podcast).Error
	if err == nil {
		return &podcast, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("getting podcast by feed url: %w", err)
	}

	err = r.db.WithContext(ctx).
		Joins("JOIN podcast_alt_urls ON podcast_alt_urls.podcast_id = podcasts.id").
		Where("podcast_alt_urls.url = ?", feedURL).
		First(&podcast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPodcastNotFound, feedURL)
		}
		return nil, fmt.Errorf("getting podcast by alt feed url: %w", err)
	}
	return &podcast, nil
}

// AddAltFeedURL records an alternate feed URL for a podcast. Recording the
// same URL again is a no-op, so retried completions stay idempotent.
func (r *Repository) AddAltFeedURL(ctx context.Context, podcastID uint, url string) error {
	alt := models.PodcastAltURL{PodcastID: podcastID, URL: url}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&alt).Error; err != nil {
		return fmt.Errorf("recording alt feed url: %w", err)
	}
	return nil
}

// ListPodcasts returns all stored podcasts in insertion order
func (r *Repository) ListPodcasts(ctx context.Context) ([]models.Podcast, error) {
	var podcasts []models.Podcast
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&podcasts).Error; err != nil {
		return nil, fmt.Errorf("listing podcasts: %w", err)
	}
	return podcasts, nil
}

// DeletePodcastCascade deletes a podcast and all of its episodes in a single
// transaction so a failure can never leave orphaned episodes behind.
func (r *Repository) DeletePodcastCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("podcast_id = ?", id).
			Delete(&models.Episode{}).Error; err != nil {
			return fmt.Errorf("deleting episodes: %w", err)
		}

		if err := tx.
			Where("podcast_id = ?", id).
			Delete(&models.PodcastAltURL{}).Error; err != nil {
			return fmt.Errorf("deleting alt feed urls: %w", err)
		}

		result := tx.Unscoped().Delete(&models.Podcast{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting podcast: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: id %d", ErrPodcastNotFound, id)
		}
		return nil
	})
}
