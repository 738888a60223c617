package episodes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subcast/subcast/internal/models"
)

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements EpisodeRepository interface
var _ EpisodeRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PutEpisodes bulk-upserts episodes by primary key. Records without an ID
// are inserted; records with an existing ID are replaced wholesale, so the
// caller must supply full records, not partial ones.
func (r *Repository) PutEpisodes(ctx context.Context, episodes []models.Episode) error {
	if len(episodes) == 0 {
		return nil
	}

	// Split fresh inserts from replacements so the generated-id rows and the
	// explicit-id rows never share one INSERT statement.
	var inserts, replacements []*models.Episode
	for i := range episodes {
		if episodes[i].ID == 0 {
			inserts = append(inserts, &episodes[i])
		} else {
			replacements = append(replacements, &episodes[i])
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(replacements) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&replacements).Error; err != nil {
				return fmt.Errorf("replacing episodes: %w", err)
			}
		}
		if len(inserts) > 0 {
			if err := tx.Create(&inserts).Error; err != nil {
				return fmt.Errorf("inserting episodes: %w", err)
			}
		}
		return nil
	})
}

// PatchEpisode applies a partial update by id. Fields not set in the patch
// are left unchanged.
func (r *Repository) PatchEpisode(ctx context.Context, id uint, patch models.EpisodePatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}

	var existing models.Episode
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrEpisodeNotFound, id)
		}
		return fmt.Errorf("looking up episode: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Episode{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("patching episode: %w", err)
	}
	return nil
}

// GetEpisodeByID retrieves an episode by its database ID
func (r *Repository) GetEpisodeByID(ctx context.Context, id uint) (*models.Episode, error) {
	var episode models.Episode
	if err := r.db.WithContext(ctx).First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrEpisodeNotFound, id)
		}
		return nil, fmt.Errorf("getting episode: %w", err)
	}
	return &episode, nil
}

// GetEpisodesByPodcastID returns all episodes for a podcast, newest first
func (r *Repository) GetEpisodesByPodcastID(ctx context.Context, podcastID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.db.WithContext(ctx).
		Where("podcast_id = ?", podcastID).
		Order("published_at DESC").
		Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("getting episodes: %w", err)
	}
	return episodes, nil
}

// GetAllEpisodes returns up to limit episodes across all podcasts published
// at or before asOfPubDate, newest first. This is the pagination primitive:
// pass the publish date of the last episode of the previous page to get the
// next one.
func (r *Repository) GetAllEpisodes(ctx context.Context, limit int, asOfPubDate time.Time) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.db.WithContext(ctx).
		Where("published_at <= ?", asOfPubDate).
		Order("published_at DESC").
		Limit(limit).
		Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("getting all episodes: %w", err)
	}
	return episodes, nil
}

// GetEpisodesInProgress returns episodes whose playback has ever started,
// most recently listened first.
func (r *Repository) GetEpisodesInProgress(ctx context.Context) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := r.db.WithContext(ctx).
		Where("position IS NOT NULL").
		Order("last_played_at DESC").
		Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("getting episodes in progress: %w", err)
	}
	return episodes, nil
}
