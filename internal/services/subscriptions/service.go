package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/subcast/subcast/internal/models"
	"github.com/subcast/subcast/internal/services/episodes"
	"github.com/subcast/subcast/internal/services/podcasts"
)

// DefaultEpisodeLimit bounds how many episodes are requested from the
// directory per feed.
const DefaultEpisodeLimit = 1000

type Service struct {
	podcastRepo  podcasts.PodcastRepository
	episodeRepo  episodes.EpisodeRepository
	directory    DirectoryClient
	episodeLimit int
}

// Ensure Service implements SubscriptionService interface
var _ SubscriptionService = (*Service)(nil)

func NewService(podcastRepo podcasts.PodcastRepository, episodeRepo episodes.EpisodeRepository, directory DirectoryClient) *Service {
	return &Service{
		podcastRepo:  podcastRepo,
		episodeRepo:  episodeRepo,
		directory:    directory,
		episodeLimit: DefaultEpisodeLimit,
	}
}

// SetEpisodeLimit overrides how many episodes are requested from the
// directory per feed. Non-positive values are ignored.
func (s *Service) SetEpisodeLimit(limit int) {
	if limit > 0 {
		s.episodeLimit = limit
	}
}

// AddPodcast subscribes to a feed: the podcast is persisted immediately in
// StatusNew, then directory metadata and the episode list are fetched and
// merged in. If a remote fetch fails the podcast stays in StatusNew and the
// error is returned; the next RefreshAll pass retries and completes it.
func (s *Service) AddPodcast(ctx context.Context, sub NewSubscription) (*models.Podcast, error) {
	if sub.FeedURL == "" {
		return nil, fmt.Errorf("feed URL is required")
	}

	podcast := &models.Podcast{
		Status:     models.StatusNew,
		Title:      sub.Title,
		FeedURL:    sub.FeedURL,
		Subscribed: true,
	}
	if err := s.podcastRepo.CreatePodcast(ctx, podcast); err != nil {
		return nil, err
	}

	if err := s.completePodcast(ctx, podcast); err != nil {
		return nil, fmt.Errorf("podcast %d persisted but incomplete: %w", podcast.ID, err)
	}

	return s.podcastRepo.GetPodcastByID(ctx, podcast.ID)
}

// completePodcast fetches directory metadata plus the episode list for a
// stored podcast and promotes it to StatusProcessed. Used both by AddPodcast
// and by RefreshAll to finish podcasts stuck in StatusNew. The episode
// write-back reconciles against whatever is already stored: a retried add
// may run after episodes were persisted, and must not insert them twice.
func (s *Service) completePodcast(ctx context.Context, podcast *models.Podcast) error {
	feed, err := s.directory.GetPodcastByFeedURL(ctx, podcast.FeedURL)
	if err != nil {
		return fmt.Errorf("fetching feed metadata: %w", err)
	}

	if err := s.podcastRepo.PatchPodcast(ctx, podcast.ID, directoryPodcastPatch(feed)); err != nil {
		return err
	}

	// The directory may report a canonical URL differing from the one the
	// user subscribed with (redirects). Record it as an alternate so feed
	// URL lookups keep working for both.
	if feed.URL != "" && feed.URL != podcast.FeedURL {
		if err := s.podcastRepo.AddAltFeedURL(ctx, podcast.ID, feed.URL); err != nil {
			return err
		}
	}

	reconciled, existing, err := s.syncEpisodes(ctx, podcast)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	status := models.StatusProcessed
	patch := models.PodcastPatch{
		Status:             &status,
		LastEpisodeFetchAt: &now,
	}
	all := append(reconciled, existing...)
	patch.FirstEpisodePubAt, patch.LastEpisodePubAt = episodePubRange(all)

	if err := s.podcastRepo.PatchPodcast(ctx, podcast.ID, patch); err != nil {
		return err
	}

	log.Printf("[INFO] Subscribed to %s with %d episodes", podcast.FeedURL, len(reconciled))
	return nil
}

// AddPodcasts subscribes to every entry concurrently. Failures are isolated:
// one podcast failing neither blocks nor rolls back the others. The first
// error observed is returned after all entries have settled.
func (s *Service) AddPodcasts(ctx context.Context, subs []NewSubscription) error {
	var group errgroup.Group
	for _, sub := range subs {
		sub := sub
		group.Go(func() error {
			if _, err := s.AddPodcast(ctx, sub); err != nil {
				log.Printf("[WARN] Failed to add podcast %s: %v", sub.FeedURL, err)
				return err
			}
			return nil
		})
	}
	return group.Wait()
}

// DeletePodcast unsubscribes: the podcast and all of its episodes are
// removed atomically.
func (s *Service) DeletePodcast(ctx context.Context, id uint) error {
	return s.podcastRepo.DeletePodcastCascade(ctx, id)
}

// RefreshAll fetches the current remote episode list for every stored
// podcast and reconciles it into the local store. A fetch failure for one
// podcast is logged and skipped; the refresh never aborts as a whole.
func (s *Service) RefreshAll(ctx context.Context) error {
	stored, err := s.podcastRepo.ListPodcasts(ctx)
	if err != nil {
		return err
	}

	for i := range stored {
		podcast := &stored[i]

		// A podcast still in StatusNew had its add interrupted by a remote
		// failure. Retry the full completion path for it.
		if podcast.Status == models.StatusNew {
			if err := s.completePodcast(ctx, podcast); err != nil {
				log.Printf("[WARN] Skipping pending podcast %s: %v", podcast.FeedURL, err)
			}
			continue
		}

		if err := s.refreshPodcast(ctx, podcast); err != nil {
			log.Printf("[WARN] Skipping podcast %s: %v", podcast.FeedURL, err)
		}
	}
	return nil
}

// refreshPodcast reconciles one podcast's remote episode list against the
// stored episodes and stamps the fetch bookkeeping.
func (s *Service) refreshPodcast(ctx context.Context, podcast *models.Podcast) error {
	reconciled, existing, err := s.syncEpisodes(ctx, podcast)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	patch := models.PodcastPatch{LastEpisodeFetchAt: &now}
	all := append(reconciled, existing...)
	patch.FirstEpisodePubAt, patch.LastEpisodePubAt = episodePubRange(all)

	return s.podcastRepo.PatchPodcast(ctx, podcast.ID, patch)
}

// syncEpisodes fetches the remote episode list and reconciles it into the
// store. Matching is by directory episode id: a match overwrites metadata in
// place and preserves identity plus user state, a non-match appends a new
// record. Stored episodes absent from the remote list are left untouched.
// Returns the written batch and the previously stored episodes.
func (s *Service) syncEpisodes(ctx context.Context, podcast *models.Podcast) (reconciled, existing []models.Episode, err error) {
	items, err := s.directory.GetEpisodesByFeedURL(ctx, podcast.FeedURL, s.episodeLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching episodes: %w", err)
	}

	existing, err = s.episodeRepo.GetEpisodesByPodcastID(ctx, podcast.ID)
	if err != nil {
		return nil, nil, err
	}

	// Index stored episodes by directory id once per pass.
	byDirectoryID := make(map[int64]*models.Episode, len(existing))
	for i := range existing {
		if existing[i].PodcastIndexID != 0 {
			byDirectoryID[existing[i].PodcastIndexID] = &existing[i]
		}
	}

	reconciled = make([]models.Episode, 0, len(items))
	for _, item := range items {
		incoming := directoryEpisodeToModel(item, podcast.ID)
		if match, ok := byDirectoryID[item.ID]; ok {
			incoming.ID = match.ID
			incoming.CreatedAt = match.CreatedAt
			incoming.Categories = match.Categories
			incoming.Position = match.Position
			incoming.LastPlayedAt = match.LastPlayedAt
			incoming.Finished = match.Finished
		}
		reconciled = append(reconciled, incoming)
	}

	if err := s.episodeRepo.PutEpisodes(ctx, reconciled); err != nil {
		return nil, nil, err
	}
	return reconciled, existing, nil
}

// GetPodcasts returns all podcasts. Podcasts whose title is not yet known
// (metadata fetch still pending) have the feed URL substituted for display;
// the stored record is not mutated.
func (s *Service) GetPodcasts(ctx context.Context) ([]models.Podcast, error) {
	stored, err := s.podcastRepo.ListPodcasts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		if stored[i].Title == "" {
			stored[i].Title = stored[i].FeedURL
		}
	}
	return stored, nil
}

// GetPodcast looks up a podcast by feed URL. Absence is not an error: the
// result is nil when no podcast matches.
func (s *Service) GetPodcast(ctx context.Context, feedURL string) (*models.Podcast, error) {
	podcast, err := s.podcastRepo.GetPodcastByFeedURL(ctx, feedURL)
	if err != nil {
		if errors.Is(err, podcasts.ErrPodcastNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return podcast, nil
}

// GetPodcastByID looks up a podcast by local id, nil when absent.
func (s *Service) GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error) {
	podcast, err := s.podcastRepo.GetPodcastByID(ctx, id)
	if err != nil {
		if errors.Is(err, podcasts.ErrPodcastNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return podcast, nil
}

// GetEpisodes resolves a podcast by feed URL and returns its episodes,
// newest first. An unknown feed URL yields an empty collection, never an
// error.
func (s *Service) GetEpisodes(ctx context.Context, feedURL string) ([]models.Episode, error) {
	podcast, err := s.GetPodcast(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	if podcast == nil {
		return []models.Episode{}, nil
	}
	return s.episodeRepo.GetEpisodesByPodcastID(ctx, podcast.ID)
}

// GetAllEpisodes pages through episodes across all podcasts, each joined to
// its owning podcast record.
func (s *Service) GetAllEpisodes(ctx context.Context, limit int, asOfPubDate time.Time) ([]EpisodeWithPodcast, error) {
	eps, err := s.episodeRepo.GetAllEpisodes(ctx, limit, asOfPubDate)
	if err != nil {
		return nil, err
	}
	return s.joinPodcasts(ctx, eps)
}

// GetEpisodesInProgress returns every episode whose playback has started,
// joined to its owning podcast, most recently listened first.
func (s *Service) GetEpisodesInProgress(ctx context.Context) ([]EpisodeWithPodcast, error) {
	eps, err := s.episodeRepo.GetEpisodesInProgress(ctx)
	if err != nil {
		return nil, err
	}
	return s.joinPodcasts(ctx, eps)
}

// joinPodcasts attaches the owning podcast to each episode. Every episode's
// podcast id must resolve; a miss would mean the cascade-delete invariant
// was broken, so it is logged loudly rather than silently dropped.
func (s *Service) joinPodcasts(ctx context.Context, eps []models.Episode) ([]EpisodeWithPodcast, error) {
	stored, err := s.podcastRepo.ListPodcasts(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Podcast, len(stored))
	for i := range stored {
		byID[stored[i].ID] = &stored[i]
	}

	joined := make([]EpisodeWithPodcast, 0, len(eps))
	for _, ep := range eps {
		podcast, ok := byID[ep.PodcastID]
		if !ok {
			log.Printf("[ERROR] Episode %d references unknown podcast %d", ep.ID, ep.PodcastID)
		}
		joined = append(joined, EpisodeWithPodcast{Episode: ep, Podcast: podcast})
	}
	return joined, nil
}

// UpdateEpisodePosition records the current playback position in seconds and
// stamps the last-listened time. The result is explicit; callers that do not
// care may ignore it, but failures are never silently dropped.
func (s *Service) UpdateEpisodePosition(ctx context.Context, episodeID uint, position int) error {
	if position < 0 {
		return fmt.Errorf("position cannot be negative")
	}
	now := time.Now().UTC()
	return s.episodeRepo.PatchEpisode(ctx, episodeID, models.EpisodePatch{
		Position:     &position,
		LastPlayedAt: &now,
	})
}
