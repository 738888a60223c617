package subscriptions

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/subcast/subcast/internal/models"
	"github.com/subcast/subcast/internal/services/podcastindex"
)

// directoryEpisodeToModel converts a directory episode into the local schema,
// tagged with the owning podcast's local id. User-state fields are left at
// their zero values; they belong to the stored record, never to the remote
// payload.
func directoryEpisodeToModel(item podcastindex.Episode, podcastID uint) models.Episode {
	return models.Episode{
		PodcastID:       podcastID,
		PodcastIndexID:  item.ID,
		Title:           item.Title,
		Link:            item.Link,
		Description:     item.Description,
		ImageURL:        item.Image,
		GUID:            item.GUID,
		PublishedAt:     time.Unix(item.DatePublished, 0).UTC(),
		EnclosureURL:    item.EnclosureURL,
		EnclosureType:   item.EnclosureType,
		EnclosureLength: item.EnclosureLength,
		Duration:        item.Duration,
	}
}

// directoryPodcastPatch builds the metadata patch applied to a stored podcast
// from freshly fetched directory metadata.
func directoryPodcastPatch(feed *podcastindex.Podcast) models.PodcastPatch {
	patch := models.PodcastPatch{
		Title:          &feed.Title,
		Description:    &feed.Description,
		Link:           &feed.Link,
		ImageURL:       &feed.Image,
		PodcastIndexID: &feed.ID,
	}

	if feed.Value != nil {
		if raw, err := json.Marshal(feed.Value); err != nil {
			log.Printf("[WARN] Failed to marshal value block for feed %d: %v", feed.ID, err)
		} else {
			value := datatypes.JSON(raw)
			patch.Value = &value
		}
	}

	return patch
}

// episodePubRange returns the earliest and latest publish dates in a batch,
// or nil when the batch is empty.
func episodePubRange(episodes []models.Episode) (first, last *time.Time) {
	for i := range episodes {
		pub := episodes[i].PublishedAt
		if pub.IsZero() {
			continue
		}
		if first == nil || pub.Before(*first) {
			t := pub
			first = &t
		}
		if last == nil || pub.After(*last) {
			t := pub
			last = &t
		}
	}
	return first, last
}
