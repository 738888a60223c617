package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Podcast status values. A podcast is created as StatusNew when the user
// subscribes and becomes StatusProcessed once its directory metadata and
// episode list have been fetched for the first time.
const (
	StatusNew       = "new"
	StatusProcessed = "processed"
)

// Podcast represents a subscribed podcast feed
type Podcast struct {
	gorm.Model
	Status      string `json:"status" gorm:"not null;default:new"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	ImageURL    string `json:"image_url"`
	Subscribed  bool   `json:"subscribed" gorm:"default:true"`

	// FeedURL is the natural key. AltFeedURLs collects feed URLs the
	// directory reported after redirects.
	FeedURL     string          `json:"feed_url" gorm:"uniqueIndex;not null"`
	AltFeedURLs []PodcastAltURL `json:"alt_feed_urls,omitempty" gorm:"foreignKey:PodcastID"`

	// Directory (Podcast Index) identity and fetch tracking
	PodcastIndexID     int64      `json:"podcast_index_id" gorm:"index"`
	LastEpisodeFetchAt *time.Time `json:"last_episode_fetch_at"`
	LastEpisodePubAt   *time.Time `json:"last_episode_pub_at"`
	FirstEpisodePubAt  *time.Time `json:"first_episode_pub_at"`

	// Value-for-value monetization block as returned by the directory
	Value datatypes.JSON `json:"value,omitempty"`

	Episodes []Episode `json:"episodes,omitempty" gorm:"foreignKey:PodcastID"`
}

// PodcastAltURL is an alternate feed URL the directory reported for a
// podcast. Kept in its own table so feed URL fallback lookups stay indexed.
type PodcastAltURL struct {
	ID        uint   `json:"-" gorm:"primarykey"`
	PodcastID uint   `json:"-" gorm:"not null;index"`
	URL       string `json:"url" gorm:"uniqueIndex;not null"`
}

// Episode represents a single episode belonging to a podcast
type Episode struct {
	gorm.Model
	PodcastID      uint  `json:"podcast_id" gorm:"not null;index"`
	PodcastIndexID int64 `json:"podcast_index_id" gorm:"index"` // match key across syncs

	Title       string         `json:"title"`
	Link        string         `json:"link" gorm:"index"`
	Description string         `json:"description" gorm:"type:text"`
	ImageURL    string         `json:"image_url"`
	Categories  datatypes.JSON `json:"categories,omitempty"`
	GUID        string         `json:"guid" gorm:"index"`

	PublishedAt time.Time `json:"published_at" gorm:"index"`

	// Enclosure (media file reference)
	EnclosureURL    string `json:"enclosure_url" gorm:"index"`
	EnclosureType   string `json:"enclosure_type"`
	EnclosureLength int64  `json:"enclosure_length"`
	Duration        *int   `json:"duration"` // seconds, nullable

	// User state, never touched by sync. Position is nil until playback
	// first starts; any non-nil value (including 0) means "in progress".
	Position     *int       `json:"position" gorm:"index"`
	LastPlayedAt *time.Time `json:"last_played_at"`
	Finished     bool       `json:"finished" gorm:"default:false"`
}

// PodcastPatch is a partial update for a Podcast. Nil fields are left
// unchanged; the repository merges it field-by-field against the stored row.
type PodcastPatch struct {
	Status             *string
	Title              *string
	Description        *string
	Link               *string
	ImageURL           *string
	Subscribed         *bool
	PodcastIndexID     *int64
	LastEpisodeFetchAt *time.Time
	LastEpisodePubAt   *time.Time
	FirstEpisodePubAt  *time.Time
	Value              *datatypes.JSON
}

// Fields returns the patch as a column→value map for gorm Updates.
func (p PodcastPatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Status != nil {
		fields["status"] = *p.Status
	}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Link != nil {
		fields["link"] = *p.Link
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	if p.Subscribed != nil {
		fields["subscribed"] = *p.Subscribed
	}
	if p.PodcastIndexID != nil {
		fields["podcast_index_id"] = *p.PodcastIndexID
	}
	if p.LastEpisodeFetchAt != nil {
		fields["last_episode_fetch_at"] = *p.LastEpisodeFetchAt
	}
	if p.LastEpisodePubAt != nil {
		fields["last_episode_pub_at"] = *p.LastEpisodePubAt
	}
	if p.FirstEpisodePubAt != nil {
		fields["first_episode_pub_at"] = *p.FirstEpisodePubAt
	}
	if p.Value != nil {
		fields["value"] = *p.Value
	}
	return fields
}

// EpisodePatch is a partial update for an Episode, analogous to PodcastPatch.
type EpisodePatch struct {
	Title        *string
	Link         *string
	Description  *string
	ImageURL     *string
	Categories   *datatypes.JSON
	GUID         *string
	PublishedAt  *time.Time
	Duration     *int
	Position     *int
	LastPlayedAt *time.Time
	Finished     *bool
}

// Fields returns the patch as a column→value map for gorm Updates.
func (p EpisodePatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Link != nil {
		fields["link"] = *p.Link
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.ImageURL != nil {
		fields["image_url"] = *p.ImageURL
	}
	if p.Categories != nil {
		fields["categories"] = *p.Categories
	}
	if p.GUID != nil {
		fields["guid"] = *p.GUID
	}
	if p.PublishedAt != nil {
		fields["published_at"] = *p.PublishedAt
	}
	if p.Duration != nil {
		fields["duration"] = *p.Duration
	}
	if p.Position != nil {
		fields["position"] = *p.Position
	}
	if p.LastPlayedAt != nil {
		fields["last_played_at"] = *p.LastPlayedAt
	}
	if p.Finished != nil {
		fields["finished"] = *p.Finished
	}
	return fields
}
