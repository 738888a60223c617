package podcastindex

// Podcast represents a podcast feed from the Podcast Index API
type Podcast struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	URL            string            `json:"url"`
	OriginalURL    string            `json:"originalUrl"`
	Link           string            `json:"link"`
	Description    string            `json:"description"`
	Author         string            `json:"author"`
	Image          string            `json:"image"`
	Artwork        string            `json:"artwork"`
	LastUpdateTime int64             `json:"lastUpdateTime"`
	Language       string            `json:"language"`
	Categories     map[string]string `json:"categories"`
	EpisodeCount   int               `json:"episodeCount"`
	Value          *Value            `json:"value,omitempty"`
}

// Episode represents an episode item from the Podcast Index API
type Episode struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Link            string `json:"link,omitempty"`
	Description     string `json:"description"`
	GUID            string `json:"guid"`
	DatePublished   int64  `json:"datePublished"`
	EnclosureURL    string `json:"enclosureUrl"`
	EnclosureType   string `json:"enclosureType,omitempty"`
	EnclosureLength int64  `json:"enclosureLength,omitempty"`
	Duration        *int   `json:"duration"`
	Image           string `json:"image,omitempty"`
	FeedID          int64  `json:"feedId"`
	FeedURL         string `json:"feedUrl,omitempty"`
}

// Value represents value-for-value monetization information
type Value struct {
	Model        ValueModel         `json:"model"`
	Destinations []ValueDestination `json:"destinations"`
}

// ValueModel represents the value model type
type ValueModel struct {
	Type      string `json:"type"`
	Method    string `json:"method"`
	Suggested string `json:"suggested,omitempty"`
}

// ValueDestination represents a single value destination
type ValueDestination struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
	Type    string `json:"type"`
	Split   int    `json:"split"`
	Fee     bool   `json:"fee,omitempty"`
}

// PodcastByFeedURLResponse wraps the podcasts/byfeedurl endpoint response
type PodcastByFeedURLResponse struct {
	Status      string  `json:"status"` // "true" or "false"
	Feed        Podcast `json:"feed"`
	Description string  `json:"description"`
}

// EpisodesResponse wraps the episodes/byfeedurl endpoint response
type EpisodesResponse struct {
	Status      string    `json:"status"`
	Items       []Episode `json:"items"`
	Count       int       `json:"count"`
	Description string    `json:"description"`
}
