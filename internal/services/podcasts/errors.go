package podcasts

import "errors"

// Common errors
var (
	ErrPodcastNotFound  = errors.New("podcast not found")
	ErrDuplicateFeedURL = errors.New("podcast with this feed URL already exists")
)
