package episodes

import "errors"

// Common errors
var (
	ErrEpisodeNotFound = errors.New("episode not found")
)
