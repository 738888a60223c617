package episodes

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/subcast/subcast/api/types"
	"github.com/subcast/subcast/internal/services/episodes"
)

const defaultPageSize = 50

// GetByFeedURL returns the stored episodes of one podcast, newest first.
// An unknown feed URL yields an empty list.
// GET /api/v1/episodes?feed_url=...
func GetByFeedURL(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		feedURL := c.Query("feed_url")
		if feedURL == "" {
			types.SendBadRequest(c, "'feed_url' query parameter is required")
			return
		}

		eps, err := deps.Subscriptions.GetEpisodes(c.Request.Context(), feedURL)
		if err != nil {
			log.Printf("[ERROR] Failed to get episodes for %s: %v", feedURL, err)
			types.SendInternalError(c, "failed to get episodes")
			return
		}

		types.SendSuccess(c, gin.H{
			"episodes": eps,
			"count":    len(eps),
		})
	}
}

// GetRecent pages through episodes across all subscriptions. The optional
// RFC 3339 "before" parameter is the publish-date cursor for the next page.
// GET /api/v1/episodes/recent?limit=50&before=2026-01-02T15:04:05Z
func GetRecent(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultPageSize
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				types.SendBadRequest(c, "invalid limit")
				return
			}
			limit = parsed
		}

		asOf := time.Now().UTC()
		if raw := c.Query("before"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				types.SendBadRequest(c, "invalid 'before' timestamp, expected RFC 3339")
				return
			}
			asOf = parsed
		}

		page, err := deps.Subscriptions.GetAllEpisodes(c.Request.Context(), limit, asOf)
		if err != nil {
			log.Printf("[ERROR] Failed to page episodes: %v", err)
			types.SendInternalError(c, "failed to get episodes")
			return
		}

		types.SendSuccess(c, gin.H{
			"episodes": page,
			"count":    len(page),
		})
	}
}

// GetInProgress returns every episode whose playback has started, most
// recently listened first.
// GET /api/v1/episodes/in-progress
func GetInProgress(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		listed, err := deps.Subscriptions.GetEpisodesInProgress(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to get in-progress episodes: %v", err)
			types.SendInternalError(c, "failed to get episodes")
			return
		}

		types.SendSuccess(c, gin.H{
			"episodes": listed,
			"count":    len(listed),
		})
	}
}

// PlaybackUpdateRequest records the current playback position
type PlaybackUpdateRequest struct {
	Position int `json:"position"` // seconds
}

// PutPlayback updates the playback position of an episode
// PUT /api/v1/episodes/:id/playback
func PutPlayback(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			types.SendBadRequest(c, "invalid episode ID")
			return
		}

		var req PlaybackUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.SendBadRequest(c, "invalid request body")
			return
		}
		if req.Position < 0 {
			types.SendBadRequest(c, "position cannot be negative")
			return
		}

		if err := deps.Subscriptions.UpdateEpisodePosition(c.Request.Context(), uint(id), req.Position); err != nil {
			if errors.Is(err, episodes.ErrEpisodeNotFound) {
				types.SendNotFound(c, "episode not found")
				return
			}
			log.Printf("[ERROR] Failed to update playback for episode %d: %v", id, err)
			types.SendInternalError(c, "failed to update playback position")
			return
		}

		types.SendSuccess(c, gin.H{
			"episode_id": id,
			"position":   req.Position,
		})
	}
}
