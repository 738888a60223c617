package podcasts

import (
	"errors"
	"log"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subcast/subcast/api/types"
	"github.com/subcast/subcast/internal/services/podcasts"
	"github.com/subcast/subcast/internal/services/subscriptions"
)

// GetList returns all subscribed podcasts
// GET /api/v1/podcasts
func GetList(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		listed, err := deps.Subscriptions.GetPodcasts(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to list podcasts: %v", err)
			types.SendInternalError(c, "failed to list podcasts")
			return
		}

		types.SendSuccess(c, gin.H{
			"podcasts": listed,
			"count":    len(listed),
		})
	}
}

// PostAdd subscribes to a podcast by feed URL
// POST /api/v1/podcasts
// Body: {"feed_url": "...", "title": "optional"}
func PostAdd(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request subscriptions.NewSubscription
		if err := c.ShouldBindJSON(&request); err != nil || request.FeedURL == "" {
			types.SendBadRequest(c, "invalid request body, 'feed_url' field is required")
			return
		}

		if _, err := url.ParseRequestURI(request.FeedURL); err != nil {
			types.SendBadRequest(c, "invalid feed URL format")
			return
		}

		podcast, err := deps.Subscriptions.AddPodcast(c.Request.Context(), request)
		if err != nil {
			if errors.Is(err, podcasts.ErrDuplicateFeedURL) {
				types.SendConflict(c, "already subscribed to this feed")
				return
			}
			log.Printf("[ERROR] Failed to add podcast %s: %v", request.FeedURL, err)
			types.SendInternalError(c, "failed to add podcast")
			return
		}

		types.SendSuccess(c, gin.H{"podcast": podcast})
	}
}

// GetByID returns one podcast by local id
// GET /api/v1/podcasts/:id
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			types.SendBadRequest(c, "invalid podcast ID")
			return
		}

		podcast, err := deps.Subscriptions.GetPodcastByID(c.Request.Context(), uint(id))
		if err != nil {
			log.Printf("[ERROR] Failed to get podcast %d: %v", id, err)
			types.SendInternalError(c, "failed to get podcast")
			return
		}
		if podcast == nil {
			types.SendNotFound(c, "podcast not found")
			return
		}

		types.SendSuccess(c, gin.H{"podcast": podcast})
	}
}

// Delete unsubscribes from a podcast, removing all of its episodes
// DELETE /api/v1/podcasts/:id
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			types.SendBadRequest(c, "invalid podcast ID")
			return
		}

		if err := deps.Subscriptions.DeletePodcast(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, podcasts.ErrPodcastNotFound) {
				types.SendNotFound(c, "podcast not found")
				return
			}
			log.Printf("[ERROR] Failed to delete podcast %d: %v", id, err)
			types.SendInternalError(c, "failed to delete podcast")
			return
		}

		types.SendSuccess(c, gin.H{"deleted": id})
	}
}

// PostSync refreshes episode lists for all subscribed podcasts
// POST /api/v1/podcasts/sync
func PostSync(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Subscriptions.RefreshAll(c.Request.Context()); err != nil {
			log.Printf("[ERROR] Refresh failed: %v", err)
			types.SendInternalError(c, "refresh failed")
			return
		}

		types.SendSuccess(c, gin.H{"message": "refresh complete"})
	}
}
