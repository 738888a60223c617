package episodes

import (
	"github.com/gin-gonic/gin"

	"github.com/subcast/subcast/api/types"
)

// RegisterRoutes registers episode routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/episodes?feed_url=... - Episodes for one podcast
	router.GET("", GetByFeedURL(deps))

	// GET /api/v1/episodes/recent?limit=&before= - Page across all podcasts
	router.GET("/recent", GetRecent(deps))

	// GET /api/v1/episodes/in-progress - Episodes with playback started
	router.GET("/in-progress", GetInProgress(deps))

	// PUT /api/v1/episodes/:id/playback - Record playback position
	router.PUT("/:id/playback", PutPlayback(deps))
}
