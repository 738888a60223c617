package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/subcast/subcast/api/types"
)

// RegisterRoutes registers podcast subscription routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/podcasts - List all subscribed podcasts
	router.GET("", GetList(deps))

	// POST /api/v1/podcasts - Subscribe to a feed
	router.POST("", PostAdd(deps))

	// POST /api/v1/podcasts/sync - Refresh all subscriptions now
	router.POST("/sync", PostSync(deps))

	// GET /api/v1/podcasts/:id - Get one podcast by local id
	router.GET("/:id", GetByID(deps))

	// DELETE /api/v1/podcasts/:id - Unsubscribe (cascades to episodes)
	router.DELETE("/:id", Delete(deps))
}
