package api

import (
	"github.com/gin-gonic/gin"

	"github.com/subcast/subcast/api/episodes"
	"github.com/subcast/subcast/api/health"
	"github.com/subcast/subcast/api/podcasts"
	"github.com/subcast/subcast/api/types"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	health.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")
	podcasts.RegisterRoutes(v1.Group("/podcasts"), deps)
	episodes.RegisterRoutes(v1.Group("/episodes"), deps)
}
