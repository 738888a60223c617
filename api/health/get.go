package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subcast/subcast/api/types"
)

// Get reports process and database health
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := gin.H{"status": "not configured", "connected": false}
		if deps != nil && deps.DB != nil {
			if err := deps.DB.HealthCheck(); err != nil {
				dbStatus = gin.H{"status": "unhealthy", "connected": false, "error": err.Error()}
			} else {
				dbStatus = gin.H{"status": "connected", "connected": true}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": dbStatus,
		})
	}
}
