package types

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// SendSuccess writes a 200 response with the given payload
func SendSuccess(c *gin.Context, data gin.H) {
	data["status"] = StatusOK
	c.JSON(http.StatusOK, data)
}

// SendBadRequest writes a 400 error response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  StatusError,
		"message": message,
	})
}

// SendNotFound writes a 404 error response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  StatusError,
		"message": message,
	})
}

// SendConflict writes a 409 error response
func SendConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, gin.H{
		"status":  StatusError,
		"message": message,
	})
}

// SendInternalError writes a 500 error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  StatusError,
		"message": message,
	})
}
