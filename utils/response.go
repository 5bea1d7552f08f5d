package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends data as the JSON body with the given status.
// The backend contract has no envelope: the entity itself is the body.
func JSONResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// JSONError sends the backend's error shape: {"error": message}
func JSONError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
	})
}
