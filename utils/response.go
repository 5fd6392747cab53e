package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// JSONErrorWithCode sends a structured error response carrying a machine-readable
// code and whether the caller can correct the request and retry
func JSONErrorWithCode(c *gin.Context, status int, err error, message, code string, correctable bool) {
	c.JSON(status, gin.H{
		"status":      status,
		"message":     message,
		"error":       err.Error(),
		"error_code":  code,
		"correctable": correctable,
	})
}
