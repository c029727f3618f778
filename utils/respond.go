// utils/respond.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the uniform error envelope.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// RespondWithData writes the uniform success envelope.
func RespondWithData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}
