package response

import "github.com/gin-gonic/gin"

// JSON success/error helpers. Errors carry a single message; validation
// failures additionally carry a field-keyed error map so a client can
// highlight every offending field at once.

func OK(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func ValidationError(c *gin.Context, statusCode int, message string, fields map[string]string) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"errors":  fields,
	})
}
