// Package response holds the JSON response helpers shared by all handlers.
package response

import "github.com/gin-gonic/gin"

// ErrorBody is the wire shape of every non-2xx response.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Error writes `{"message": ...}` with the given status.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Message: message})
}

// AbortWithError writes an error body and stops the handler chain. Meant for
// middleware rejections.
func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Message: message})
}
