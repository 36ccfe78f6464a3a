package handlers

import "github.com/gin-gonic/gin"

// MsgInternalError is returned when a request fails without a backend message
const MsgInternalError = "Internal server error"

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// AbortWithError writes {"error": message} and stops the handler chain.
// Nothing is written if the response has already started.
func AbortWithError(c *gin.Context, status int, message string) {
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
