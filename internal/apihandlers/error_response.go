package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
// Example: { "detail": "Entry not found" }
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse acknowledges an operation that returns no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSONError sends a detail error response and stops the handler chain.
func JSONError(ctx *gin.Context, status int, msg string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Detail: msg})
}

// Convenience wrappers
func Unprocessable(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusUnprocessableEntity, msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, msg)
}
