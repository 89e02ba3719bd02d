package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every API endpoint responds with.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}

// ValidationFailed returns 400 with per-field messages. Input validation is
// caught here at the boundary and never reaches the services.
func ValidationFailed(ctx *gin.Context, errors []string) {
	ctx.JSON(400, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errors,
	})
}
