package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape: success plus either data or a
// human-readable message. Credential material never passes through here;
// handlers may only put presenter output in Data.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, Envelope{Success: true, Data: data})
}

// SuccessMessage responds with a message instead of a payload, for
// operations whose result is an acknowledgement (delete).
func SuccessMessage(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, Envelope{Success: true, Message: message})
}

func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, Envelope{Success: false, Message: message})
}
