package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inviteModel "github.com/festy23/team_invite/internal/invite/model"
)

// ErrorResponse represents the error body returned by the JSON API.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SessionResponse is the body of session endpoints.
type SessionResponse struct {
	SessionID string                `json:"session_id"`
	State     inviteModel.FormState `json:"state"`
}

// errorResponse writes an error body and aborts the request.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.AbortWithStatusJSON(statusCode, resp)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, "NOT_FOUND", message, http.StatusNotFound)
}

func internalErrorResponse(c *gin.Context) {
	errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}
