package api

import (
	"alcyxob/physio-app/internal/domain"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes of the failure body {"error":{"code":...,"message":...}}.
const (
	codeValidationFailed   = "validation_failed"
	codeDisclaimerRequired = "disclaimer_required"
	codeNotFound           = "resource_not_found"
	codeServerError        = "server_error"
	codeUnauthorized       = "unauthorized"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// statusForKind is the only place an error kind becomes an HTTP status.
func statusForKind(kind domain.ErrorKind) (int, string) {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest, codeValidationFailed
	case domain.KindDisclaimerRequired:
		return http.StatusForbidden, codeDisclaimerRequired
	case domain.KindNotFound:
		return http.StatusNotFound, codeNotFound
	default:
		return http.StatusInternalServerError, codeServerError
	}
}

// respondError writes a service error. Server errors keep their cause out of the response.
func respondError(c *gin.Context, err error) {
	status, code := statusForKind(domain.KindOf(err))
	message := domain.MessageOf(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "request_id", getRequestID(c), "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: errorBody{Code: code, Message: message}})
}
