package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes of the JSON error body
const (
	errInvalidRequest = "invalid_request"
	errUnauthorized   = "unauthorized"
	errNotFound       = "not_found"
	errConflict       = "conflict"
	errServerError    = "server_error"
)

func respondError(c *gin.Context, status int, code, description string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":             code,
		"error_description": description,
	})
}

func badRequest(c *gin.Context, description string) {
	respondError(c, http.StatusBadRequest, errInvalidRequest, description)
}

func serverError(c *gin.Context, description string) {
	respondError(c, http.StatusInternalServerError, errServerError, description)
}
