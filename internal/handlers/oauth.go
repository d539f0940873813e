package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errNotImplemented = "not_implemented"

// AuthorizeNotConfigured answers the OAuth authorization path when no
// authorization engine is mounted. The auth guard has already resolved the
// caller, anonymously when no token was sent, so an engine replacing this
// handler reads the same principal through middleware.GetPrincipal.
func AuthorizeNotConfigured(c *gin.Context) {
	respondError(c, http.StatusNotImplemented, errNotImplemented,
		"No OAuth authorization engine is configured on this server")
}
