package middleware

import (
	"github.com/fabianthdev/sidestore-id-backend/internal/token"

	"github.com/gin-gonic/gin"
)

// RequireScope rejects requests whose principal does not satisfy required.
// It must run after the AuthGuard middleware.
func RequireScope(required token.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !token.Satisfies(principal.Scope, required) {
			abortUnauthorized(c, "Insufficient scope")
			return
		}
		c.Next()
	}
}
