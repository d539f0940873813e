package middleware

import (
	"net/http"
	"strings"

	"github.com/fabianthdev/sidestore-id-backend/internal/token"
)

// Cookie names holding the tokens set at login
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieFor returns the cookie that carries tokens of the given type
func CookieFor(typ token.Type) string {
	if typ == token.TypeRefresh {
		return RefreshTokenCookie
	}
	return AccessTokenCookie
}

// ExtractToken finds the candidate token for a request: a bearer value in
// the Authorization header, else the cookie for the expected token type.
func ExtractToken(r *http.Request, expected token.Type) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, value, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, token.TokenTypeBearer) {
			value = strings.TrimSpace(value)
			return value, value != ""
		}
		return "", false
	}

	cookie, err := r.Cookie(CookieFor(expected))
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
