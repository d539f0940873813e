package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type constants
const (
	TokenTypeBearer = "Bearer"
)

// Type distinguishes access tokens from refresh tokens. The two are
// structurally identical and must never be accepted in place of each other.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Claims is the signed claim set carried by every token.
type Claims struct {
	Type  Type  `json:"type"`
	Fresh bool  `json:"fresh"`
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// Result is the outcome of issuing a single token.
type Result struct {
	TokenString string
	TokenType   string
	ExpiresAt   time.Time
	Claims      *Claims
}

// Pair holds an access token together with its refresh token.
type Pair struct {
	Access  *Result
	Refresh *Result
}
