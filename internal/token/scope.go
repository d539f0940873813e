package token

// Scope is the capability level attached to a token.
type Scope string

const (
	// ScopeFull grants access to every protected endpoint.
	ScopeFull Scope = "full"
	// ScopeProfile only grants access to profile-level endpoints.
	ScopeProfile Scope = "profile"
)

// scopeRank orders scopes by strength. Unknown scopes rank 0 and never satisfy
// anything. New levels must be added here with an explicit rank.
var scopeRank = map[Scope]int{
	ScopeProfile: 1,
	ScopeFull:    2,
}

// Rank returns the strength of the scope, 0 if unknown.
func (s Scope) Rank() int {
	return scopeRank[s]
}

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s.Rank() > 0
}

func (s Scope) String() string {
	return string(s)
}

// Satisfies reports whether a token holding scope held may access an endpoint
// requiring scope required.
func Satisfies(held, required Scope) bool {
	need := required.Rank()
	if need == 0 {
		return false
	}
	return held.Rank() >= need
}
