package handlers

import (
	"errors"
	"net/http"

	"github.com/fabianthdev/sidestore-id-backend/internal/auth"
	"github.com/fabianthdev/sidestore-id-backend/internal/middleware"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username *string `json:"username"`
}

type authResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Profile      profileResponse `json:"profile"`
}

func newProfileResponse(u *models.User) profileResponse {
	return profileResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

// AuthHandler serves the account endpoints under /api/auth
type AuthHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
	secureCookie bool
}

func NewAuthHandler(
	us *services.UserService,
	ts *services.TokenService,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		secureCookie: secureCookie,
	}
}

// Signup creates an account and logs it in
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			badRequest(c, "Invalid email address")
		case errors.Is(err, auth.ErrPasswordTooShort):
			badRequest(c, err.Error())
		case errors.Is(err, auth.ErrPasswordHashing):
			badRequest(c, "Password cannot be used")
		case errors.Is(err, services.ErrEmailTaken):
			respondError(c, http.StatusConflict, errConflict, "A user with this email already exists")
		default:
			serverError(c, "Failed to create user")
		}
		return
	}

	h.issueSession(c, user)
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, errUnauthorized, "Invalid email or password")
			return
		}
		serverError(c, "Failed to log in")
		return
	}

	h.issueSession(c, user)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(c, http.StatusUnauthorized, errUnauthorized, "User not found")
			return
		}
		serverError(c, "Failed to load user")
		return
	}

	pair, err := h.tokenService.Refresh(c.Request.Context(), user.ID, principal.Scope)
	if err != nil {
		serverError(c, "Failed to issue tokens")
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, authResponse{
		AccessToken:  pair.Access.TokenString,
		RefreshToken: pair.Refresh.TokenString,
		Profile:      newProfileResponse(user),
	})
}

// Logout clears the token cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	var userID string
	if principal, ok := middleware.GetPrincipal(c); ok {
		userID = principal.UserID
	}
	h.tokenService.Logout(c.Request.Context(), userID)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Bye"})
}

// Me returns the caller's profile
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, errNotFound, "User not found")
			return
		}
		serverError(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (h *AuthHandler) issueSession(c *gin.Context, user *models.User) {
	pair, err := h.tokenService.IssuePair(user.ID, token.ScopeFull)
	if err != nil {
		serverError(c, "Failed to issue tokens")
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, authResponse{
		AccessToken:  pair.Access.TokenString,
		RefreshToken: pair.Refresh.TokenString,
		Profile:      newProfileResponse(user),
	})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *token.Pair) {
	c.SetSameSite(http.SameSiteStrictMode)
	for _, r := range []*token.Result{pair.Access, pair.Refresh} {
		maxAge := int(r.ExpiresAt.Sub(r.Claims.IssuedAt.Time).Seconds())
		c.SetCookie(
			middleware.CookieFor(r.Claims.Type),
			r.TokenString,
			maxAge,
			"/",
			"",
			h.secureCookie,
			true,
		)
	}
}
