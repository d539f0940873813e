package handlers

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/auth"
	"github.com/fabianthdev/sidestore-id-backend/internal/cache"
	"github.com/fabianthdev/sidestore-id-backend/internal/config"
	"github.com/fabianthdev/sidestore-id-backend/internal/metrics"
	"github.com/fabianthdev/sidestore-id-backend/internal/middleware"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"
	"github.com/fabianthdev/sidestore-id-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const refreshPath = "/api/auth/refresh"

type testServer struct {
	router   *gin.Engine
	store    *store.Store
	keypair  *signing.Keypair
	provider *token.LocalProvider
	audit    *services.AuditService
	now      time.Time
}

// advance moves the review service clock forward
func (s *testServer) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	kp, err := signing.NewKeypair(private)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:              "handler-test-secret",
		JWTIssuer:              "https://id.example.com",
		JWTExpiration:          time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
	}
	provider := token.NewLocalProvider(cfg)
	m := metrics.NewNoopMetrics()
	audit := services.NewAuditService(db, true, 100)
	t.Cleanup(func() { _ = audit.Shutdown(context.Background()) })

	userService := services.NewUserService(
		db,
		auth.NewLocalAuthProvider(db).WithCost(bcrypt.MinCost),
		audit,
		m,
		cache.NewMemoryCache[models.User](),
		time.Minute,
	)
	tokenService := services.NewTokenService(provider, audit, m)
	srv := &testServer{store: db, keypair: kp, provider: provider, audit: audit, now: time.Now()}
	reviewService := services.NewReviewService(db, kp, audit, m).
		WithClock(func() time.Time { return srv.now })

	authHandler := NewAuthHandler(userService, tokenService, false)
	reviewHandler := NewReviewHandler(reviewService, kp)
	auditHandler := NewAuditHandler(audit)

	guard := middleware.NewAuthGuard(middleware.AuthGuardConfig{
		Verifier: provider,
		Metrics:  m,
		UnprotectedPaths: []string{
			"/api/auth/signup",
			"/api/auth/login",
			"/api/reviews/public_key",
		},
		RefreshPath: refreshPath,
	})

	r := gin.New()
	api := r.Group("/api", guard.Middleware())
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", middleware.RequireScope(token.ScopeFull), authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", middleware.RequireScope(token.ScopeProfile), authHandler.Me)
		authGroup.GET("/activity", middleware.RequireScope(token.ScopeProfile), auditHandler.Activity)
	}
	reviews := api.Group("/reviews")
	{
		reviews.GET("/public_key", reviewHandler.PublicKey)
		reviews.GET("", middleware.RequireScope(token.ScopeFull), reviewHandler.List)
		reviews.POST("/sign", middleware.RequireScope(token.ScopeFull), reviewHandler.Sign)
		reviews.DELETE("/delete", middleware.RequireScope(token.ScopeFull), reviewHandler.Delete)
	}

	srv.router = r
	return srv
}

func (s *testServer) do(
	t *testing.T,
	method, path string,
	body any,
	mutate func(*http.Request),
) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signup registers an account and returns its auth response
func (s *testServer) signup(t *testing.T, email string) authResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    email,
		"password": "correct-horse",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func withBearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error, body.Description
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
