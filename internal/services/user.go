package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/auth"
	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"

	"github.com/google/uuid"
)

const (
	authMethodLogin  = "login"
	authMethodSignup = "signup"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email address is already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	store         core.UserStore
	localProvider *auth.LocalAuthProvider
	auditService  *AuditService
	metrics       core.Recorder
	userCache     core.Cache[models.User]
	userCacheTTL  time.Duration
}

func NewUserService(
	s core.UserStore,
	localProvider *auth.LocalAuthProvider,
	auditService *AuditService,
	m core.Recorder,
	userCache core.Cache[models.User],
	userCacheTTL time.Duration,
) *UserService {
	return &UserService{
		store:         s,
		localProvider: localProvider,
		auditService:  auditService,
		metrics:       m,
		userCache:     userCache,
		userCacheTTL:  userCacheTTL,
	}
}

// Signup registers a new account with a bcrypt-hashed password
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	start := time.Now()

	user, err := s.signup(ctx, email, password)
	s.metrics.RecordAuthAttempt(authMethodSignup, err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	s.auditService.Log(ctx, AuditLogEntry{
		EventType:    models.EventSignup,
		ActorUserID:  user.ID,
		ResourceType: models.ResourceUser,
		ResourceID:   user.ID,
		Action:       "Account created",
		Success:      true,
	})
	return user, nil
}

func (s *UserService) signup(ctx context.Context, email, password string) (*models.User, error) {
	email = auth.NormalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}

	hash, err := s.localProvider.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailConflict) {
			return nil, ErrEmailTaken
		}
		s.metrics.RecordDatabaseQueryError("create_user")
		log.Printf("[Auth] Failed to create user email=%s: %v", email, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[Auth] Signup user_id=%s", user.ID)
	return user, nil
}

// Login verifies an email/password pair
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	start := time.Now()

	user, err := s.localProvider.Authenticate(ctx, email, password)
	s.metrics.RecordAuthAttempt(authMethodLogin, err == nil, time.Since(start))
	if err != nil {
		log.Printf("[Auth] Login failed provider=%s: %v", s.localProvider.Name(), err)
		s.auditService.Log(ctx, AuditLogEntry{
			EventType:    models.EventAuthenticationFailure,
			Severity:     models.SeverityWarning,
			ResourceType: models.ResourceUser,
			Action:       "Login failed",
			Details:      models.AuditDetails{"email": auth.NormalizeEmail(email)},
			Success:      false,
			ErrorMessage: err.Error(),
		})
		return nil, ErrInvalidCredentials
	}

	s.auditService.Log(ctx, AuditLogEntry{
		EventType:    models.EventAuthenticationSuccess,
		ActorUserID:  user.ID,
		ResourceType: models.ResourceUser,
		ResourceID:   user.ID,
		Action:       "Login",
		Success:      true,
	})
	return user, nil
}

// GetUserByID returns a user through the user cache
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userCache.GetWithFetch(
		ctx,
		"user:"+id,
		s.userCacheTTL,
		func(ctx context.Context, _ string) (models.User, error) {
			u, err := s.store.GetUserByID(ctx, id)
			if err != nil {
				return models.User{}, err
			}
			return *u, nil
		},
	)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.metrics.RecordDatabaseQueryError("get_user")
		return nil, err
	}
	return &user, nil
}
