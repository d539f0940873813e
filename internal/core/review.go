package core

import (
	"context"

	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"
)

// ReviewStore is the persistence contract of the review attestation service.
type ReviewStore interface {
	// FindActiveReview returns the published review of a user for an app,
	// or store.ErrRecordNotFound.
	FindActiveReview(ctx context.Context, userID, sourceID, appBundleID string) (*models.AppReview, error)
	// CreateReview assigns the next per-app sequence number and inserts the review.
	CreateReview(ctx context.Context, review *models.AppReview) error
	UpdateReview(ctx context.Context, review *models.AppReview) error
	ListReviewsByUser(ctx context.Context, userID string) ([]models.AppReview, error)
	ListReviewsByUserPaginated(
		ctx context.Context,
		userID string,
		params store.PaginationParams,
	) ([]models.AppReview, store.PaginationResult, error)
}

// ReviewSigner signs canonical review payloads.
type ReviewSigner interface {
	Sign(payload *signing.Payload) (string, error)
}

// UserStore is the persistence contract of the account service.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}
