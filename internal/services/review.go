package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fabianthdev/sidestore-id-backend/internal/core"
	"github.com/fabianthdev/sidestore-id-backend/internal/ids"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/signing"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"
)

const (
	reviewOpCreate   = "create"
	reviewOpUpdate   = "update"
	reviewOpWithdraw = "withdraw"

	reviewResultSuccess  = "success"
	reviewResultError    = "error"
	reviewResultNotFound = "not_found"
	reviewResultConflict = "conflict"

	// MaxReviewRating is the highest rating a review may carry
	MaxReviewRating = 255
)

var (
	ErrInvalidReview  = errors.New("invalid review")
	ErrReviewNotFound = errors.New("you didn't review this app yet")
	ErrReviewConflict = errors.New("review was modified concurrently")
	ErrReviewStorage  = errors.New("failed to store review")
	ErrReviewSigning  = errors.New("failed to sign review")
)

// SubmitReviewRequest carries the content of a review to publish
type SubmitReviewRequest struct {
	UserID      string
	SourceID    string
	AppBundleID string
	Version     string
	Rating      int
	Title       string
	Body        string
}

// ReviewAttestation is the signed outcome of a review mutation
type ReviewAttestation struct {
	Review         *models.AppReview
	SequenceNumber int64
	ReviewDate     time.Time
	Signature      string
}

// ReviewService keeps the per-app review ledger and signs every state change
type ReviewService struct {
	store        core.ReviewStore
	signer       core.ReviewSigner
	auditService *AuditService
	metrics      core.Recorder
	now          func() time.Time
}

func NewReviewService(
	s core.ReviewStore,
	signer core.ReviewSigner,
	auditService *AuditService,
	m core.Recorder,
) *ReviewService {
	return &ReviewService{
		store:        s,
		signer:       signer,
		auditService: auditService,
		metrics:      m,
		now:          time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// timestamp is the current time at the precision of the signed payload
func (s *ReviewService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

func validateReviewTarget(sourceID, appBundleID string) error {
	if strings.TrimSpace(sourceID) == "" {
		return fmt.Errorf("%w: source identifier is required", ErrInvalidReview)
	}
	if strings.TrimSpace(appBundleID) == "" {
		return fmt.Errorf("%w: app bundle id is required", ErrInvalidReview)
	}
	return nil
}

// SubmitOrUpdate publishes a review, or updates the caller's published review
// of the same app in place, and signs the resulting state.
func (s *ReviewService) SubmitOrUpdate(
	ctx context.Context,
	req SubmitReviewRequest,
) (*ReviewAttestation, error) {
	if err := validateReviewTarget(req.SourceID, req.AppBundleID); err != nil {
		return nil, err
	}
	if req.Rating < 0 || req.Rating > MaxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between 0 and %d", ErrInvalidReview, MaxReviewRating)
	}

	start := time.Now()
	now := s.timestamp()

	review, err := s.store.FindActiveReview(ctx, req.UserID, req.SourceID, req.AppBundleID)
	switch {
	case err == nil:
		return s.update(ctx, review, req, now, start)
	case errors.Is(err, store.ErrRecordNotFound):
		return s.create(ctx, req, now, start)
	default:
		return nil, s.storageFailure(reviewOpCreate, "find_review", req.UserID, req.SourceID, req.AppBundleID, start, err)
	}
}

func (s *ReviewService) create(
	ctx context.Context,
	req SubmitReviewRequest,
	now time.Time,
	start time.Time,
) (*ReviewAttestation, error) {
	version, rating := req.Version, req.Rating
	review := &models.AppReview{
		ID:          ids.NewAt(now),
		UserID:      req.UserID,
		Status:      models.ReviewStatusPublished,
		SourceID:    req.SourceID,
		AppBundleID: req.AppBundleID,
		AppVersion:  &version,
		Rating:      &rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The sequence number only exists once the row is in, so the signature
	// is written in a second step.
	if err := s.store.CreateReview(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewConflict) {
			s.metrics.RecordReviewSigned(reviewOpCreate, reviewResultConflict, time.Since(start))
			return nil, ErrReviewConflict
		}
		return nil, s.storageFailure(reviewOpCreate, "create_review", req.UserID, req.SourceID, req.AppBundleID, start, err)
	}

	return s.signAndSave(ctx, reviewOpCreate, review, publishedPayload(review, req), start)
}

func (s *ReviewService) update(
	ctx context.Context,
	review *models.AppReview,
	req SubmitReviewRequest,
	now time.Time,
	start time.Time,
) (*ReviewAttestation, error) {
	version, rating := req.Version, req.Rating
	review.Status = models.ReviewStatusPublished
	review.AppVersion = &version
	review.Rating = &rating
	review.UpdatedAt = now

	return s.signAndSave(ctx, reviewOpUpdate, review, publishedPayload(review, req), start)
}

// Withdraw soft-deletes the caller's published review of an app and signs
// the deletion. The row and its sequence number are kept.
func (s *ReviewService) Withdraw(
	ctx context.Context,
	userID, sourceID, appBundleID string,
) (*ReviewAttestation, error) {
	if err := validateReviewTarget(sourceID, appBundleID); err != nil {
		return nil, err
	}

	start := time.Now()
	review, err := s.store.FindActiveReview(ctx, userID, sourceID, appBundleID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			s.metrics.RecordReviewSigned(reviewOpWithdraw, reviewResultNotFound, time.Since(start))
			return nil, ErrReviewNotFound
		}
		return nil, s.storageFailure(reviewOpWithdraw, "find_review", userID, sourceID, appBundleID, start, err)
	}

	review.Status = models.ReviewStatusDeleted
	review.AppVersion = nil
	review.Rating = nil
	review.UpdatedAt = s.timestamp()

	return s.signAndSave(ctx, reviewOpWithdraw, review, PayloadFor(review, nil, nil), start)
}

// List returns every review of a user, oldest first
func (s *ReviewService) List(ctx context.Context, userID string) ([]models.AppReview, error) {
	reviews, err := s.store.ListReviewsByUser(ctx, userID)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_reviews")
		log.Printf("[Review] Failed to list reviews user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrReviewStorage, err)
	}
	return reviews, nil
}

// ListPage returns one page of a user's reviews, oldest first
func (s *ReviewService) ListPage(
	ctx context.Context,
	userID string,
	params store.PaginationParams,
) ([]models.AppReview, store.PaginationResult, error) {
	reviews, pagination, err := s.store.ListReviewsByUserPaginated(ctx, userID, params)
	if err != nil {
		s.metrics.RecordDatabaseQueryError("list_reviews")
		log.Printf("[Review] Failed to list reviews user=%s page=%d: %v", userID, params.Page, err)
		return nil, store.PaginationResult{}, fmt.Errorf("%w: %v", ErrReviewStorage, err)
	}
	return reviews, pagination, nil
}

func (s *ReviewService) signAndSave(
	ctx context.Context,
	op string,
	review *models.AppReview,
	payload *signing.Payload,
	start time.Time,
) (*ReviewAttestation, error) {
	signature, err := s.signer.Sign(payload)
	if err != nil {
		s.metrics.RecordReviewSigned(op, reviewResultError, time.Since(start))
		log.Printf(
			"[Review] Signing failed op=%s user=%s source=%s bundle=%s: %v",
			op, review.UserID, review.SourceID, review.AppBundleID, err,
		)
		return nil, fmt.Errorf("%w: %v", ErrReviewSigning, err)
	}

	review.Signature = &signature
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, s.storageFailure(op, "update_review", review.UserID, review.SourceID, review.AppBundleID, start, err)
	}

	s.metrics.RecordReviewSigned(op, reviewResultSuccess, time.Since(start))
	s.auditReview(ctx, op, review)

	return &ReviewAttestation{
		Review:         review,
		SequenceNumber: review.SequenceNumber,
		ReviewDate:     review.UpdatedAt,
		Signature:      signature,
	}, nil
}

func (s *ReviewService) storageFailure(
	op, query, userID, sourceID, appBundleID string,
	start time.Time,
	err error,
) error {
	s.metrics.RecordDatabaseQueryError(query)
	s.metrics.RecordReviewSigned(op, reviewResultError, time.Since(start))
	log.Printf(
		"[Review] Storage failure op=%s query=%s user=%s source=%s bundle=%s: %v",
		op, query, userID, sourceID, appBundleID, err,
	)
	return fmt.Errorf("%w: %v", ErrReviewStorage, err)
}

func (s *ReviewService) auditReview(ctx context.Context, op string, review *models.AppReview) {
	event, action := models.EventReviewSigned, "Review signed"
	if op == reviewOpWithdraw {
		event, action = models.EventReviewWithdrawn, "Review withdrawn"
	}
	s.auditService.Log(ctx, AuditLogEntry{
		EventType:    event,
		ActorUserID:  review.UserID,
		ResourceType: models.ResourceReview,
		ResourceID:   review.ID,
		Action:       action,
		Details: models.AuditDetails{
			"operation":       op,
			"source_id":       review.SourceID,
			"app_bundle_id":   review.AppBundleID,
			"sequence_number": review.SequenceNumber,
			"signature":       *review.Signature,
		},
		Success: true,
	})
}

func publishedPayload(review *models.AppReview, req SubmitReviewRequest) *signing.Payload {
	title, body := req.Title, req.Body
	return PayloadFor(review, &title, &body)
}

// PayloadFor builds the signed representation of a review. Title and body
// are only known at submission time and are nil for withdrawals.
func PayloadFor(review *models.AppReview, title, body *string) *signing.Payload {
	return &signing.Payload{
		SidestoreUserID:     review.UserID,
		Status:              signing.Status(review.Status),
		SequenceNumber:      review.SequenceNumber,
		SourceIdentifier:    review.SourceID,
		AppBundleIdentifier: review.AppBundleID,
		VersionNumber:       review.AppVersion,
		ReviewRating:        review.Rating,
		ReviewTitle:         title,
		ReviewBody:          body,
		CreatedAt:           review.CreatedAt.Unix(),
		UpdatedAt:           review.UpdatedAt.Unix(),
	}
}
