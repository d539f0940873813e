package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fabianthdev/sidestore-id-backend/internal/middleware"
	"github.com/fabianthdev/sidestore-id-backend/internal/models"
	"github.com/fabianthdev/sidestore-id-backend/internal/services"
	"github.com/fabianthdev/sidestore-id-backend/internal/store"

	"github.com/gin-gonic/gin"
)

const publicKeyFilename = "public_key.pem"

type signReviewRequest struct {
	SourceIdentifier string `json:"source_identifier" binding:"required"`
	AppBundleID      string `json:"app_bundle_id"     binding:"required"`
	// Present but possibly empty
	VersionNumber *string `json:"version_number" binding:"required"`
	ReviewRating  *int    `json:"review_rating"  binding:"required,min=0,max=255"`
	ReviewTitle   *string `json:"review_title"   binding:"required"`
	ReviewBody    *string `json:"review_body"    binding:"required"`
}

type deleteReviewRequest struct {
	SourceIdentifier string `json:"source_identifier" binding:"required"`
	AppBundleID      string `json:"app_bundle_id"     binding:"required"`
}

type attestationResponse struct {
	SequenceNumber int64  `json:"sequence_number"`
	CreatedAt      int64  `json:"created_at"`
	ReviewDate     int64  `json:"review_date"`
	Signature      string `json:"signature"`
}

type reviewEntry struct {
	ID                  string  `json:"id"`
	Status              string  `json:"status"`
	SourceIdentifier    string  `json:"source_identifier"`
	AppBundleIdentifier string  `json:"app_bundle_identifier"`
	SequenceNumber      int64   `json:"sequence_number"`
	CreatedAt           int64   `json:"created_at"`
	VersionNumber       *string `json:"version_number"`
	ReviewRating        *int    `json:"review_rating"`
	Date                int64   `json:"date"`
	Signature           *string `json:"signature"`
}

func newReviewEntry(r *models.AppReview) reviewEntry {
	return reviewEntry{
		ID:                  r.ID,
		Status:              string(r.Status),
		SourceIdentifier:    r.SourceID,
		AppBundleIdentifier: r.AppBundleID,
		SequenceNumber:      r.SequenceNumber,
		CreatedAt:           r.CreatedAt.Unix(),
		VersionNumber:       r.AppVersion,
		ReviewRating:        r.Rating,
		Date:                r.UpdatedAt.Unix(),
		Signature:           r.Signature,
	}
}

// PublicKeySource provides the PEM-encoded review verification key
type PublicKeySource interface {
	PublicKeyPEM() []byte
}

// ReviewHandler serves the review attestation endpoints under /api/reviews
type ReviewHandler struct {
	reviewService *services.ReviewService
	publicKey     PublicKeySource
}

func NewReviewHandler(rs *services.ReviewService, publicKey PublicKeySource) *ReviewHandler {
	return &ReviewHandler{
		reviewService: rs,
		publicKey:     publicKey,
	}
}

// PublicKey downloads the review verification key
func (h *ReviewHandler) PublicKey(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+publicKeyFilename+`"`)
	c.Data(http.StatusOK, "application/x-x509-ca-cert", h.publicKey.PublicKeyPEM())
}

// Sign publishes or updates the caller's review of an app
func (h *ReviewHandler) Sign(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	var req signReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "source_identifier, app_bundle_id, version_number, review_rating (0-255), review_title and review_body must be present")
		return
	}

	attestation, err := h.reviewService.SubmitOrUpdate(c.Request.Context(), services.SubmitReviewRequest{
		UserID:      principal.UserID,
		SourceID:    req.SourceIdentifier,
		AppBundleID: req.AppBundleID,
		Version:     *req.VersionNumber,
		Rating:      *req.ReviewRating,
		Title:       *req.ReviewTitle,
		Body:        *req.ReviewBody,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAttestationResponse(attestation))
}

// Delete withdraws the caller's review of an app
func (h *ReviewHandler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	var req deleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "source_identifier and app_bundle_id are required")
		return
	}

	attestation, err := h.reviewService.Withdraw(
		c.Request.Context(),
		principal.UserID,
		req.SourceIdentifier,
		req.AppBundleID,
	)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAttestationResponse(attestation))
}

// List returns the caller's reviews, oldest first. With a page query
// parameter only that page is returned and the totals are sent as headers.
func (h *ReviewHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized, "Authentication required")
		return
	}

	var (
		reviews []models.AppReview
		err     error
	)
	if pageParam, paged := c.GetQuery("page"); paged {
		page, _ := strconv.Atoi(pageParam)
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		params := store.NewPaginationParams(page, pageSize, c.Query("search"))

		var pagination store.PaginationResult
		reviews, pagination, err = h.reviewService.ListPage(c.Request.Context(), principal.UserID, params)
		if err == nil {
			c.Header("X-Total-Count", strconv.FormatInt(pagination.Total, 10))
			c.Header("X-Total-Pages", strconv.Itoa(pagination.TotalPages))
		}
	} else {
		reviews, err = h.reviewService.List(c.Request.Context(), principal.UserID)
	}
	if err != nil {
		serverError(c, "Failed to list reviews")
		return
	}

	entries := make([]reviewEntry, 0, len(reviews))
	for i := range reviews {
		entries = append(entries, newReviewEntry(&reviews[i]))
	}
	c.JSON(http.StatusOK, entries)
}

func newAttestationResponse(a *services.ReviewAttestation) attestationResponse {
	return attestationResponse{
		SequenceNumber: a.SequenceNumber,
		CreatedAt:      a.Review.CreatedAt.Unix(),
		ReviewDate:     a.ReviewDate.Unix(),
		Signature:      a.Signature,
	}
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidReview):
		badRequest(c, err.Error())
	case errors.Is(err, services.ErrReviewNotFound):
		respondError(c, http.StatusNotFound, errNotFound, err.Error())
	case errors.Is(err, services.ErrReviewConflict):
		respondError(c, http.StatusConflict, errConflict, "Review was modified concurrently, please retry")
	case errors.Is(err, services.ErrReviewSigning):
		serverError(c, "Failed to sign review")
	default:
		serverError(c, "Failed to store review")
	}
}
