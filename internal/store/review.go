package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabianthdev/sidestore-id-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindActiveReview returns the published review a user holds for an app.
func (s *Store) FindActiveReview(
	ctx context.Context,
	userID, sourceID, appBundleID string,
) (*models.AppReview, error) {
	var review models.AppReview
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND source_id = ? AND app_bundle_id = ? AND status = ?",
			userID, sourceID, appBundleID, models.ReviewStatusPublished).
		First(&review).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &review, nil
}

// MaxSequence returns the highest sequence number assigned for an app, 0 if none.
func (s *Store) MaxSequence(ctx context.Context, sourceID, appBundleID string) (int64, error) {
	return maxSequence(s.db.WithContext(ctx), sourceID, appBundleID)
}

func maxSequence(db *gorm.DB, sourceID, appBundleID string) (int64, error) {
	var highest int64
	err := db.Model(&models.AppReview{}).
		Where("source_id = ? AND app_bundle_id = ?", sourceID, appBundleID).
		Select("COALESCE(MAX(sequence_number), 0)").
		Scan(&highest).
		Error
	return highest, err
}

// CreateReview assigns the next sequence number for the review's app and
// inserts the review, as one transaction. The per-app counter row is bumped
// with an upsert so concurrent creators for the same app serialise on that
// row while other apps proceed independently.
func (s *Store) CreateReview(ctx context.Context, review *models.AppReview) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := maxSequence(tx, review.SourceID, review.AppBundleID)
		if err != nil {
			return fmt.Errorf("failed to read max sequence: %w", err)
		}

		counter := models.ReviewSequence{
			SourceID:    review.SourceID,
			AppBundleID: review.AppBundleID,
			LastValue:   current + 1,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "source_id"}, {Name: "app_bundle_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_value": gorm.Expr("review_sequences.last_value + 1"),
			}),
		}).Create(&counter).Error; err != nil {
			return fmt.Errorf("failed to advance sequence: %w", err)
		}

		if err := tx.Where("source_id = ? AND app_bundle_id = ?", review.SourceID, review.AppBundleID).
			First(&counter).Error; err != nil {
			return fmt.Errorf("failed to read sequence: %w", err)
		}

		review.SequenceNumber = counter.LastValue
		return tx.Create(review).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReviewConflict
	}
	return err
}

// UpdateReview persists every column of an existing review
func (s *Store) UpdateReview(ctx context.Context, review *models.AppReview) error {
	result := s.db.WithContext(ctx).
		Model(review).
		Select("*").
		Omit("id", "user_id", "sequence_number", "source_id", "app_bundle_id", "created_at").
		Updates(review)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListReviewsByUser returns every review of a user, oldest first
func (s *Store) ListReviewsByUser(ctx context.Context, userID string) ([]models.AppReview, error) {
	var reviews []models.AppReview
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, sequence_number ASC").
		Find(&reviews).
		Error
	return reviews, err
}

// ListReviewsByUserPaginated returns a page of a user's reviews, oldest first
func (s *Store) ListReviewsByUserPaginated(
	ctx context.Context,
	userID string,
	params PaginationParams,
) ([]models.AppReview, PaginationResult, error) {
	scoped := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.AppReview{}).Where("user_id = ?", userID)
		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			query = query.Where("source_id LIKE ? OR app_bundle_id LIKE ?", pattern, pattern)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, PaginationResult{}, err
	}

	var reviews []models.AppReview
	err := scoped().
		Order("created_at ASC, sequence_number ASC").
		Offset(params.offset()).
		Limit(params.PageSize).
		Find(&reviews).
		Error
	if err != nil {
		return nil, PaginationResult{}, err
	}

	return reviews, CalculatePagination(total, params.Page, params.PageSize), nil
}

// CountReviewsByStatus counts reviews across all users with the given status
func (s *Store) CountReviewsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.AppReview{}).
		Where("status = ?", status).
		Count(&count).
		Error
	return count, err
}
