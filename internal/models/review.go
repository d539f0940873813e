package models

import (
	"time"
)

// ReviewStatus is the lifecycle state of an AppReview
type ReviewStatus string

const (
	ReviewStatusPublished ReviewStatus = "published"
	ReviewStatusDeleted   ReviewStatus = "deleted"
)

// AppReview is the persisted attestation ledger entry for one user's review
// of one app. Title and body are signed but never stored.
//
// At most one published row may exist per (user, source, bundle); deleted rows
// are kept forever so the per-app sequence stays gap-free.
type AppReview struct {
	ID     string       `gorm:"primaryKey;size:26"` // ULID
	UserID string       `gorm:"not null;size:36;index;uniqueIndex:idx_review_published_owner,priority:1,where:status = 'published'"`
	Status ReviewStatus `gorm:"not null;size:16"`

	// Assigned once at creation, never changed.
	SequenceNumber int64 `gorm:"not null;uniqueIndex:idx_review_sequence,priority:3"`

	SourceID    string `gorm:"not null;size:255;uniqueIndex:idx_review_published_owner,priority:2,where:status = 'published';uniqueIndex:idx_review_sequence,priority:1"`
	AppBundleID string `gorm:"not null;size:255;uniqueIndex:idx_review_published_owner,priority:3,where:status = 'published';uniqueIndex:idx_review_sequence,priority:2"`

	AppVersion *string
	Rating     *int
	Signature  *string `gorm:"type:text"`

	// Set by the review service, truncated to whole seconds to match the
	// signed payload.
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides the default table name
func (AppReview) TableName() string {
	return "app_review_signatures"
}

// IsPublished returns true if the review has not been withdrawn
func (r *AppReview) IsPublished() bool {
	return r.Status == ReviewStatusPublished
}
