package models

// ReviewSequence is the per-app counter backing AppReview.SequenceNumber.
// LastValue is the most recently assigned sequence number for the pair.
type ReviewSequence struct {
	SourceID    string `gorm:"primaryKey;size:255"`
	AppBundleID string `gorm:"primaryKey;size:255"`
	LastValue   int64  `gorm:"not null"`
}

// TableName overrides the default table name
func (ReviewSequence) TableName() string {
	return "review_sequences"
}
