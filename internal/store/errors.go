package store

import "errors"

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrEmailConflict is returned when an account with the email already exists
	ErrEmailConflict = errors.New("email already exists")

	// ErrReviewConflict is returned when a concurrent writer already holds the
	// published slot or the sequence number being inserted
	ErrReviewConflict = errors.New("review already exists")
)
