package signing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the review state carried in the signed payload.
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
)

// Payload is the canonical review state that gets signed. Field order is part
// of the wire contract: verifiers rebuild these exact bytes from the API
// response, so fields must never be reordered, renamed or made omitempty.
type Payload struct {
	SidestoreUserID     string  `json:"sidestore_user_id"`
	Status              Status  `json:"status"`
	SequenceNumber      int64   `json:"sequence_number"`
	SourceIdentifier    string  `json:"source_identifier"`
	AppBundleIdentifier string  `json:"app_bundle_identifier"`
	VersionNumber       *string `json:"version_number"`
	ReviewRating        *int    `json:"review_rating"`
	ReviewTitle         *string `json:"review_title"`
	ReviewBody          *string `json:"review_body"`
	CreatedAt           int64   `json:"created_at"`
	UpdatedAt           int64   `json:"updated_at"`
}

// Canonical returns the compact JSON encoding of p with HTML escaping
// disabled and no trailing newline.
func (p *Payload) Canonical() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encoding review payload: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
