package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func testPayload() *Payload {
	return &Payload{
		SidestoreUserID:     "uuid-1234-5678-9012-3456",
		Status:              StatusPublished,
		SequenceNumber:      69,
		SourceIdentifier:    "io.sidestore.Connect",
		AppBundleIdentifier: "com.SideStore.SideStore",
		VersionNumber:       ptr("4.2.0"),
		ReviewRating:        ptr(5),
		ReviewTitle:         ptr("This is a test review"),
		ReviewBody:          ptr("This is a test review body"),
		CreatedAt:           1682007600,
		UpdatedAt:           1682007600,
	}
}

func TestPayloadCanonical_Published(t *testing.T) {
	got, err := testPayload().Canonical()
	require.NoError(t, err)

	want := `{"sidestore_user_id":"uuid-1234-5678-9012-3456","status":"published",` +
		`"sequence_number":69,"source_identifier":"io.sidestore.Connect",` +
		`"app_bundle_identifier":"com.SideStore.SideStore","version_number":"4.2.0",` +
		`"review_rating":5,"review_title":"This is a test review",` +
		`"review_body":"This is a test review body","created_at":1682007600,"updated_at":1682007600}`
	assert.Equal(t, want, string(got))
}

func TestPayloadCanonical_Deleted(t *testing.T) {
	p := testPayload()
	p.Status = StatusDeleted
	p.VersionNumber = nil
	p.ReviewRating = nil
	p.ReviewTitle = nil
	p.ReviewBody = nil

	got, err := p.Canonical()
	require.NoError(t, err)

	want := `{"sidestore_user_id":"uuid-1234-5678-9012-3456","status":"deleted",` +
		`"sequence_number":69,"source_identifier":"io.sidestore.Connect",` +
		`"app_bundle_identifier":"com.SideStore.SideStore","version_number":null,` +
		`"review_rating":null,"review_title":null,"review_body":null,` +
		`"created_at":1682007600,"updated_at":1682007600}`
	assert.Equal(t, want, string(got))
}

func TestPayloadCanonical_Escaping(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"html stays literal", "<b>&</b>", `"<b>&</b>"`},
		{"quotes and backslash", `say "hi" \o/`, `"say \"hi\" \\o/"`},
		{"newline and tab", "a\nb\tc", `"a\nb\tc"`},
		{"other control", "a\x01b", `"a\u0001b"`},
		{"non-ascii literal", "Grüße 🚀", `"Grüße 🚀"`},
		{"line separator", "a\u2028b", `"a\u2028b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPayload()
			p.ReviewTitle = ptr(tt.title)

			got, err := p.Canonical()
			require.NoError(t, err)
			assert.Contains(t, string(got), `"review_title":`+tt.want+`,`)
		})
	}
}

func TestPayloadCanonical_Deterministic(t *testing.T) {
	a, err := testPayload().Canonical()
	require.NoError(t, err)
	b, err := testPayload().Canonical()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
