// Package models holds the client-side views of portfolio content.
// Attachments are lazy blob references rather than raw bytes or URLs, so
// views can resolve them on their own terms.
package models

import "github.com/mswiatek/scholarfolio/internal/client/blob"

type Profile struct {
	Name      string
	Biography string
	Photo     *blob.Reference
}

type ResearchInterest struct {
	ID   string
	Name string
}

type Publication struct {
	ID          string
	Title       string
	Description string
	Link        *string
	PDF         *blob.Reference
	Timestamp   int64
}

type ContactInfo struct {
	Email       string
	Affiliation string
}

// UserProfile is the per-account display profile, separate from the
// portfolio owner's public profile.
type UserProfile struct {
	Name string
}
