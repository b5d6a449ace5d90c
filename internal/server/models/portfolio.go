package models

// Profile is the owner-authored portfolio headline. At most one row exists
// per deployment; absence is a valid state.
type Profile struct {
	Name      string
	Biography string
	// PhotoKey is the object-storage key of the profile photo, nil when the
	// profile has no photo.
	PhotoKey *string
}

type ResearchInterest struct {
	ID   string
	Name string
}

// Publication is an owner-authored publication record. CreatedAtUnix is
// assigned by the server on creation and never changes afterwards; ordering
// by it is left to presentation layers.
type Publication struct {
	ID            string
	Title         string
	Description   string
	Link          *string
	PDFKey        *string
	CreatedAtUnix int64
}

// ContactInfo is the owner-authored contact block. At most one row exists
// per deployment; absence is a valid state.
type ContactInfo struct {
	Email       string
	Affiliation string
}
