package httpapi

import "github.com/mswiatek/scholarfolio/internal/server/services"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// blobPatch is the wire form of the three-way attachment patch. Exactly one
// of the fields is expected: {"keep":true}, {"remove":true}, or
// {"key":"<uploaded object key>"}. A missing patch decodes as the zero
// value, which Valid rejects on writes that carry an attachment field.
type blobPatch struct {
	Keep   bool   `json:"keep,omitempty"`
	Remove bool   `json:"remove,omitempty"`
	Key    string `json:"key,omitempty"`
}

func (p blobPatch) valid() bool {
	set := 0
	if p.Keep {
		set++
	}
	if p.Remove {
		set++
	}
	if p.Key != "" {
		set++
	}
	return set == 1
}

func (p blobPatch) toService() services.BlobPatch {
	return services.BlobPatch{Keep: p.Keep, Remove: p.Remove, Key: p.Key}
}

type setProfileRequest struct {
	Name      string    `json:"name"`
	Biography string    `json:"biography"`
	Photo     blobPatch `json:"photo"`
}

type profileResponse struct {
	Name      string  `json:"name"`
	Biography string  `json:"biography"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

type addInterestRequest struct {
	Name string `json:"name"`
}

type interestResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type publicationRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        *string   `json:"link,omitempty"`
	PDF         blobPatch `json:"pdf"`
}

type publicationResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        *string `json:"link,omitempty"`
	PDFURL      *string `json:"pdf_url,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

type contactInfoRequest struct {
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
}

type contactInfoResponse struct {
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
}

type userProfileRequest struct {
	Name string `json:"name"`
}

type userProfileResponse struct {
	Name string `json:"name"`
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

type idResponse struct {
	ID string `json:"id"`
}

type ownerResponse struct {
	IsOwner bool `json:"is_owner"`
}

type adminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
