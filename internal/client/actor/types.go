package actor

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

// blobPatchJSON carries the three-way attachment patch: exactly one of
// keep, remove, or an uploaded object key.
type blobPatchJSON struct {
	Keep   bool   `json:"keep,omitempty"`
	Remove bool   `json:"remove,omitempty"`
	Key    string `json:"key,omitempty"`
}

type setProfileRequest struct {
	Name      string        `json:"name"`
	Biography string        `json:"biography"`
	Photo     blobPatchJSON `json:"photo"`
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
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Link        *string       `json:"link,omitempty"`
	PDF         blobPatchJSON `json:"pdf"`
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
