package dto

// CreateSuperheroRequestDTO is the JSON body of POST /api/v1/heroes. The
// multipart variant binds the same form field names.
type CreateSuperheroRequestDTO struct {
	Nickname          string   `json:"nickname" form:"nickname"`
	RealName          string   `json:"realName" form:"realName"`
	OriginDescription string   `json:"originDescription" form:"originDescription"`
	Superpowers       string   `json:"superpowers" form:"superpowers"`
	CatchPhrase       string   `json:"catchPhrase" form:"catchPhrase"`
	Images            []string `json:"images"`
}

// UpdateSuperheroRequestDTO is the JSON body of PUT /api/v1/heroes/:id.
// Nil fields were omitted and stay untouched; a nil Images pointer leaves the
// existing image set alone while a present one fully replaces it.
type UpdateSuperheroRequestDTO struct {
	Nickname          *string   `json:"nickname"`
	RealName          *string   `json:"realName"`
	OriginDescription *string   `json:"originDescription"`
	Superpowers       *string   `json:"superpowers"`
	CatchPhrase       *string   `json:"catchPhrase"`
	Images            *[]string `json:"images"`
}

// ImageResponseDTO exposes one image row, id included so clients can address
// images by identity rather than by position.
type ImageResponseDTO struct {
	ID      uint   `json:"id"`
	URL     string `json:"url"`
	Type    string `json:"type"`
	AltText string `json:"alt_text,omitempty"`
}
