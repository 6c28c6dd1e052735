package handler

import "github.com/notaspace/notaspace-client/internal/core/domain"

// identityRequest selects exactly one login channel; the struct-level rule
// registered in NewValidator rejects both or neither.
type identityRequest struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"country_code,omitempty" validate:"omitempty,startswith=+"`
}

func (r identityRequest) identity() domain.Identity {
	if r.Email != "" {
		return domain.EmailIdentity(r.Email)
	}
	if r.Phone == "" && r.CountryCode == "" {
		return domain.Identity{}
	}
	return domain.PhoneIdentity(r.Phone, r.CountryCode)
}

type loginRequest struct {
	identityRequest
	Password string `json:"password" validate:"required"`
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type sendCodeRequest struct {
	identityRequest
}

// verifyCodeRequest may omit the identity to verify the one the code was sent to.
type verifyCodeRequest struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Code        string `json:"code" validate:"required"`
}

type openPageRequest struct {
	ID string `json:"id" validate:"required"`
}

type blockRequest struct {
	ID       string `json:"id,omitempty"`
	Type     string `json:"type" validate:"required"`
	Content  string `json:"content"`
	Position int    `json:"position" validate:"gte=0"`
}

type updateBlocksRequest struct {
	Blocks []blockRequest `json:"blocks" validate:"dive"`
}

type updateTitleRequest struct {
	Title string `json:"title" validate:"required"`
}

type selectCountryRequest struct {
	Value string `json:"value" validate:"required"`
}

type favoriteResponse struct {
	Favorite bool `json:"favorite"`
}

type savedResponse struct {
	Flushed bool `json:"flushed"`
}

type selectionResponse struct {
	Selected bool `json:"selected"`
}
