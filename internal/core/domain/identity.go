package domain

import "strings"

// Identity selects the channel a login request goes through: either an email
// address or a phone number with its country code, never both.
type Identity struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

func EmailIdentity(email string) Identity {
	return Identity{Email: strings.TrimSpace(email)}
}

func PhoneIdentity(phone, countryCode string) Identity {
	return Identity{Phone: DigitsOnly(phone), CountryCode: strings.TrimSpace(countryCode)}
}

// IsEmail reports whether the email channel is selected.
func (i Identity) IsEmail() bool { return i.Email != "" }

// Validate returns ErrIdentityChannel unless exactly one channel is fully set.
func (i Identity) Validate() error {
	hasEmail := i.Email != ""
	hasPhone := i.Phone != "" || i.CountryCode != ""
	switch {
	case hasEmail && hasPhone:
		return ErrIdentityChannel
	case hasEmail:
		return nil
	case i.Phone != "" && i.CountryCode != "":
		return nil
	default:
		return ErrIdentityChannel
	}
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
