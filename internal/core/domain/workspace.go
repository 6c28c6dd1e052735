package domain

import "time"

type Workspace struct {
	ID          int       `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Activity is one entry of the user's recent activity feed.
type Activity struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserID      int       `json:"user_id,omitempty"`
	PageID      int       `json:"page_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CountryCode is a dialing prefix offered for phone logins.
type CountryCode struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// DefaultCountryCode is preselected for phone logins.
const DefaultCountryCode = "+7"

// ResolveCountryCode keeps selected when it is offered, falls back to
// DefaultCountryCode when that is offered, and otherwise picks the first entry.
func ResolveCountryCode(codes []CountryCode, selected string) string {
	if len(codes) == 0 {
		if selected == "" {
			return DefaultCountryCode
		}
		return selected
	}
	for _, c := range codes {
		if c.Value == selected {
			return selected
		}
	}
	for _, c := range codes {
		if c.Value == DefaultCountryCode {
			return c.Value
		}
	}
	return codes[0].Value
}
