package viewmodel

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
	"github.com/notaspace/notaspace-client/pkg/textfold"
)

type CountriesState struct {
	Codes        []domain.CountryCode `json:"codes"`
	Selected     string               `json:"selected"`
	IsLoading    bool                 `json:"is_loading"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

// Countries backs the dialing-code picker of the phone login.
type Countries struct {
	svc ports.CountryService
	log zerolog.Logger

	mu       sync.Mutex
	codes    []domain.CountryCode
	selected string
	progress
}

func NewCountries(svc ports.CountryService, log zerolog.Logger) *Countries {
	return &Countries{svc: svc, log: log}
}

// Load refreshes the offered codes and re-resolves the selection. On failure
// the default code is preselected when nothing was chosen yet.
func (c *Countries) Load(ctx context.Context) error {
	c.mu.Lock()
	c.begin()
	c.mu.Unlock()

	codes, err := c.svc.ListCountryCodes(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.end()
	if err != nil {
		c.fail("failed to load country codes", err)
		if c.selected == "" {
			c.selected = domain.DefaultCountryCode
		}
		return err
	}
	c.codes = codes
	c.selected = domain.ResolveCountryCode(codes, c.selected)
	return nil
}

// Select picks value; it reports false when value is not offered.
func (c *Countries) Select(value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.ContainsFunc(c.codes, func(cc domain.CountryCode) bool { return cc.Value == value }) {
		return false
	}
	c.selected = value
	return true
}

func (c *Countries) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == "" {
		return domain.DefaultCountryCode
	}
	return c.selected
}

// Search filters the offered codes by label, description or value.
func (c *Countries) Search(query string) []domain.CountryCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []domain.CountryCode
	for _, cc := range c.codes {
		if textfold.Contains(cc.Label, query) || textfold.Contains(cc.Description, query) || textfold.Contains(cc.Value, query) {
			out = append(out, cc)
		}
	}
	return out
}

func (c *Countries) State() CountriesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountriesState{
		Codes:        slices.Clone(c.codes),
		Selected:     c.selected,
		IsLoading:    c.loading(),
		ErrorMessage: c.errorMessage,
	}
}
