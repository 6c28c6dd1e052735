package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/viewmodel"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubSession struct {
	state viewmodel.SessionState
	err   error

	lastID       domain.Identity
	lastPassword string
	lastCode     string
	forgot       bool
	loggedOut    bool
}

func (s *stubSession) State() viewmodel.SessionState { return s.state }

func (s *stubSession) Login(_ context.Context, id domain.Identity, password string) error {
	s.lastID, s.lastPassword = id, password
	return s.err
}

func (s *stubSession) SignUp(_ context.Context, _, email, password string) error {
	s.lastID, s.lastPassword = domain.EmailIdentity(email), password
	return s.err
}

func (s *stubSession) SendCode(_ context.Context, id domain.Identity) error {
	s.lastID = id
	return s.err
}

func (s *stubSession) ResendCode(_ context.Context) error { return s.err }

func (s *stubSession) CheckCode(_ context.Context, id domain.Identity, code string) error {
	s.lastID, s.lastCode = id, code
	return s.err
}

func (s *stubSession) CancelCode() {}

func (s *stubSession) Logout(_ context.Context) error {
	s.loggedOut = true
	return s.err
}

func (s *stubSession) ForgetLocal(_ context.Context) { s.forgot = true }

type stubEditor struct {
	state   viewmodel.EditorState
	err     error
	opened  string
	blocks  []domain.Block
	title   string
	flushed bool
	closed  bool
}

func (s *stubEditor) Open(_ context.Context, id string) error {
	s.opened = id
	return s.err
}

func (s *stubEditor) UpdateBlocks(blocks []domain.Block) error {
	s.blocks = blocks
	return s.err
}

func (s *stubEditor) UpdateTitle(_ context.Context, title string) error {
	s.title = title
	return s.err
}

func (s *stubEditor) Save() bool                   { return s.flushed }
func (s *stubEditor) Close()                       { s.closed = true }
func (s *stubEditor) State() viewmodel.EditorState { return s.state }

type stubTrash struct {
	err      error
	toggled  []domain.TrashKey
	restored []domain.TrashKey
}

func (s *stubTrash) Load(_ context.Context) error { return s.err }

func (s *stubTrash) ToggleSelection(key domain.TrashKey) bool {
	s.toggled = append(s.toggled, key)
	return true
}

func (s *stubTrash) Restore(_ context.Context, key domain.TrashKey) error {
	s.restored = append(s.restored, key)
	return s.err
}

func (s *stubTrash) Purge(_ context.Context, _ domain.TrashKey) error { return s.err }
func (s *stubTrash) RestoreSelected(_ context.Context) error          { return s.err }
func (s *stubTrash) PurgeSelected(_ context.Context) error            { return s.err }
func (s *stubTrash) State() viewmodel.TrashState                      { return viewmodel.TrashState{} }

type stubCountries struct {
	offered []domain.CountryCode
	chosen  string
}

func (s *stubCountries) Load(_ context.Context) error { return nil }

func (s *stubCountries) Select(value string) bool {
	for _, c := range s.offered {
		if c.Value == value {
			s.chosen = value
			return true
		}
	}
	return false
}

func (s *stubCountries) Search(query string) []domain.CountryCode {
	var out []domain.CountryCode
	for _, c := range s.offered {
		if strings.Contains(c.Label, query) {
			out = append(out, c)
		}
	}
	return out
}

func (s *stubCountries) State() viewmodel.CountriesState {
	return viewmodel.CountriesState{Codes: s.offered, Selected: s.chosen}
}
