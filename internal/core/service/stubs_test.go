package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type recordedCall struct {
	method   string
	endpoint string
	body     any
	token    string
}

// stubRequester answers by "METHOD endpoint" key and records every call.
type stubRequester struct {
	mu        sync.Mutex
	token     string
	calls     []recordedCall
	responses map[string]string
	errs      map[string]error
}

func newStubRequester() *stubRequester {
	return &stubRequester{responses: map[string]string{}, errs: map[string]error{}}
}

func (s *stubRequester) Request(_ context.Context, method, endpoint string, body, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := method + " " + endpoint
	s.calls = append(s.calls, recordedCall{method: method, endpoint: endpoint, body: body, token: s.token})
	if err, ok := s.errs[key]; ok {
		return err
	}
	if raw, ok := s.responses[key]; ok && out != nil {
		return json.Unmarshal([]byte(raw), out)
	}
	return nil
}

func (s *stubRequester) SetAuthToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *stubRequester) AuthToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *stubRequester) lastCall(t *testing.T) recordedCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		t.Fatalf("no request was made")
	}
	return s.calls[len(s.calls)-1]
}

func (s *stubRequester) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubTokenStore struct {
	token   string
	saveErr error
	saves   int
	deletes int
}

func (s *stubTokenStore) Save(_ context.Context, token string) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *stubTokenStore) Get(_ context.Context) (string, bool) {
	return s.token, s.token != ""
}

func (s *stubTokenStore) Delete(_ context.Context) {
	s.deletes++
	s.token = ""
}

// bodyJSON renders a recorded request body the way the pipeline would send it.
func bodyJSON(t *testing.T, body any) string {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return string(raw)
}

var errBackend = domain.NewServerError(422, "Invalid credentials")
