package viewmodel

import (
	"context"
	"sync"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuth struct {
	loginFn     func(ctx context.Context, id domain.Identity, password string) (*domain.AuthResult, error)
	sendCodeFn  func(ctx context.Context, id domain.Identity) error
	checkCodeFn func(ctx context.Context, id domain.Identity, code string) (*domain.AuthResult, error)
	signUpFn    func(ctx context.Context, name, email, password string) (*domain.AuthResult, error)
	logoutErr   error
	restoreOK   bool

	sendCalls  int
	checkCalls int
	forgot     bool
}

func (s *stubAuth) Login(ctx context.Context, id domain.Identity, password string) (*domain.AuthResult, error) {
	return s.loginFn(ctx, id, password)
}

func (s *stubAuth) SendCode(ctx context.Context, id domain.Identity) error {
	s.sendCalls++
	if s.sendCodeFn == nil {
		return nil
	}
	return s.sendCodeFn(ctx, id)
}

func (s *stubAuth) CheckCode(ctx context.Context, id domain.Identity, code string) (*domain.AuthResult, error) {
	s.checkCalls++
	return s.checkCodeFn(ctx, id, code)
}

func (s *stubAuth) SignUp(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	return s.signUpFn(ctx, name, email, password)
}

func (s *stubAuth) Logout(_ context.Context) error { return s.logoutErr }

func (s *stubAuth) ForgetSession(_ context.Context) { s.forgot = true }

func (s *stubAuth) RestoreSession(_ context.Context) bool { return s.restoreOK }

func okResult(name string) func() (*domain.AuthResult, error) {
	return func() (*domain.AuthResult, error) {
		return &domain.AuthResult{User: domain.User{ID: "1", Name: name}, Token: "tok"}, nil
	}
}

type stubPages struct {
	mu sync.Mutex

	list       *domain.PageList
	listErr    error
	listByType map[string]*domain.PageList
	queries    []ports.PageQuery

	detail     *domain.PageDetail
	detailErr  error
	updateErr  error
	favorite   bool
	favErr     error
	blockSaves []ports.SaveJob
	saveErr    error
}

func (s *stubPages) ListPages(_ context.Context, q ports.PageQuery) (*domain.PageList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.listErr != nil {
		return nil, s.listErr
	}
	if l, ok := s.listByType[q.Type]; ok {
		return l, nil
	}
	if s.list == nil {
		return &domain.PageList{}, nil
	}
	return s.list, nil
}

func (s *stubPages) GetPageDetail(_ context.Context, id string) (*domain.PageDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	cp := *s.detail
	cp.ID = id
	return &cp, nil
}

func (s *stubPages) CreatePage(_ context.Context, in ports.CreatePageInput) (*domain.Page, error) {
	return &domain.Page{Title: in.Title, Type: in.Type}, nil
}

func (s *stubPages) UpdatePage(_ context.Context, id, title string) (*domain.Page, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &domain.Page{UUID: id, Title: title}, nil
}

func (s *stubPages) UpdatePageBlocks(_ context.Context, id string, blocks []domain.Block) (*domain.PageDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blockSaves = append(s.blockSaves, ports.SaveJob{PageID: id, Blocks: blocks})
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return &domain.PageDetail{ID: id, Title: "server", Blocks: blocks}, nil
}

func (s *stubPages) DeletePage(_ context.Context, _ string) error { return nil }

func (s *stubPages) ToggleFavorite(_ context.Context, _ string) (bool, error) {
	return s.favorite, s.favErr
}

func (s *stubPages) saves() []ports.SaveJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.SaveJob(nil), s.blockSaves...)
}

type stubTasks struct {
	byPage map[string][]domain.Task
	errs   map[string]error
}

func (s *stubTasks) ListTasks(_ context.Context, pageID string) ([]domain.Task, error) {
	if err := s.errs[pageID]; err != nil {
		return nil, err
	}
	return s.byPage[pageID], nil
}

func (s *stubTasks) CreateTask(_ context.Context, _ string, in ports.CreateTaskInput) (*domain.Task, error) {
	return &domain.Task{Title: in.Title}, nil
}

func (s *stubTasks) UpdateTask(_ context.Context, _, _ string, _ ports.UpdateTaskInput) (*domain.Task, error) {
	return &domain.Task{}, nil
}

func (s *stubTasks) DeleteTask(_ context.Context, _, _ string) error { return nil }

type stubCatalog struct {
	notifications []domain.Notification
	unread        int
	unreadErr     error
	markErr       error
	deleteErr     error

	trash      []domain.TrashItem
	restoreErr map[domain.TrashKey]error
	restored   []domain.TrashKey
	purged     []domain.TrashKey

	workspaces   []domain.Workspace
	workspaceErr error
	activity     []domain.Activity

	codes    []domain.CountryCode
	codesErr error
}

func (s *stubCatalog) ListNotifications(_ context.Context) ([]domain.Notification, error) {
	return s.notifications, nil
}

func (s *stubCatalog) UnreadCount(_ context.Context) (int, error) { return s.unread, s.unreadErr }

func (s *stubCatalog) MarkRead(_ context.Context, _ int) error { return s.markErr }

func (s *stubCatalog) MarkAllRead(_ context.Context) error { return s.markErr }

func (s *stubCatalog) DeleteNotification(_ context.Context, _ int) error { return s.deleteErr }

func (s *stubCatalog) ListTrash(_ context.Context, _ int) ([]domain.TrashItem, error) {
	return s.trash, nil
}

func (s *stubCatalog) Restore(_ context.Context, itemType string, id int) error {
	key := domain.TrashKey{Type: itemType, ID: id}
	if err := s.restoreErr[key]; err != nil {
		return err
	}
	s.restored = append(s.restored, key)
	return nil
}

func (s *stubCatalog) Purge(_ context.Context, itemType string, id int) error {
	s.purged = append(s.purged, domain.TrashKey{Type: itemType, ID: id})
	return nil
}

func (s *stubCatalog) ListWorkspaces(_ context.Context, _ bool, _ int) ([]domain.Workspace, error) {
	return s.workspaces, s.workspaceErr
}

func (s *stubCatalog) ListActivity(_ context.Context, _ int) ([]domain.Activity, error) {
	return s.activity, nil
}

func (s *stubCatalog) ListCountryCodes(_ context.Context) ([]domain.CountryCode, error) {
	return s.codes, s.codesErr
}
