package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// CatalogService groups the read-mostly backend areas: workspaces, activity,
// notifications, trash and country codes.
type CatalogService struct {
	api ports.Requester
}

var (
	_ ports.WorkspaceService    = (*CatalogService)(nil)
	_ ports.ActivityService     = (*CatalogService)(nil)
	_ ports.NotificationService = (*CatalogService)(nil)
	_ ports.TrashService        = (*CatalogService)(nil)
	_ ports.CountryService      = (*CatalogService)(nil)
)

func NewCatalogService(api ports.Requester) *CatalogService {
	return &CatalogService{api: api}
}

type workspacesEnvelope struct {
	Data struct {
		Public []domain.Workspace `json:"public"`
	} `json:"data"`
}

type activityList struct {
	Data []domain.Activity `json:"data"`
}

type notificationList struct {
	Data []domain.Notification `json:"data"`
}

type unreadCount struct {
	Count int `json:"count"`
}

type trashList struct {
	Data []domain.TrashItem `json:"data"`
}

type countryCodeList struct {
	Data []domain.CountryCode `json:"data"`
}

func (s *CatalogService) ListWorkspaces(ctx context.Context, withStats bool, perPage int) ([]domain.Workspace, error) {
	params := url.Values{}
	if withStats {
		params.Set("with", "stats")
	}
	setIfPositive(params, "perPage", perPage)

	var out workspacesEnvelope
	if err := s.api.Request(ctx, http.MethodGet, withQuery("/workspaces", params), nil, &out); err != nil {
		return nil, err
	}
	return out.Data.Public, nil
}

func (s *CatalogService) ListActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	params := url.Values{}
	setIfPositive(params, "limit", limit)

	var out activityList
	if err := s.api.Request(ctx, http.MethodGet, withQuery("/activity", params), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (s *CatalogService) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out notificationList
	if err := s.api.Request(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (s *CatalogService) UnreadCount(ctx context.Context) (int, error) {
	var out unreadCount
	if err := s.api.Request(ctx, http.MethodGet, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (s *CatalogService) MarkRead(ctx context.Context, id int) error {
	return s.api.Request(ctx, http.MethodPost, "/notifications/"+strconv.Itoa(id)+"/read", nil, nil)
}

func (s *CatalogService) MarkAllRead(ctx context.Context) error {
	return s.api.Request(ctx, http.MethodPost, "/notifications/read-all", nil, nil)
}

func (s *CatalogService) DeleteNotification(ctx context.Context, id int) error {
	return s.api.Request(ctx, http.MethodDelete, "/notifications/"+strconv.Itoa(id), nil, nil)
}

func (s *CatalogService) ListTrash(ctx context.Context, perPage int) ([]domain.TrashItem, error) {
	params := url.Values{}
	setIfPositive(params, "perPage", perPage)

	var out trashList
	if err := s.api.Request(ctx, http.MethodGet, withQuery("/trash", params), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func trashPath(itemType string, id int) string {
	return "/trash/" + pathID(itemType) + "/" + strconv.Itoa(id)
}

func (s *CatalogService) Restore(ctx context.Context, itemType string, id int) error {
	return s.api.Request(ctx, http.MethodPost, trashPath(itemType, id)+"/restore", nil, nil)
}

func (s *CatalogService) Purge(ctx context.Context, itemType string, id int) error {
	return s.api.Request(ctx, http.MethodDelete, trashPath(itemType, id), nil, nil)
}

func (s *CatalogService) ListCountryCodes(ctx context.Context) ([]domain.CountryCode, error) {
	var out countryCodeList
	if err := s.api.Request(ctx, http.MethodGet, "/get-country-codes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
