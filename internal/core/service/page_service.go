package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

type pageService struct {
	api ports.Requester
}

// NewPageService returns a PageService backed by the /page endpoints.
func NewPageService(api ports.Requester) ports.PageService {
	return &pageService{api: api}
}

type pageEnvelope struct {
	Data domain.Page `json:"data"`
}

type pageDetailEnvelope struct {
	Data domain.PageDetail `json:"data"`
}

type createPageRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	WorkspaceID *int   `json:"workspace_id,omitempty"`
}

type updatePageRequest struct {
	Title string `json:"title"`
}

// blockUpdate omits server-managed block fields; a new block has no id yet.
type blockUpdate struct {
	ID       *string `json:"id,omitempty"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	Position int     `json:"position"`
}

type updateBlocksRequest struct {
	Blocks []blockUpdate `json:"blocks"`
}

type favoriteResponse struct {
	Favorite bool `json:"favorite"`
}

func (s *pageService) ListPages(ctx context.Context, q ports.PageQuery) (*domain.PageList, error) {
	params := url.Values{}
	setIfNotEmpty(params, "sort", q.Sort)
	setIfNotEmpty(params, "status", q.Status)
	setIfNotEmpty(params, "type", q.Type)
	if q.Favorite != nil {
		if *q.Favorite {
			params.Set("favorite", "1")
		} else {
			params.Set("favorite", "0")
		}
	}
	setIfPositive(params, "perPage", q.PerPage)

	var out domain.PageList
	if err := s.api.Request(ctx, http.MethodGet, withQuery("/page", params), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *pageService) GetPageDetail(ctx context.Context, id string) (*domain.PageDetail, error) {
	var out pageDetailEnvelope
	if err := s.api.Request(ctx, http.MethodGet, "/page/"+pathID(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *pageService) CreatePage(ctx context.Context, in ports.CreatePageInput) (*domain.Page, error) {
	req := createPageRequest{Title: in.Title, Type: in.Type, WorkspaceID: in.WorkspaceID}
	var out pageEnvelope
	if err := s.api.Request(ctx, http.MethodPost, "/page", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *pageService) UpdatePage(ctx context.Context, id, title string) (*domain.Page, error) {
	var out pageEnvelope
	if err := s.api.Request(ctx, http.MethodPut, "/page/"+pathID(id), updatePageRequest{Title: title}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *pageService) UpdatePageBlocks(ctx context.Context, id string, blocks []domain.Block) (*domain.PageDetail, error) {
	req := updateBlocksRequest{Blocks: make([]blockUpdate, 0, len(blocks))}
	for _, b := range blocks {
		u := blockUpdate{Type: b.Type, Content: b.Content, Position: b.Position}
		if b.ID != "" {
			id := b.ID
			u.ID = &id
		}
		req.Blocks = append(req.Blocks, u)
	}

	var out pageDetailEnvelope
	if err := s.api.Request(ctx, http.MethodPut, "/page/"+pathID(id), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (s *pageService) DeletePage(ctx context.Context, id string) error {
	return s.api.Request(ctx, http.MethodDelete, "/page/"+pathID(id), nil, nil)
}

func (s *pageService) ToggleFavorite(ctx context.Context, pageUUID string) (bool, error) {
	var out favoriteResponse
	if err := s.api.Request(ctx, http.MethodPost, "/page/"+pathID(pageUUID)+"/favorite", nil, &out); err != nil {
		return false, err
	}
	return out.Favorite, nil
}
