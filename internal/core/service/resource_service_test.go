package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notaspace/notaspace-client/internal/core/domain"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

func TestPageService_ListPagesBuildsSortedQuery(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /page?favorite=1&perPage=6&sort=-updated_at&type=task"] =
		`{"data":[{"id":1,"uuid":"p1","title":"Board","type":"task"}],"current_page":1,"last_page":3,"per_page":6,"total":14}`
	svc := NewPageService(api)

	fav := true
	list, err := svc.ListPages(context.Background(), ports.PageQuery{
		Sort: "-updated_at", Type: "task", Favorite: &fav, PerPage: 6,
	})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "p1", list.Data[0].UUID)
	assert.Equal(t, 3, list.LastPage)
	assert.Equal(t, 14, list.Total)
}

func TestPageService_ListPagesWithoutFilters(t *testing.T) {
	api := newStubRequester()
	svc := NewPageService(api)

	_, err := svc.ListPages(context.Background(), ports.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, "/page", api.lastCall(t).endpoint)

	notFav := false
	_, err = svc.ListPages(context.Background(), ports.PageQuery{Favorite: &notFav})
	require.NoError(t, err)
	assert.Equal(t, "/page?favorite=0", api.lastCall(t).endpoint)
}

func TestPageService_GetPageDetailUnwrapsData(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /page/p1"] = `{"data":{"id":"p1","title":"Notes","type":"note",
		"blocks":[{"id":"b1","type":"paragraph","content":"hi","position":0}],
		"permissions":{"view":true,"comment":false,"update":true}}}`
	svc := NewPageService(api)

	page, err := svc.GetPageDetail(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Notes", page.Title)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, "hi", page.Blocks[0].Content)
	require.NotNil(t, page.Permissions)
	assert.True(t, page.Permissions.Update)
}

func TestPageService_UpdatePageBlocksSendsOnlyEditableFields(t *testing.T) {
	api := newStubRequester()
	api.responses["PUT /page/p1"] = `{"data":{"id":"p1","type":"note"}}`
	svc := NewPageService(api)

	_, err := svc.UpdatePageBlocks(context.Background(), "p1", []domain.Block{
		{ID: "b1", Type: "heading", Content: "Title", Position: 0, CommentsCount: 3},
		{Type: "paragraph", Content: "new", Position: 1},
	})
	require.NoError(t, err)

	call := api.lastCall(t)
	assert.Equal(t, http.MethodPut, call.method)
	assert.JSONEq(t, `{"blocks":[
		{"id":"b1","type":"heading","content":"Title","position":0},
		{"type":"paragraph","content":"new","position":1}]}`, bodyJSON(t, call.body))
}

func TestPageService_CreateUpdateDelete(t *testing.T) {
	api := newStubRequester()
	api.responses["POST /page"] = `{"data":{"id":7,"uuid":"p7","title":"New","type":"note"}}`
	api.responses["PUT /page/p7"] = `{"data":{"id":7,"uuid":"p7","title":"Renamed","type":"note"}}`
	svc := NewPageService(api)
	ctx := context.Background()

	ws := 3
	created, err := svc.CreatePage(ctx, ports.CreatePageInput{Title: "New", Type: "note", WorkspaceID: &ws})
	require.NoError(t, err)
	assert.Equal(t, "p7", created.UUID)
	assert.JSONEq(t, `{"title":"New","type":"note","workspace_id":3}`, bodyJSON(t, api.lastCall(t).body))

	_, err = svc.CreatePage(ctx, ports.CreatePageInput{Title: "New", Type: "note"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New","type":"note"}`, bodyJSON(t, api.lastCall(t).body))

	updated, err := svc.UpdatePage(ctx, "p7", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, svc.DeletePage(ctx, "p7"))
	call := api.lastCall(t)
	assert.Equal(t, http.MethodDelete, call.method)
	assert.Equal(t, "/page/p7", call.endpoint)
}

func TestPageService_ToggleFavorite(t *testing.T) {
	api := newStubRequester()
	api.responses["POST /page/p1/favorite"] = `{"favorite":true}`
	svc := NewPageService(api)

	fav, err := svc.ToggleFavorite(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestTaskService_Endpoints(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /page/p1/tasks"] = `{"data":[{"id":1,"uuid":"t1","title":"Do it"}]}`
	api.responses["POST /page/p1/tasks"] = `{"data":{"id":2,"uuid":"t2","title":"New"}}`
	api.responses["PUT /page/p1/tasks/t2"] = `{"data":{"id":2,"uuid":"t2","title":"New","status":"done"}}`
	svc := NewTaskService(api)
	ctx := context.Background()

	tasks, err := svc.ListTasks(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	_, err = svc.CreateTask(ctx, "p1", ports.CreateTaskInput{Title: "New"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New"}`, bodyJSON(t, api.lastCall(t).body))

	done := "done"
	task, err := svc.UpdateTask(ctx, "p1", "t2", ports.UpdateTaskInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, "done", task.Status)
	assert.JSONEq(t, `{"status":"done"}`, bodyJSON(t, api.lastCall(t).body))

	require.NoError(t, svc.DeleteTask(ctx, "p1", "t2"))
	assert.Equal(t, "/page/p1/tasks/t2", api.lastCall(t).endpoint)
}

func TestCatalogService_Workspaces(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /workspaces?perPage=12&with=stats"] = `{"data":{"public":[{"id":1,"uuid":"w1","name":"Team"}]}}`
	svc := NewCatalogService(api)

	ws, err := svc.ListWorkspaces(context.Background(), true, 12)
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "Team", ws[0].Name)
}

func TestCatalogService_ActivityLimit(t *testing.T) {
	api := newStubRequester()
	svc := NewCatalogService(api)

	_, err := svc.ListActivity(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "/activity?limit=6", api.lastCall(t).endpoint)

	_, err = svc.ListActivity(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "/activity", api.lastCall(t).endpoint)
}

func TestCatalogService_Notifications(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /notifications/unread-count"] = `{"count":5}`
	svc := NewCatalogService(api)
	ctx := context.Background()

	n, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, svc.MarkRead(ctx, 9))
	assert.Equal(t, "POST /notifications/9/read", api.lastCall(t).method+" "+api.lastCall(t).endpoint)

	require.NoError(t, svc.MarkAllRead(ctx))
	assert.Equal(t, "/notifications/read-all", api.lastCall(t).endpoint)

	require.NoError(t, svc.DeleteNotification(ctx, 9))
	assert.Equal(t, "DELETE /notifications/9", api.lastCall(t).method+" "+api.lastCall(t).endpoint)
}

func TestCatalogService_Trash(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /trash?perPage=50"] = `{"data":[{"id":4,"type":"page","title":"Old"}]}`
	svc := NewCatalogService(api)
	ctx := context.Background()

	items, err := svc.ListTrash(ctx, 50)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.Restore(ctx, domain.TrashTypePage, 4))
	assert.Equal(t, "POST /trash/page/4/restore", api.lastCall(t).method+" "+api.lastCall(t).endpoint)

	require.NoError(t, svc.Purge(ctx, domain.TrashTypeWorkspace, 4))
	assert.Equal(t, "DELETE /trash/workspace/4", api.lastCall(t).method+" "+api.lastCall(t).endpoint)
}

func TestCatalogService_CountryCodes(t *testing.T) {
	api := newStubRequester()
	api.responses["GET /get-country-codes"] = `{"data":[{"value":"+7","label":"RU","description":"Russia"},{"value":"+1","label":"US","description":"USA","icon":"us.png"}]}`
	svc := NewCatalogService(api)

	codes, err := svc.ListCountryCodes(context.Background())
	require.NoError(t, err)
	require.Len(t, codes, 2)
	assert.Equal(t, "us.png", codes[1].Icon)
}

func TestResourceServices_PropagateErrors(t *testing.T) {
	api := newStubRequester()
	api.errs["GET /notifications"] = domain.NewHTTPError(503)
	svc := NewCatalogService(api)

	_, err := svc.ListNotifications(context.Background())
	assert.ErrorIs(t, err, domain.ErrHTTP)
	assert.Equal(t, 1, api.callCount(), "no retry on failure")
}
