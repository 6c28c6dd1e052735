package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

type PageHandler struct {
	pages  PagesModel
	editor EditorModel
}

func NewPageHandler(pages PagesModel, editor EditorModel) *PageHandler {
	return &PageHandler{pages: pages, editor: editor}
}

// List reloads the page list, most recently updated first.
//
// @Summary      List pages
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case and accent insensitive title filter"
// @Success      200     {object}  viewmodel.PagesState
// @Failure      502     {object}  map[string]string
// @Router       /v1/pages [get]
func (h *PageHandler) List(c echo.Context) error {
	h.pages.SetSearch(c.QueryParam("search"))
	if err := h.pages.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.pages.State())
}

// ToggleFavorite flips the favorite flag of a page.
//
// @Summary      Toggle favorite
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "Page uuid"
// @Success      200   {object}  favoriteResponse
// @Router       /v1/pages/{uuid}/favorite [post]
func (h *PageHandler) ToggleFavorite(c echo.Context) error {
	fav, err := h.pages.ToggleFavorite(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favoriteResponse{Favorite: fav})
}

// Editor returns the open page and whether edits are waiting to be saved.
//
// @Summary      Editor state
// @Tags         editor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.EditorState
// @Router       /v1/editor [get]
func (h *PageHandler) Editor(c echo.Context) error {
	return c.JSON(http.StatusOK, h.editor.State())
}

// Open loads a page into the editor, saving pending edits of the previous one.
//
// @Summary      Open a page
// @Tags         editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      openPageRequest  true  "Page uuid"
// @Success      200   {object}  viewmodel.EditorState
// @Failure      404   {object}  map[string]string
// @Router       /v1/editor [post]
func (h *PageHandler) Open(c echo.Context) error {
	var req openPageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.editor.Open(c.Request().Context(), req.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.editor.State())
}

// UpdateBlocks replaces the blocks of the open page and schedules an autosave.
//
// @Summary      Edit blocks
// @Tags         editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateBlocksRequest  true  "Full block list; omit id for new blocks"
// @Success      202   {object}  viewmodel.EditorState
// @Failure      409   {object}  map[string]string
// @Router       /v1/editor/blocks [put]
func (h *PageHandler) UpdateBlocks(c echo.Context) error {
	var req updateBlocksRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	blocks := make([]domain.Block, len(req.Blocks))
	for i, b := range req.Blocks {
		blocks[i] = domain.Block{ID: b.ID, Type: b.Type, Content: b.Content, Position: b.Position}
	}
	if err := h.editor.UpdateBlocks(blocks); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, h.editor.State())
}

// UpdateTitle renames the open page.
//
// @Summary      Rename the open page
// @Tags         editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateTitleRequest  true  "New title"
// @Success      200   {object}  viewmodel.EditorState
// @Failure      409   {object}  map[string]string
// @Router       /v1/editor/title [put]
func (h *PageHandler) UpdateTitle(c echo.Context) error {
	var req updateTitleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.editor.UpdateTitle(c.Request().Context(), req.Title); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.editor.State())
}

// Save sends pending edits without waiting for the quiet window.
//
// @Summary      Save now
// @Tags         editor
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  savedResponse
// @Router       /v1/editor/save [post]
func (h *PageHandler) Save(c echo.Context) error {
	return c.JSON(http.StatusAccepted, savedResponse{Flushed: h.editor.Save()})
}

// Close flushes pending edits and closes the page.
//
// @Summary      Close the open page
// @Tags         editor
// @Security     BearerAuth
// @Success      204
// @Router       /v1/editor [delete]
func (h *PageHandler) Close(c echo.Context) error {
	h.editor.Close()
	return c.NoContent(http.StatusNoContent)
}
