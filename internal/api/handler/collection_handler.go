package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notaspace/notaspace-client/internal/core/domain"
)

// CollectionHandler serves the read-mostly screens: home, tasks,
// notifications, trash and the country code picker.
type CollectionHandler struct {
	home          HomeModel
	tasks         TasksModel
	notifications NotificationsModel
	trash         TrashModel
	countries     CountriesModel
}

func NewCollectionHandler(home HomeModel, tasks TasksModel, notifications NotificationsModel, trash TrashModel, countries CountriesModel) *CollectionHandler {
	return &CollectionHandler{
		home:          home,
		tasks:         tasks,
		notifications: notifications,
		trash:         trash,
		countries:     countries,
	}
}

// Home loads recent pages, workspaces and activity together.
//
// @Summary      Dashboard
// @Tags         home
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.HomeState
// @Failure      502  {object}  map[string]string
// @Router       /v1/home [get]
func (h *CollectionHandler) Home(c echo.Context) error {
	if err := h.home.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.home.State())
}

// Tasks aggregates the tasks of every task page.
//
// @Summary      All tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.TasksState
// @Router       /v1/tasks [get]
func (h *CollectionHandler) Tasks(c echo.Context) error {
	if err := h.tasks.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.tasks.State())
}

// Notifications loads the list with the unread counter.
//
// @Summary      Notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.NotificationsState
// @Router       /v1/notifications [get]
func (h *CollectionHandler) Notifications(c echo.Context) error {
	if err := h.notifications.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notifications.State())
}

// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification id"
// @Success      200  {object}  viewmodel.NotificationsState
// @Router       /v1/notifications/{id}/read [post]
func (h *CollectionHandler) MarkRead(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notifications.State())
}

// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.NotificationsState
// @Router       /v1/notifications/read-all [post]
func (h *CollectionHandler) MarkAllRead(c echo.Context) error {
	if err := h.notifications.MarkAllRead(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notifications.State())
}

// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification id"
// @Success      200  {object}  viewmodel.NotificationsState
// @Router       /v1/notifications/{id} [delete]
func (h *CollectionHandler) DeleteNotification(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.notifications.State())
}

// Trash lists soft-deleted pages and workspaces with the current selection.
//
// @Summary      Trash
// @Tags         trash
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.TrashState
// @Router       /v1/trash [get]
func (h *CollectionHandler) Trash(c echo.Context) error {
	if err := h.trash.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.trash.State())
}

// @Summary      Toggle an item in the trash selection
// @Tags         trash
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "page or workspace"
// @Param        id    path      int     true  "Item id"
// @Success      200   {object}  selectionResponse
// @Router       /v1/trash/{type}/{id}/select [post]
func (h *CollectionHandler) ToggleSelection(c echo.Context) error {
	key, err := trashKey(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, selectionResponse{Selected: h.trash.ToggleSelection(key)})
}

// @Summary      Restore an item
// @Tags         trash
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "page or workspace"
// @Param        id    path      int     true  "Item id"
// @Success      200   {object}  viewmodel.TrashState
// @Router       /v1/trash/{type}/{id}/restore [post]
func (h *CollectionHandler) Restore(c echo.Context) error {
	key, err := trashKey(c)
	if err != nil {
		return err
	}
	if err := h.trash.Restore(c.Request().Context(), key); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.trash.State())
}

// @Summary      Delete an item permanently
// @Tags         trash
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "page or workspace"
// @Param        id    path      int     true  "Item id"
// @Success      200   {object}  viewmodel.TrashState
// @Router       /v1/trash/{type}/{id} [delete]
func (h *CollectionHandler) Purge(c echo.Context) error {
	key, err := trashKey(c)
	if err != nil {
		return err
	}
	if err := h.trash.Purge(c.Request().Context(), key); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.trash.State())
}

// RestoreSelected keeps going past failed items; the response lists what is left.
//
// @Summary      Restore the selection
// @Tags         trash
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.TrashState
// @Router       /v1/trash/selection/restore [post]
func (h *CollectionHandler) RestoreSelected(c echo.Context) error {
	if err := h.trash.RestoreSelected(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.trash.State())
}

// @Summary      Delete the selection permanently
// @Tags         trash
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.TrashState
// @Router       /v1/trash/selection/purge [post]
func (h *CollectionHandler) PurgeSelected(c echo.Context) error {
	if err := h.trash.PurgeSelected(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.trash.State())
}

// Countries reloads the dialing codes; search narrows the returned codes.
//
// @Summary      Country codes
// @Tags         countries
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Label, description or value filter"
// @Success      200     {object}  viewmodel.CountriesState
// @Router       /v1/countries [get]
func (h *CollectionHandler) Countries(c echo.Context) error {
	if err := h.countries.Load(c.Request().Context()); err != nil {
		return err
	}
	st := h.countries.State()
	if q := c.QueryParam("search"); q != "" {
		st.Codes = h.countries.Search(q)
	}
	return c.JSON(http.StatusOK, st)
}

// @Summary      Select a country code
// @Tags         countries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectCountryRequest  true  "Dialing code, e.g. +7"
// @Success      200   {object}  viewmodel.CountriesState
// @Failure      422   {object}  map[string]string
// @Router       /v1/countries/selected [put]
func (h *CollectionHandler) SelectCountry(c echo.Context) error {
	var req selectCountryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !h.countries.Select(req.Value) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "country code is not offered")
	}
	return c.JSON(http.StatusOK, h.countries.State())
}

func trashKey(c echo.Context) (domain.TrashKey, error) {
	t := c.Param("type")
	if t != domain.TrashTypePage && t != domain.TrashTypeWorkspace {
		return domain.TrashKey{}, echo.NewHTTPError(http.StatusBadRequest, "type must be page or workspace")
	}
	id, err := intParam(c, "id")
	if err != nil {
		return domain.TrashKey{}, err
	}
	return domain.TrashKey{Type: t, ID: id}, nil
}
