package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/notaspace/notaspace-client/docs"
	"github.com/notaspace/notaspace-client/internal/api/handler"
	"github.com/notaspace/notaspace-client/internal/api/middleware"
	"github.com/notaspace/notaspace-client/internal/core/ports"
)

// Deps are the view-models and probes the agent serves.
type Deps struct {
	Session       handler.SessionModel
	Pages         handler.PagesModel
	Editor        handler.EditorModel
	Tasks         handler.TasksModel
	Notifications handler.NotificationsModel
	Trash         handler.TrashModel
	Home          handler.HomeModel
	Countries     handler.CountriesModel

	// Probes are pinged by /health/ready, keyed by dependency name.
	Probes map[string]ports.Pinger

	Secret string
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.Metrics())

	// --- Probes and docs (no auth required) ---
	health := handler.NewHealthHandler(d.Probes)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", middleware.Auth(d.Secret))
	read := middleware.RequireScope(middleware.ScopeRead)
	write := middleware.RequireScope(middleware.ScopeWrite)

	// --- Session ---
	session := handler.NewSessionHandler(d.Session)
	v1.GET("/session", session.State, read)
	v1.POST("/session/login", session.Login, write)
	v1.POST("/session/sign-up", session.SignUp, write)
	v1.POST("/session/code", session.SendCode, write)
	v1.POST("/session/code/resend", session.ResendCode, write)
	v1.POST("/session/code/verify", session.VerifyCode, write)
	v1.DELETE("/session/code", session.CancelCode, write)
	v1.POST("/session/logout", session.Logout, write)

	// --- Pages and editor ---
	pages := handler.NewPageHandler(d.Pages, d.Editor)
	v1.GET("/pages", pages.List, read)
	v1.POST("/pages/:uuid/favorite", pages.ToggleFavorite, write)
	v1.GET("/editor", pages.Editor, read)
	v1.POST("/editor", pages.Open, write)
	v1.PUT("/editor/blocks", pages.UpdateBlocks, write)
	v1.PUT("/editor/title", pages.UpdateTitle, write)
	v1.POST("/editor/save", pages.Save, write)
	v1.DELETE("/editor", pages.Close, write)

	// --- Collections ---
	col := handler.NewCollectionHandler(d.Home, d.Tasks, d.Notifications, d.Trash, d.Countries)
	v1.GET("/home", col.Home, read)
	v1.GET("/tasks", col.Tasks, read)

	v1.GET("/notifications", col.Notifications, read)
	v1.POST("/notifications/read-all", col.MarkAllRead, write)
	v1.POST("/notifications/:id/read", col.MarkRead, write)
	v1.DELETE("/notifications/:id", col.DeleteNotification, write)

	v1.GET("/trash", col.Trash, read)
	v1.POST("/trash/selection/restore", col.RestoreSelected, write)
	v1.POST("/trash/selection/purge", col.PurgeSelected, write)
	v1.POST("/trash/:type/:id/select", col.ToggleSelection, write)
	v1.POST("/trash/:type/:id/restore", col.Restore, write)
	v1.DELETE("/trash/:type/:id", col.Purge, write)

	v1.GET("/countries", col.Countries, read)
	v1.PUT("/countries/selected", col.SelectCountry, write)

	return e
}
