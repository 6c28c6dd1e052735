package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/notaspace/notaspace-client/internal/api"
	"github.com/notaspace/notaspace-client/internal/core/ports"
	"github.com/notaspace/notaspace-client/internal/core/service"
	"github.com/notaspace/notaspace-client/internal/core/viewmodel"
	"github.com/notaspace/notaspace-client/internal/infrastructure/apiclient"
	mongostore "github.com/notaspace/notaspace-client/internal/infrastructure/db/mongo"
	redisstore "github.com/notaspace/notaspace-client/internal/infrastructure/db/redis"
	"github.com/notaspace/notaspace-client/internal/infrastructure/keychain"
	"github.com/notaspace/notaspace-client/internal/infrastructure/queue"
	"github.com/notaspace/notaspace-client/internal/pkg/config"
	"github.com/notaspace/notaspace-client/pkg/logger"
)

// app is the composition root shared by every subcommand.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	api    *apiclient.Client
	tokens ports.TokenStore
	probes map[string]ports.Pinger
	closer []func(context.Context)

	auth    *service.AuthService
	pages   ports.PageService
	tasks   ports.TaskService
	catalog *service.CatalogService

	dispatcher *queue.Dispatcher
	autosaver  *service.Autosaver

	session       *viewmodel.Session
	pageList      *viewmodel.Pages
	editor        *viewmodel.Editor
	taskList      *viewmodel.Tasks
	notifications *viewmodel.Notifications
	trash         *viewmodel.Trash
	home          *viewmodel.Home
	countries     *viewmodel.Countries
}

// newApp wires every component. Without persistent the session lives in
// memory only and no keychain backend is opened.
func newApp(ctx context.Context, cfg *config.Config, persistent bool) (*app, error) {
	log := logger.Get()
	a := &app{cfg: cfg, log: log, probes: map[string]ports.Pinger{}}

	if persistent {
		tokens, err := a.openTokenStore(ctx)
		if err != nil {
			a.close(ctx)
			if errors.Is(err, keychain.ErrNoPassphrase) {
				return nil, fmt.Errorf("%w: set KEYCHAIN_PASSPHRASE or KEYCHAIN_BACKEND=memory", err)
			}
			return nil, err
		}
		a.tokens = tokens
	} else {
		a.tokens = keychain.NewMemory()
	}

	a.api = apiclient.New(cfg.APIBaseURL(), nil, log.With().Str("component", "apiclient").Logger())
	a.auth = service.NewAuthService(a.api, a.tokens, log.With().Str("component", "auth").Logger())
	a.pages = service.NewPageService(a.api)
	a.tasks = service.NewTaskService(a.api)
	a.catalog = service.NewCatalogService(a.api)

	a.dispatcher = queue.NewDispatcher(cfg.Autosave.Workers, a.pages, log.With().Str("component", "dispatcher").Logger())
	a.autosaver = service.NewAutosaver(cfg.Autosave.Quiet, a.dispatcher.Enqueue, log)

	a.session = viewmodel.NewSession(a.auth, viewmodel.NewCooldown(time.Second), log)
	a.pageList = viewmodel.NewPages(a.pages, log)
	a.editor = viewmodel.NewEditor(a.pages, a.autosaver, log)
	a.taskList = viewmodel.NewTasks(a.pages, a.tasks, log)
	a.notifications = viewmodel.NewNotifications(a.catalog, log)
	a.trash = viewmodel.NewTrash(a.catalog, log)
	a.home = viewmodel.NewHome(a.pages, a.catalog, a.catalog, log)
	a.countries = viewmodel.NewCountries(a.catalog, log)
	return a, nil
}

// openTokenStore selects the keychain backend. Remote backends only ever see
// sealed values.
func (a *app) openTokenStore(ctx context.Context) (ports.TokenStore, error) {
	kc := a.cfg.Keychain
	log := a.log.With().Str("component", "keychain").Str("backend", kc.Backend).Logger()

	switch kc.Backend {
	case "memory":
		return keychain.NewMemory(), nil

	case "file":
		return keychain.NewFile(keychain.FileConfig{
			Path:       kc.Path,
			Service:    kc.Service,
			Account:    kc.Account,
			Passphrase: kc.Passphrase,
		}, log)

	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closer = append(a.closer, func(context.Context) { _ = client.Close() })
		return a.seal(redisstore.NewTokenStore(client, kc.Service, kc.Account, log))

	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closer = append(a.closer, func(ctx context.Context) { _ = client.Disconnect(ctx) })
		return a.seal(mongostore.NewTokenStore(db, kc.Service, kc.Account, log))

	default:
		return nil, fmt.Errorf("unknown keychain backend %q (want file, redis, mongo or memory)", kc.Backend)
	}
}

func (a *app) seal(inner ports.TokenStore) (ports.TokenStore, error) {
	kc := a.cfg.Keychain
	sealed, err := keychain.NewSealed(inner, kc.Passphrase, kc.Service, kc.Account, 0)
	if err != nil {
		return nil, err
	}
	a.probes["keychain"] = sealed
	return sealed, nil
}

func (a *app) agentDeps() api.Deps {
	return api.Deps{
		Session:       a.session,
		Pages:         a.pageList,
		Editor:        a.editor,
		Tasks:         a.taskList,
		Notifications: a.notifications,
		Trash:         a.trash,
		Home:          a.home,
		Countries:     a.countries,
		Probes:        a.probes,
		Secret:        a.cfg.Agent.Secret,
		Log:           a.log.With().Str("component", "agent").Logger(),
	}
}

func (a *app) close(ctx context.Context) {
	if a.autosaver != nil {
		a.autosaver.Stop()
	}
	for i := len(a.closer) - 1; i >= 0; i-- {
		a.closer[i](ctx)
	}
}
