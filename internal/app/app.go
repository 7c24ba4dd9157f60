// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/JakeFAU/moviecatalog/internal/api"
	"github.com/JakeFAU/moviecatalog/internal/catalog"
	"github.com/JakeFAU/moviecatalog/internal/clock/system"
	"github.com/JakeFAU/moviecatalog/internal/config"
	"github.com/JakeFAU/moviecatalog/internal/id/uuid"
	pubsubpublisher "github.com/JakeFAU/moviecatalog/internal/publisher/pubsub"
	"github.com/JakeFAU/moviecatalog/internal/storage/memory"
	"github.com/JakeFAU/moviecatalog/internal/storage/mongo"
	"github.com/JakeFAU/moviecatalog/internal/storage/postgres"
	"github.com/JakeFAU/moviecatalog/internal/views"
	"github.com/JakeFAU/moviecatalog/internal/webhook"
)

// App holds the shared, long-lived services: the store client, the
// repositories built on it, the optional change publisher and webhook syncer.
// It is built once at startup and closed at shutdown.
type App struct {
	cfg        config.Config
	logger     *zap.Logger
	movies     catalog.MovieRepository
	categories catalog.CategoryRepository
	health     catalog.Pinger
	publisher  catalog.Publisher
	syncer     *webhook.GitSyncer
	views      *views.Renderer
	closers    []func(context.Context) error
}

// Option customizes New.
type Option func(*options)

type options struct {
	pubsubOpts []option.ClientOption
	runner     webhook.CommandRunner
}

// WithPubSubOptions passes client options to the Pub/Sub client, e.g. to
// point it at an emulator.
func WithPubSubOptions(opts ...option.ClientOption) Option {
	return func(o *options) { o.pubsubOpts = append(o.pubsubOpts, opts...) }
}

// WithCommandRunner replaces the runner used by the webhook syncer.
func WithCommandRunner(runner webhook.CommandRunner) Option {
	return func(o *options) { o.runner = runner }
}

// New connects the configured store and builds every service. It fails fast
// when a critical service cannot be initialized, closing whatever was opened.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, logger: logger, views: renderer}

	if err := a.openStore(ctx); err != nil {
		return nil, errors.Join(err, a.Close(ctx))
	}

	if cfg.PubSub.TopicName != "" {
		pub, err := pubsubpublisher.New(ctx, cfg.PubSub.ProjectID, o.pubsubOpts...)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init pubsub publisher: %w", err), a.Close(ctx))
		}
		a.publisher = pub
		a.closers = append(a.closers, func(context.Context) error { return pub.Close() })
		logger.Info("publishing change events", zap.String("topic", cfg.PubSub.TopicName))
	}

	if cfg.WebhookEnabled() {
		a.syncer = webhook.NewGitSyncer(webhook.SyncerConfig{
			RepoDir:     cfg.Webhook.RepoDir,
			Executable:  cfg.Webhook.Executable,
			MinInterval: cfg.WebhookMinInterval(),
		}, o.runner, logger.Named("webhook"))
		logger.Info("deploy webhook enabled", zap.String("repo_dir", cfg.Webhook.RepoDir))
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.Store.Driver {
	case config.DriverMongo:
		client, err := mongo.NewClient(ctx, mongo.Config{
			URI:      a.cfg.Mongo.URI,
			Host:     a.cfg.Mongo.Host,
			Port:     a.cfg.Mongo.Port,
			User:     a.cfg.Mongo.User,
			Password: a.cfg.Mongo.Password,
			Database: a.cfg.Mongo.Database,
			Timeout:  a.cfg.MongoTimeout(),
		})
		if err != nil {
			return fmt.Errorf("init mongo store: %w", err)
		}
		a.movies, a.categories, a.health = client.Movies(), client.Categories(), client
		a.closers = append(a.closers, client.Close)
		a.logger.Info("using mongo store", zap.String("database", a.cfg.Mongo.Database))
	case config.DriverPostgres:
		client, err := postgres.NewClient(ctx, postgres.Config{
			DSN:      a.cfg.Postgres.DSN,
			MaxConns: int32(a.cfg.Postgres.MaxConns),
		})
		if err != nil {
			return fmt.Errorf("init postgres store: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { client.Close(); return nil })
		if err := client.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("init postgres store: %w", err)
		}
		a.movies, a.categories, a.health = client.Movies(uuid.New()), client.Categories(), client
		a.logger.Info("using postgres store")
	case config.DriverMemory:
		movies := memory.NewMovieStore(uuid.New())
		a.movies, a.categories, a.health = movies, memory.NewCategoryStore(), movies
		a.logger.Warn("using in-memory store; data is lost on restart")
	default:
		return fmt.Errorf("unknown store driver: %s", a.cfg.Store.Driver)
	}
	return nil
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Config returns the configuration the app was built from.
func (a *App) Config() config.Config {
	return a.cfg
}

// Movies exposes the movie repository.
func (a *App) Movies() catalog.MovieRepository {
	return a.movies
}

// Categories exposes the category repository.
func (a *App) Categories() catalog.CategoryRepository {
	return a.categories
}

// Handler builds the HTTP handler over the app's services.
func (a *App) Handler() http.Handler {
	deps := api.Dependencies{
		Movies:     a.movies,
		Categories: a.categories,
		Health:     a.health,
		Clock:      system.New(),
		Views:      a.views,
	}
	if a.publisher != nil {
		deps.Publisher = a.publisher
	}
	if a.syncer != nil {
		deps.Syncer = a.syncer
	}
	return api.NewServer(deps, a.cfg, a.logger.Named("api")).Handler()
}

// Close shuts down services in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("error closing service", zap.Error(err))
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
