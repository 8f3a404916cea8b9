package main

import (
	"context"
	"fmt"

	"github.com/bookshelf/storefront/internal/api/metrics"
	"github.com/bookshelf/storefront/internal/core/ports"
	"github.com/bookshelf/storefront/internal/core/service"
	"github.com/bookshelf/storefront/internal/infrastructure/backend"
	"github.com/bookshelf/storefront/internal/infrastructure/db/file"
	"github.com/bookshelf/storefront/internal/infrastructure/db/memory"
	mongostore "github.com/bookshelf/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/bookshelf/storefront/internal/infrastructure/db/redis"
	"github.com/bookshelf/storefront/internal/infrastructure/http/handlers"
	"github.com/bookshelf/storefront/internal/pkg/config"
	"github.com/bookshelf/storefront/pkg/logger"
)

// runtime is a constructed storefront plus what it needs torn down.
type runtime struct {
	sf     *service.Storefront
	client *backend.Client
	checks handlers.Checks
	close  func()
}

// openStore returns the configured session store, its readiness check and a
// closer.
func openStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, handlers.Check, func(), error) {
	noop := func() {}

	switch cfg.Session.Store {
	case config.StoreMemory:
		return memory.NewSessionStore(), nil, noop, nil

	case config.StoreRedis:
		client, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		check := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		store := redisstore.NewSessionStore(client, cfg.Redis.KeyPrefix+cfg.Session.ID+":")
		return store, check, func() { _ = client.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongostore.Open(ctx, mongostore.Options{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		check := func(ctx context.Context) error { return client.Ping(ctx, nil) }
		store := mongostore.NewSessionStore(db, cfg.Session.ID)
		return store, check, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return file.NewSessionStore(cfg.Session.File), nil, noop, nil
	}
}

// build wires a Storefront against the configured backend and session store.
// The session is not initialized yet.
func build(ctx context.Context, a *app) (*runtime, error) {
	store, storeCheck, closeStore, err := openStore(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s session store: %w", a.cfg.Session.Store, err)
	}

	client := backend.New(backend.Config{
		BaseURL:   a.cfg.Backend.URL,
		Timeout:   a.cfg.Backend.Timeout,
		RateLimit: a.cfg.Backend.RateLimit,
		Burst:     a.cfg.Backend.Burst,
	}, logger.Component("backend"), backend.WithObserver(metrics.ObserveBackend))

	checks := handlers.Checks{"backend": client.Ping}
	if storeCheck != nil {
		checks["session_store"] = storeCheck
	}

	return &runtime{
		sf:     service.New(client, store, a.log),
		client: client,
		checks: checks,
		close:  closeStore,
	}, nil
}

// open builds the storefront and restores the persisted session.
func open(ctx context.Context, a *app) (*runtime, error) {
	rt, err := build(ctx, a)
	if err != nil {
		return nil, err
	}
	if err := rt.sf.Session.Initialize(ctx); err != nil {
		rt.close()
		return nil, err
	}
	return rt, nil
}
