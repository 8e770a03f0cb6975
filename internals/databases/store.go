package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"mindsprint_backend/internals/configs"
	"mindsprint_backend/internals/features/homework/assignments/store"
)

// Backend is an opened assignment store together with its lifecycle hooks.
type Backend interface {
	store.Store
	store.Pinger
	store.Closer
}

// Migrator is implemented by backends that own a schema or indexes.
type Migrator interface {
	Migrate(ctx context.Context) error
}

type memoryBackend struct{ *store.MemoryStore }

func (memoryBackend) Close(context.Context) error { return nil }

type mongoBackend struct{ *store.MongoStore }

func (b mongoBackend) Migrate(ctx context.Context) error { return b.EnsureIndexes(ctx) }

// OpenStore opens the backend selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *configs.Config, log logrus.FieldLogger) (Backend, error) {
	switch cfg.StoreDriver {
	case configs.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memoryBackend{store.NewMemoryStore()}, nil

	case configs.DriverPostgres:
		db, err := ConnectPostgres(cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(db), nil

	case configs.DriverMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, err
		}
		return mongoBackend{store.NewMongoStore(client, cfg.Mongo.Database, log)}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
