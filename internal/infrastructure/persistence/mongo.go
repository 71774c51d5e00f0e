// Package persistence holds the storage adapters: the MongoDB-backed CMMS
// work-order repository and the SQLite-backed sync-run history store.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/cmms/bridge/internal/domain/workorder"
	"github.com/cmms/bridge/internal/infrastructure/config"
)

// Store holds the CMMS document-store connection
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to the CMMS document store and verifies the connection.
// The driver owns per-operation retry; once it gives up, operations surface
// ErrStoreUnavailable.
func NewStore(ctx context.Context, cfg *config.StoreConfig) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging store: %w: %v", workorder.ErrStoreUnavailable, err)
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Collection returns a handle to the named collection
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects from the store
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mapStoreErr maps driver connectivity failures to ErrStoreUnavailable so
// callers can distinguish fatal connectivity loss from data-level errors.
func mapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, workorder.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
