package workorder

import (
	"context"
	"time"
)

// PendingRecord is one discoverable input unit from the client exchange.
// Source identifies the unit (the file name) for error attribution; Err is
// set when the unit exists but could not be decoded, so that undecodable
// input is counted rather than silently skipped.
type PendingRecord struct {
	Source string
	Record *ClientRecord
	Err    error
}

// Repository is the CMMS-side system of record for work orders. The
// implementation owns connection retry and backoff; when those are exhausted
// every method fails with an error wrapping ErrStoreUnavailable.
type Repository interface {
	// FindUnsynced returns a snapshot of every work order with IsSynced
	// false, the set eligible for the outbound flow.
	FindUnsynced(ctx context.Context) ([]*WorkOrder, error)

	// Upsert inserts or updates a work order keyed by OrderNumber; it never
	// produces duplicate records for the same key.
	Upsert(ctx context.Context, w *WorkOrder) error

	// MarkSynced sets IsSynced true and SyncedAt in a single update, called
	// only after a confirmed outbound write.
	MarkSynced(ctx context.Context, orderNumber string, syncedAt time.Time) error
}

// Exchange is the client-side boundary: discrete records read from the
// inbound directory and written to the outbound directory.
type Exchange interface {
	// ListPending returns one PendingRecord per discoverable input unit
	ListPending(ctx context.Context) ([]PendingRecord, error)

	// Write persists one translated record as an output unit. The write is
	// atomic from the consumer's point of view: it either fully succeeds or
	// fails leaving no artifact.
	Write(ctx context.Context, rec *ClientRecord) error
}
