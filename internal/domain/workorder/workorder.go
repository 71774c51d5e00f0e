// Package workorder holds the canonical work-order entity, the status
// vocabularies of both systems and the bidirectional mapping between them,
// and the pure translators that convert records across the CMMS/client
// boundary. Nothing in this package performs I/O.
package workorder

import "time"

// WorkOrder is the canonical internal form of a work order, stored in the
// CMMS document store and used as the unit of synchronization. OrderNumber
// is the natural key for upserts and is stable across both systems.
type WorkOrder struct {
	OrderNumber string
	Status      Status
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	Deleted     bool
	// IsSynced is false for every newly created or updated record and flips
	// to true only after the record was written to the client exchange and
	// acknowledged. SyncedAt is set in the same update.
	IsSynced bool
	SyncedAt *time.Time
}

// Validate checks that the record carries the fields the client side
// requires before it may be translated outbound. It fails closed: a record
// that does not validate is skipped and reported, never partially written.
func (w *WorkOrder) Validate() error {
	if w.OrderNumber == "" {
		return &ValidationError{Field: "orderNumber"}
	}
	if w.Status == "" {
		return &ValidationError{Field: "status"}
	}
	return nil
}
