// Package syncapp orchestrates the two synchronization flows between the
// CMMS store and the client exchange and reports on every run. Flows process
// records independently: one bad record never aborts a batch, and every
// error is attributed to its record and counted.
package syncapp

import (
	"time"

	"github.com/google/uuid"

	"github.com/cmms/bridge/internal/domain/workorder"
)

// Direction represents which way a sync run moves records
type Direction string

const (
	// DirectionInbound indicates records are pulled from the client exchange
	// into the CMMS store
	DirectionInbound Direction = "INBOUND"
	// DirectionOutbound indicates records are pushed from the CMMS store to
	// the client exchange
	DirectionOutbound Direction = "OUTBOUND"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// RecordError is one per-record failure attributed to the offending record
type RecordError struct {
	// OrderNumber identifies the record when known
	OrderNumber string `json:"order_number,omitempty"`
	// Source identifies the input unit for inbound failures (file name)
	Source string `json:"source,omitempty"`
	// Kind classifies the failure for counting
	Kind workorder.ErrorKind `json:"kind"`
	// Message is the underlying error text
	Message string `json:"message"`
}

// Report summarizes one flow invocation. Counts cover every record seen;
// no error is swallowed without being counted.
type Report struct {
	RunID       uuid.UUID     `json:"run_id"`
	Direction   Direction     `json:"direction"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Processed   int           `json:"processed"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Errors      []RecordError `json:"errors,omitempty"`
	// Fatal is set when a repository-level failure aborted the remaining
	// batch. Records already completed in the run stay committed.
	Fatal error `json:"-"`
}

func newReport(direction Direction, startedAt time.Time) *Report {
	return &Report{
		RunID:     uuid.New(),
		Direction: direction,
		StartedAt: startedAt,
	}
}

// addError records a per-record failure and bumps the failure count
func (r *Report) addError(orderNumber, source string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, RecordError{
		OrderNumber: orderNumber,
		Source:      source,
		Kind:        workorder.KindOf(err),
		Message:     err.Error(),
	})
}

// addMalformed records an input unit that could not be decoded at all
func (r *Report) addMalformed(source string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, RecordError{
		Source:  source,
		Kind:    workorder.KindMalformedInput,
		Message: err.Error(),
	})
}

// addInconsistency records a written-but-not-marked failure without counting
// the record as failed; the output was delivered.
func (r *Report) addInconsistency(orderNumber string, err error) {
	r.Errors = append(r.Errors, RecordError{
		OrderNumber: orderNumber,
		Kind:        workorder.KindInconsistency,
		Message:     err.Error(),
	})
}

// CountByKind returns how many errors of each kind the run collected
func (r *Report) CountByKind() map[workorder.ErrorKind]int {
	counts := make(map[workorder.ErrorKind]int)
	for _, e := range r.Errors {
		counts[e.Kind]++
	}
	return counts
}

// HasErrors returns true if the run collected any per-record errors
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}
