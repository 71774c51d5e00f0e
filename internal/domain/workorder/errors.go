package workorder

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrStoreUnavailable indicates the CMMS store could not be reached.
	// Fatal for the remainder of a flow run.
	ErrStoreUnavailable = errors.New("workorder: store unavailable")
	// ErrExchangeUnavailable indicates the client exchange (filesystem)
	// could not be reached. Fatal for the remainder of a flow run.
	ErrExchangeUnavailable = errors.New("workorder: exchange unavailable")
	// ErrNotFound indicates the requested work order does not exist
	ErrNotFound = errors.New("workorder: not found")
)

// ---------------------------------------------------------------------------
// Per-record errors
// ---------------------------------------------------------------------------

// ValidationError indicates a required field is missing or malformed on a
// record crossing the translation boundary. Per-record, non-fatal.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("workorder: field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("workorder: missing required field %q", e.Field)
}

// DateParseError indicates a date field could not be parsed. Per-record,
// non-fatal; translation never defaults an unparseable date to "now".
type DateParseError struct {
	Field string
	Value string
}

// Error implements the error interface
func (e *DateParseError) Error() string {
	return fmt.Sprintf("workorder: field %q has unparseable date %q", e.Field, e.Value)
}

// UnknownStatusError indicates a status value absent from both the enum
// table and the legacy flag set. Per-record, non-fatal; usually a sign of
// upstream schema drift.
type UnknownStatusError struct {
	Value string
}

// Error implements the error interface
func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("workorder: unknown status %q", e.Value)
}

// InconsistencyError indicates an outbound write succeeded but the
// mark-synced update did not: the output exists while the source record is
// still pending. Requires reconciliation; never silently dropped.
type InconsistencyError struct {
	OrderNumber string
	Cause       error
}

// Error implements the error interface
func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("workorder: order %s written but not marked synced: %v", e.OrderNumber, e.Cause)
}

// Unwrap returns the underlying mark-synced failure
func (e *InconsistencyError) Unwrap() error {
	return e.Cause
}

// ---------------------------------------------------------------------------
// Error kinds
// ---------------------------------------------------------------------------

// ErrorKind classifies sync errors for run reporting
type ErrorKind string

const (
	// KindValidation covers missing or malformed required fields
	KindValidation ErrorKind = "validation"
	// KindDateParse covers unparseable date fields
	KindDateParse ErrorKind = "date_parse"
	// KindUnknownStatus covers unmapped status values
	KindUnknownStatus ErrorKind = "unknown_status"
	// KindMalformedInput covers input units that could not be decoded at all
	KindMalformedInput ErrorKind = "malformed_input"
	// KindStoreUnavailable covers CMMS store connectivity failures
	KindStoreUnavailable ErrorKind = "store_unavailable"
	// KindExchangeUnavailable covers client exchange failures
	KindExchangeUnavailable ErrorKind = "exchange_unavailable"
	// KindInconsistency covers written-but-not-marked records
	KindInconsistency ErrorKind = "inconsistency"
	// KindUnknown covers everything else
	KindUnknown ErrorKind = "unknown"
)

// KindOf classifies an error into its reporting kind
func KindOf(err error) ErrorKind {
	var (
		validationErr    *ValidationError
		dateErr          *DateParseError
		statusErr        *UnknownStatusError
		inconsistencyErr *InconsistencyError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &dateErr):
		return KindDateParse
	case errors.As(err, &statusErr):
		return KindUnknownStatus
	case errors.As(err, &inconsistencyErr):
		return KindInconsistency
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrExchangeUnavailable):
		return KindExchangeUnavailable
	default:
		return KindUnknown
	}
}
