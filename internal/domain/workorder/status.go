package workorder

// ---------------------------------------------------------------------------
// Status represents the canonical (CMMS-side) work-order status
// ---------------------------------------------------------------------------

// Status represents the canonical work-order status vocabulary. Every record
// persisted to the CMMS store carries one of these values; raw client status
// strings never reach the store.
type Status string

const (
	// StatusCreated indicates the work order was created and not yet triaged
	StatusCreated Status = "created"
	// StatusPending indicates the work order is waiting to be scheduled
	StatusPending Status = "pending"
	// StatusInProgress indicates work is underway
	StatusInProgress Status = "in_progress"
	// StatusOnHold indicates work is paused
	StatusOnHold Status = "on_hold"
	// StatusCompleted indicates work finished successfully
	StatusCompleted Status = "completed"
	// StatusCancelled indicates the work order was cancelled
	StatusCancelled Status = "cancelled"
	// StatusDeleted indicates the work order was removed on the client side
	StatusDeleted Status = "deleted"
)

// IsValid returns true if the status is part of the canonical vocabulary
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPending, StatusInProgress, StatusOnHold,
		StatusCompleted, StatusCancelled, StatusDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// ClientStatus represents the client (ERP-side) status vocabulary
// ---------------------------------------------------------------------------

// ClientStatus represents a work-order status in the client ERP vocabulary
type ClientStatus string

const (
	// ClientStatusNew maps to StatusCreated
	ClientStatusNew ClientStatus = "NEW"
	// ClientStatusPending maps to StatusPending
	ClientStatusPending ClientStatus = "PENDING"
	// ClientStatusInProgress maps to StatusInProgress
	ClientStatusInProgress ClientStatus = "IN_PROGRESS"
	// ClientStatusOnHold maps to StatusOnHold
	ClientStatusOnHold ClientStatus = "ON_HOLD"
	// ClientStatusCompleted maps to StatusCompleted
	ClientStatusCompleted ClientStatus = "COMPLETED"
	// ClientStatusCancelled maps to StatusCancelled
	ClientStatusCancelled ClientStatus = "CANCELLED"
	// ClientStatusDeleted maps to StatusDeleted
	ClientStatusDeleted ClientStatus = "DELETED"
)

// String returns the string representation of ClientStatus
func (s ClientStatus) String() string {
	return string(s)
}

// clientToCanonical is the fixed, exhaustive enum translation table.
// "CANCELED" is accepted as an input alias; some client exports use the
// single-L spelling.
var clientToCanonical = map[ClientStatus]Status{
	ClientStatusNew:          StatusCreated,
	ClientStatusPending:      StatusPending,
	ClientStatusInProgress:   StatusInProgress,
	ClientStatusOnHold:       StatusOnHold,
	ClientStatusCompleted:    StatusCompleted,
	ClientStatusCancelled:    StatusCancelled,
	ClientStatus("CANCELED"): StatusCancelled,
	ClientStatusDeleted:      StatusDeleted,
}

// canonicalToClient is the exact inverse of the enum table
var canonicalToClient = map[Status]ClientStatus{
	StatusCreated:    ClientStatusNew,
	StatusPending:    ClientStatusPending,
	StatusInProgress: ClientStatusInProgress,
	StatusOnHold:     ClientStatusOnHold,
	StatusCompleted:  ClientStatusCompleted,
	StatusCancelled:  ClientStatusCancelled,
	StatusDeleted:    ClientStatusDeleted,
}

// ---------------------------------------------------------------------------
// ClientFlags represents the legacy boolean status flags
// ---------------------------------------------------------------------------

// ClientFlags holds the legacy boolean status fields that pre-date the client
// status enum. When no explicit status is present they resolve to a canonical
// status in priority order, most terminal state first.
type ClientFlags struct {
	IsDeleted    bool
	IsCanceled   bool
	IsDone       bool
	IsOnHold     bool
	IsInProgress bool
	IsPending    bool
}

// Any returns true if at least one flag is set
func (f ClientFlags) Any() bool {
	return f.IsDeleted || f.IsCanceled || f.IsDone || f.IsOnHold || f.IsInProgress || f.IsPending
}

// toStatus resolves the flags to a canonical status. Flags are checked in
// priority order so that the most terminal state wins; with no flags set the
// record is treated as freshly created.
func (f ClientFlags) toStatus() Status {
	switch {
	case f.IsDeleted:
		return StatusDeleted
	case f.IsCanceled:
		return StatusCancelled
	case f.IsDone:
		return StatusCompleted
	case f.IsOnHold:
		return StatusOnHold
	case f.IsInProgress:
		return StatusInProgress
	case f.IsPending:
		return StatusPending
	default:
		return StatusCreated
	}
}

// ---------------------------------------------------------------------------
// Mapping functions
// ---------------------------------------------------------------------------

// StatusFromClient maps a client status (or, absent one, the legacy flags) to
// exactly one canonical status. An explicit status that is not part of the
// enum table fails with UnknownStatusError; it never silently falls back to
// the flags or a default.
func StatusFromClient(status ClientStatus, flags ClientFlags) (Status, error) {
	if status != "" {
		canonical, ok := clientToCanonical[status]
		if !ok {
			return "", &UnknownStatusError{Value: string(status)}
		}
		return canonical, nil
	}
	return flags.toStatus(), nil
}

// ToClientStatus maps a canonical status back to the client enum. Values
// outside the canonical vocabulary fail with UnknownStatusError.
func ToClientStatus(status Status) (ClientStatus, error) {
	client, ok := canonicalToClient[status]
	if !ok {
		return "", &UnknownStatusError{Value: string(status)}
	}
	return client, nil
}

// clientFlagsFor returns the legacy boolean flags equivalent to the given
// canonical status, kept in sync for clients still reading the flag fields.
func clientFlagsFor(status Status) ClientFlags {
	switch status {
	case StatusDeleted:
		return ClientFlags{IsDeleted: true}
	case StatusCancelled:
		return ClientFlags{IsCanceled: true}
	case StatusCompleted:
		return ClientFlags{IsDone: true}
	case StatusOnHold:
		return ClientFlags{IsOnHold: true}
	case StatusInProgress:
		return ClientFlags{IsInProgress: true}
	case StatusPending:
		return ClientFlags{IsPending: true}
	default:
		return ClientFlags{}
	}
}
