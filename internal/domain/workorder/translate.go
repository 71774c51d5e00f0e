package workorder

import "time"

// acceptedDateLayouts are the layouts tried when parsing client date fields.
// Client exports carry RFC 3339 timestamps with or without sub-second
// precision; a zone-less layout is accepted and treated as UTC.
var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseClientDate parses a client date field into UTC at second precision.
// It never defaults an unparseable value to the current time.
func parseClientDate(field, value string) (time.Time, error) {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, &DateParseError{Field: field, Value: value}
}

// FromClient translates one inbound client record into the canonical
// work-order shape: required-field validation, date normalization to UTC
// second precision, status resolution, field renaming. The result always has
// IsSynced false so that every inbound update triggers a fresh outbound
// pass. Pure transform; no side effects.
func FromClient(rec *ClientRecord) (*WorkOrder, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	status, err := StatusFromClient(rec.Status, rec.Flags())
	if err != nil {
		return nil, err
	}

	createdAt, err := parseClientDate("creationDate", rec.CreationDate)
	if err != nil {
		return nil, err
	}

	var updatedAt *time.Time
	if rec.LastUpdateDate != "" {
		t, err := parseClientDate("lastUpdateDate", rec.LastUpdateDate)
		if err != nil {
			return nil, err
		}
		updatedAt = &t
	}

	return &WorkOrder{
		OrderNumber: rec.OrderNo,
		Status:      status,
		Title:       rec.Summary,
		Description: rec.Summary,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Deleted:     status == StatusDeleted,
		IsSynced:    false,
	}, nil
}

// ToClient translates a canonical work order back into the client's external
// shape: status mapped to the client enum plus the back-compat boolean
// flags, dates formatted as RFC 3339 UTC, deletedDate derived from the last
// update when the record is deleted. It does not touch IsSynced or SyncedAt;
// marking a record synced is the outbound flow's job, applied only after a
// confirmed write. Pure transform; no side effects.
func ToClient(w *WorkOrder) (*ClientRecord, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	clientStatus, err := ToClientStatus(w.Status)
	if err != nil {
		return nil, err
	}
	flags := clientFlagsFor(w.Status)

	rec := &ClientRecord{
		OrderNo:      w.OrderNumber,
		Status:       clientStatus,
		IsCanceled:   boolPtr(flags.IsCanceled),
		IsDeleted:    boolPtr(w.Deleted || flags.IsDeleted),
		IsDone:       boolPtr(flags.IsDone),
		IsOnHold:     boolPtr(flags.IsOnHold),
		IsInProgress: boolPtr(flags.IsInProgress),
		IsPending:    boolPtr(flags.IsPending),
		Summary:      w.Title,
	}
	if !w.CreatedAt.IsZero() {
		rec.CreationDate = w.CreatedAt.UTC().Format(time.RFC3339)
	}
	if w.UpdatedAt != nil {
		rec.LastUpdateDate = w.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if w.Deleted && w.UpdatedAt != nil {
		deletedDate := w.UpdatedAt.UTC().Format(time.RFC3339)
		rec.DeletedDate = &deletedDate
	}
	return rec, nil
}
