package workorder

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ClientRecord is the client ERP's external work-order shape, one JSON file
// per record. The field set is fixed; records carrying anything else are
// rejected at the translation boundary rather than deep in processing.
//
// The legacy flag fields are pointers so that a record carrying the flags
// with all of them false (a valid "created" record) can be told apart from a
// record carrying no status information at all.
type ClientRecord struct {
	OrderNo string `json:"orderNo" validate:"required"`
	// Status is the client status enum. Older exports omit it and carry only
	// the legacy boolean flags below.
	Status       ClientStatus `json:"status,omitempty"`
	IsCanceled   *bool        `json:"isCanceled,omitempty"`
	IsDeleted    *bool        `json:"isDeleted,omitempty"`
	IsDone       *bool        `json:"isDone,omitempty"`
	IsOnHold     *bool        `json:"isOnHold,omitempty"`
	IsInProgress *bool        `json:"isInProgress,omitempty"`
	IsPending    *bool        `json:"isPending,omitempty"`
	Summary      string       `json:"summary"`
	CreationDate string       `json:"creationDate" validate:"required"`

	LastUpdateDate string  `json:"lastUpdateDate,omitempty"`
	DeletedDate    *string `json:"deletedDate,omitempty"`
}

// Flags returns the record's legacy boolean flags, treating absent fields as
// false.
func (r *ClientRecord) Flags() ClientFlags {
	return ClientFlags{
		IsDeleted:    boolValue(r.IsDeleted),
		IsCanceled:   boolValue(r.IsCanceled),
		IsDone:       boolValue(r.IsDone),
		IsOnHold:     boolValue(r.IsOnHold),
		IsInProgress: boolValue(r.IsInProgress),
		IsPending:    boolValue(r.IsPending),
	}
}

// HasLegacyFlags returns true if the record carries at least one of the
// legacy flag fields, regardless of value.
func (r *ClientRecord) HasLegacyFlags() bool {
	return r.IsCanceled != nil || r.IsDeleted != nil || r.IsDone != nil ||
		r.IsOnHold != nil || r.IsInProgress != nil || r.IsPending != nil
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func boolPtr(b bool) *bool {
	return &b
}

// validate is shared by all ClientRecord validations; field names reported
// in errors are the JSON names the client sees, not the Go field names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks required-field presence on an inbound client record. A
// record must carry orderNo, creationDate, and either a status enum or at
// least one recognizable legacy flag.
func (r *ClientRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Field()}
		}
		return err
	}
	if r.Status == "" && !r.HasLegacyFlags() {
		return &ValidationError{Field: "status"}
	}
	return nil
}
