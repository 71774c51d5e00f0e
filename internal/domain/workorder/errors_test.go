package workorder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"validation", &ValidationError{Field: "orderNo", Reason: "required"}, KindValidation},
		{"date parse", &DateParseError{Field: "creationDate", Value: "soon"}, KindDateParse},
		{"unknown status", &UnknownStatusError{Value: "FOOBAR"}, KindUnknownStatus},
		{"inconsistency", &InconsistencyError{OrderNumber: "WO-1", Cause: errors.New("boom")}, KindInconsistency},
		{"store unavailable", fmt.Errorf("upsert: %w", ErrStoreUnavailable), KindStoreUnavailable},
		{"exchange unavailable", fmt.Errorf("list: %w", ErrExchangeUnavailable), KindExchangeUnavailable},
		{"anything else", errors.New("boom"), KindUnknown},
		{"wrapped typed error", fmt.Errorf("order WO-1: %w", &UnknownStatusError{Value: "X"}), KindUnknownStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestInconsistencyError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("mark synced: %w", ErrStoreUnavailable)
	err := &InconsistencyError{OrderNumber: "WO-1", Cause: cause}

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "WO-1")
}
