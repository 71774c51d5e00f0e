package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmms/bridge/internal/domain/workorder"
)

func TestWorkOrderDocRoundTrip(t *testing.T) {
	updatedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	syncedAt := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	w := &workorder.WorkOrder{
		OrderNumber: "WO-1042",
		Status:      workorder.StatusCompleted,
		Title:       "Replace bearing",
		Description: "Replace bearing",
		CreatedAt:   time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
		UpdatedAt:   &updatedAt,
		IsSynced:    true,
		SyncedAt:    &syncedAt,
	}

	doc := newWorkOrderDoc(w)
	back := doc.toDomain()

	assert.Equal(t, w, back)
}

func TestShouldUpdate(t *testing.T) {
	base := func() *workOrderDoc {
		updatedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		return &workOrderDoc{
			OrderNumber: "WO-1",
			Status:      "completed",
			Title:       "Replace bearing",
			Description: "Replace bearing",
			CreatedAt:   time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
			UpdatedAt:   &updatedAt,
		}
	}

	t.Run("identical records do not update", func(t *testing.T) {
		assert.False(t, shouldUpdate(base(), base()))
	})

	t.Run("sync metadata is ignored", func(t *testing.T) {
		existing := base()
		existing.IsSynced = true
		syncedAt := time.Now()
		existing.SyncedAt = &syncedAt

		assert.False(t, shouldUpdate(existing, base()))
	})

	t.Run("sub-second timestamp drift is ignored", func(t *testing.T) {
		incoming := base()
		incoming.CreatedAt = incoming.CreatedAt.Add(300 * time.Millisecond)

		assert.False(t, shouldUpdate(base(), incoming))
	})

	t.Run("timezone representation is ignored", func(t *testing.T) {
		loc, err := time.LoadLocation("America/Sao_Paulo")
		require.NoError(t, err)
		incoming := base()
		incoming.CreatedAt = incoming.CreatedAt.In(loc)

		assert.False(t, shouldUpdate(base(), incoming))
	})

	t.Run("changed fields update", func(t *testing.T) {
		cases := map[string]func(d *workOrderDoc){
			"status":      func(d *workOrderDoc) { d.Status = "cancelled" },
			"title":       func(d *workOrderDoc) { d.Title = "Replace shaft" },
			"description": func(d *workOrderDoc) { d.Description = "Urgent" },
			"deleted":     func(d *workOrderDoc) { d.Deleted = true },
			"createdAt":   func(d *workOrderDoc) { d.CreatedAt = d.CreatedAt.Add(time.Hour) },
			"updatedAt":   func(d *workOrderDoc) { d.UpdatedAt = nil },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				incoming := base()
				mutate(incoming)
				assert.True(t, shouldUpdate(base(), incoming))
			})
		}
	})
}
