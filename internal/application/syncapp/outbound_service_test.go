package syncapp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cmms/bridge/internal/domain/workorder"
)

func newOutboundService(repo *fakeRepo, exchange *fakeExchange, at time.Time) *OutboundSyncService {
	svc := NewOutboundSyncService(repo, exchange, zap.NewNop())
	svc.now = func() time.Time { return at }
	return svc
}

func TestOutboundSyncService_Run(t *testing.T) {
	syncedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("exports unsynced records and marks them synced", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{
			OrderNumber: "WO-2",
			Status:      workorder.StatusCompleted,
			Title:       "Replace bearing",
			Description: "Replace bearing",
			CreatedAt:   time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
		})
		exchange := newFakeExchange()

		svc := newOutboundService(repo, exchange, syncedAt)
		report, err := svc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, DirectionOutbound, report.Direction)
		assert.Equal(t, 1, report.Processed)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 0, report.Failed)

		require.Len(t, exchange.writes, 1)
		rec := exchange.writes[0]
		assert.Equal(t, "WO-2", rec.OrderNo)
		assert.Equal(t, workorder.ClientStatusCompleted, rec.Status)
		require.NotNil(t, rec.IsDone)
		assert.True(t, *rec.IsDone)

		stored := repo.stored["WO-2"]
		assert.True(t, stored.IsSynced)
		require.NotNil(t, stored.SyncedAt)
		assert.Equal(t, syncedAt, *stored.SyncedAt)
	})

	t.Run("second pass writes nothing", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-2", Status: workorder.StatusCompleted})
		exchange := newFakeExchange()

		svc := newOutboundService(repo, exchange, syncedAt)
		_, err := svc.Run(context.Background())
		require.NoError(t, err)

		report, err := svc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, report.Processed)
		assert.Len(t, exchange.writes, 1)
	})

	t.Run("unmappable status is skipped and stays unsynced", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-13", Status: workorder.Status("FOOBAR")})
		exchange := newFakeExchange()

		svc := newOutboundService(repo, exchange, syncedAt)
		report, err := svc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Processed)
		assert.Equal(t, 0, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, 1, report.CountByKind()[workorder.KindUnknownStatus])
		assert.Empty(t, exchange.writes)
		assert.False(t, repo.stored["WO-13"].IsSynced)
	})

	t.Run("failed write stays pending and is retried next pass", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-3", Status: workorder.StatusPending})
		exchange := newFakeExchange()
		exchange.writeErr["WO-3"] = errors.New("disk full")

		svc := newOutboundService(repo, exchange, syncedAt)
		report, err := svc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Failed)
		assert.False(t, repo.stored["WO-3"].IsSynced)
		assert.Empty(t, repo.markCalls)

		delete(exchange.writeErr, "WO-3")
		report, err = svc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Succeeded)
		require.Len(t, exchange.writes, 1)
		assert.True(t, repo.stored["WO-3"].IsSynced)
	})

	t.Run("written but unmarked record is reported and re-exported", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-4", Status: workorder.StatusOnHold})
		exchange := newFakeExchange()
		repo.markErr["WO-4"] = errors.New("write conflict")

		svc := newOutboundService(repo, exchange, syncedAt)
		report, err := svc.Run(context.Background())
		require.NoError(t, err)

		// The output was delivered, so the record is not counted as failed,
		// but the divergence must surface.
		assert.Equal(t, 0, report.Succeeded)
		assert.Equal(t, 0, report.Failed)
		assert.Equal(t, 1, report.CountByKind()[workorder.KindInconsistency])
		assert.Len(t, exchange.writes, 1)
		assert.False(t, repo.stored["WO-4"].IsSynced)

		// Recovery pass: the record is still unsynced, so it is written again.
		// Duplicate delivery is the accepted cost of never losing a record.
		delete(repo.markErr, "WO-4")
		report, err = svc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Succeeded)
		assert.Len(t, exchange.writes, 2)
		assert.True(t, repo.stored["WO-4"].IsSynced)
	})

	t.Run("store loss while marking is fatal", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-5", Status: workorder.StatusPending})
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-6", Status: workorder.StatusPending})
		repo.markErr["WO-5"] = fmt.Errorf("mark synced: %w", workorder.ErrStoreUnavailable)
		exchange := newFakeExchange()

		svc := newOutboundService(repo, exchange, syncedAt)
		report, err := svc.Run(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, workorder.ErrStoreUnavailable)
		assert.Equal(t, 1, report.Processed)
		assert.Equal(t, 1, report.CountByKind()[workorder.KindInconsistency])
		// WO-6 was never reached and stays pending for the next pass.
		assert.Len(t, exchange.writes, 1)
		assert.False(t, repo.stored["WO-6"].IsSynced)
	})

	t.Run("store failure while listing is fatal", func(t *testing.T) {
		repo := newFakeRepo()
		repo.findErr = fmt.Errorf("find unsynced: %w", workorder.ErrStoreUnavailable)
		exchange := newFakeExchange()

		svc := newOutboundService(repo, exchange, syncedAt)
		report, err := svc.Run(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, workorder.ErrStoreUnavailable)
		assert.Equal(t, 0, report.Processed)
	})

	t.Run("canceled context stops the batch", func(t *testing.T) {
		repo := newFakeRepo()
		repo.add(&workorder.WorkOrder{OrderNumber: "WO-7", Status: workorder.StatusPending})
		exchange := newFakeExchange()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := newOutboundService(repo, exchange, syncedAt)
		_, err := svc.Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, exchange.writes)
	})
}
