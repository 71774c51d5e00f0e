package syncapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cmms/bridge/internal/domain/workorder"
)

// OutboundSyncService pushes unsynced work orders to the client exchange:
// snapshot the unsynced set, translate each record independently, write it
// as an output unit, and only after the write is confirmed mark the source
// record synced. The write-then-mark ordering is the at-least-once
// guarantee: a crash between the two steps causes at most a duplicate
// delivery on the next pass, never data loss.
type OutboundSyncService struct {
	repo     workorder.Repository
	exchange workorder.Exchange
	log      *zap.Logger
	now      func() time.Time
}

// NewOutboundSyncService creates a new OutboundSyncService
func NewOutboundSyncService(repo workorder.Repository, exchange workorder.Exchange, log *zap.Logger) *OutboundSyncService {
	return &OutboundSyncService{
		repo:     repo,
		exchange: exchange,
		log:      log.Named("outbound"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one outbound pass. Records that fail validation, translation
// or the write stay unsynced and are retried on the next pass; a record
// whose write succeeded but whose mark-synced update failed is reported as
// an inconsistency, never silently dropped.
func (s *OutboundSyncService) Run(ctx context.Context) (*Report, error) {
	report := newReport(DirectionOutbound, s.now())
	defer func() {
		report.CompletedAt = s.now()
	}()

	unsynced, err := s.repo.FindUnsynced(ctx)
	if err != nil {
		report.Fatal = fmt.Errorf("finding unsynced work orders: %w", err)
		return report, report.Fatal
	}
	s.log.Info("Starting outbound pass",
		zap.String("run_id", report.RunID.String()),
		zap.Int("unsynced", len(unsynced)),
	)

	for _, w := range unsynced {
		select {
		case <-ctx.Done():
			report.Fatal = ctx.Err()
			return report, report.Fatal
		default:
		}

		report.Processed++

		rec, err := workorder.ToClient(w)
		if err != nil {
			// Fails closed: invalid or unmappable records are skipped and
			// reported, no partial output is written.
			report.addError(w.OrderNumber, "", err)
			s.log.Warn("Skipping work order",
				zap.String("order_number", w.OrderNumber),
				zap.Error(err),
			)
			continue
		}

		if err := s.exchange.Write(ctx, rec); err != nil {
			// The record stays unsynced and is retried on the next pass.
			report.addError(w.OrderNumber, "", err)
			s.log.Warn("Write failed, work order stays pending",
				zap.String("order_number", w.OrderNumber),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.MarkSynced(ctx, w.OrderNumber, s.now()); err != nil {
			inconsistency := &workorder.InconsistencyError{OrderNumber: w.OrderNumber, Cause: err}
			report.addInconsistency(w.OrderNumber, inconsistency)
			s.log.Error("Output written but source not marked synced, reconciliation required",
				zap.String("order_number", w.OrderNumber),
				zap.Error(err),
			)
			if errors.Is(err, workorder.ErrStoreUnavailable) {
				report.Fatal = fmt.Errorf("marking order %s synced: %w", w.OrderNumber, err)
				return report, report.Fatal
			}
			continue
		}

		report.Succeeded++
		s.log.Debug("Exported work order",
			zap.String("order_number", w.OrderNumber),
			zap.String("status", w.Status.String()),
		)
	}

	s.log.Info("Outbound pass finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("processed", report.Processed),
		zap.Int("written", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
