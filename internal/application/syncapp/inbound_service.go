package syncapp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cmms/bridge/internal/domain/workorder"
)

// InboundSyncService moves pending client records into the CMMS store:
// list pending input units, translate each independently, upsert by order
// number. Per-record translation failures are collected and the batch
// continues; a store failure aborts the remaining batch.
type InboundSyncService struct {
	repo     workorder.Repository
	exchange workorder.Exchange
	log      *zap.Logger
}

// NewInboundSyncService creates a new InboundSyncService
func NewInboundSyncService(repo workorder.Repository, exchange workorder.Exchange, log *zap.Logger) *InboundSyncService {
	return &InboundSyncService{
		repo:     repo,
		exchange: exchange,
		log:      log.Named("inbound"),
	}
}

// Run performs one inbound pass. The returned report is always non-nil;
// when a fatal repository failure aborts the batch it is returned as the
// error and recorded on the report, with already-persisted records staying
// committed.
func (s *InboundSyncService) Run(ctx context.Context) (*Report, error) {
	report := newReport(DirectionInbound, time.Now().UTC())
	defer func() {
		report.CompletedAt = time.Now().UTC()
	}()

	pending, err := s.exchange.ListPending(ctx)
	if err != nil {
		report.Fatal = fmt.Errorf("listing pending records: %w", err)
		return report, report.Fatal
	}
	s.log.Info("Starting inbound pass",
		zap.String("run_id", report.RunID.String()),
		zap.Int("pending", len(pending)),
	)

	for _, item := range pending {
		select {
		case <-ctx.Done():
			report.Fatal = ctx.Err()
			return report, report.Fatal
		default:
		}

		report.Processed++

		if item.Err != nil {
			report.addMalformed(item.Source, item.Err)
			s.log.Warn("Skipping undecodable input unit",
				zap.String("source", item.Source),
				zap.Error(item.Err),
			)
			continue
		}

		translated, err := workorder.FromClient(item.Record)
		if err != nil {
			report.addError(item.Record.OrderNo, item.Source, err)
			s.log.Warn("Translation failed",
				zap.String("source", item.Source),
				zap.String("order_number", item.Record.OrderNo),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.Upsert(ctx, translated); err != nil {
			// Repository failures are fatal for the remainder of the run;
			// records already upserted stay committed.
			report.addError(translated.OrderNumber, item.Source, err)
			report.Fatal = fmt.Errorf("upserting order %s: %w", translated.OrderNumber, err)
			s.log.Error("Store failure, aborting inbound pass",
				zap.String("order_number", translated.OrderNumber),
				zap.Error(err),
			)
			return report, report.Fatal
		}

		report.Succeeded++
		s.log.Debug("Upserted work order",
			zap.String("order_number", translated.OrderNumber),
			zap.String("status", translated.Status.String()),
		)
	}

	s.log.Info("Inbound pass finished",
		zap.String("run_id", report.RunID.String()),
		zap.Int("processed", report.Processed),
		zap.Int("persisted", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
