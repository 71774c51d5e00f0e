package syncapp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunRecord is the persisted form of one flow run, kept so that operators
// can audit past passes and spot reconciliation work (inconsistencies).
type RunRecord struct {
	ID          uuid.UUID
	Direction   string
	StartedAt   time.Time
	CompletedAt time.Time
	Processed   int
	Succeeded   int
	Failed      int
	// ErrorCounts is a JSON object of error-kind -> count
	ErrorCounts string
	FatalError  string
}

// RunRepository persists flow run records
type RunRepository interface {
	// Save stores one completed run
	Save(ctx context.Context, rec *RunRecord) error

	// Recent returns the most recent runs, newest first
	Recent(ctx context.Context, limit int) ([]*RunRecord, error)
}

// HistoryService records flow run reports. Recording is best-effort: a
// history failure is logged but never fails the sync run it describes.
type HistoryService struct {
	repo RunRepository
	log  *zap.Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(repo RunRepository, log *zap.Logger) *HistoryService {
	return &HistoryService{repo: repo, log: log.Named("history")}
}

// Record persists one run report
func (s *HistoryService) Record(ctx context.Context, report *Report) {
	rec := &RunRecord{
		ID:          report.RunID,
		Direction:   report.Direction.String(),
		StartedAt:   report.StartedAt,
		CompletedAt: report.CompletedAt,
		Processed:   report.Processed,
		Succeeded:   report.Succeeded,
		Failed:      report.Failed,
	}
	if counts := report.CountByKind(); len(counts) > 0 {
		if raw, err := json.Marshal(counts); err == nil {
			rec.ErrorCounts = string(raw)
		}
	}
	if report.Fatal != nil {
		rec.FatalError = report.Fatal.Error()
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		s.log.Warn("Failed to record sync run",
			zap.String("run_id", report.RunID.String()),
			zap.Error(err),
		)
	}
}

// Recent returns the most recent runs, newest first
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]*RunRecord, error) {
	return s.repo.Recent(ctx, limit)
}
