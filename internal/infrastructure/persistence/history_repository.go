package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cmms/bridge/internal/application/syncapp"
)

// SyncRunModel is the GORM model for persisted sync runs
type SyncRunModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Direction   string    `gorm:"size:16;index"`
	StartedAt   time.Time `gorm:"index"`
	CompletedAt time.Time
	Processed   int
	Succeeded   int
	Failed      int
	ErrorCounts string `gorm:"type:text"`
	FatalError  string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName returns the table name for SyncRunModel
func (SyncRunModel) TableName() string {
	return "sync_runs"
}

func (m *SyncRunModel) toDomain() (*syncapp.RunRecord, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing run id %q: %w", m.ID, err)
	}
	return &syncapp.RunRecord{
		ID:          id,
		Direction:   m.Direction,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		Processed:   m.Processed,
		Succeeded:   m.Succeeded,
		Failed:      m.Failed,
		ErrorCounts: m.ErrorCounts,
		FatalError:  m.FatalError,
	}, nil
}

// OpenHistoryDB opens (creating if needed) the embedded sync-run history
// database and migrates its schema.
func OpenHistoryDB(path string, logger gormlogger.Interface) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 logger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.AutoMigrate(&SyncRunModel{}); err != nil {
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}
	return db, nil
}

// GormSyncRunRepository implements syncapp.RunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Save stores one completed run
func (r *GormSyncRunRepository) Save(ctx context.Context, rec *syncapp.RunRecord) error {
	model := SyncRunModel{
		ID:          rec.ID.String(),
		Direction:   rec.Direction,
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
		Processed:   rec.Processed,
		Succeeded:   rec.Succeeded,
		Failed:      rec.Failed,
		ErrorCounts: rec.ErrorCounts,
		FatalError:  rec.FatalError,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Recent returns the most recent runs, newest first
func (r *GormSyncRunRepository) Recent(ctx context.Context, limit int) ([]*syncapp.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []SyncRunModel
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*syncapp.RunRecord, 0, len(models))
	for i := range models {
		rec, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
