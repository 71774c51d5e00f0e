// Package exchange implements the client-side boundary: work orders arrive
// as JSON files in an inbound directory and leave as JSON files in an
// outbound directory.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cmms/bridge/internal/domain/workorder"
)

// FileExchange implements workorder.Exchange on top of two directories.
// Writes are atomic: the payload goes to a temp file in the target
// directory and is renamed into place, so a consumer never observes a
// partially-written record.
type FileExchange struct {
	inboundDir  string
	outboundDir string
	log         *zap.Logger
}

// NewFileExchange creates a new FileExchange
func NewFileExchange(inboundDir, outboundDir string, log *zap.Logger) *FileExchange {
	return &FileExchange{
		inboundDir:  inboundDir,
		outboundDir: outboundDir,
		log:         log.Named("exchange"),
	}
}

// ListPending returns one PendingRecord per JSON file in the inbound
// directory. Files that cannot be read or decoded are carried with their
// error so the flow can count them; they never abort the listing.
func (e *FileExchange) ListPending(ctx context.Context) ([]workorder.PendingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(e.inboundDir)
	if err != nil {
		return nil, fmt.Errorf("reading inbound directory %q: %w: %v", e.inboundDir, workorder.ErrExchangeUnavailable, err)
	}

	var pending []workorder.PendingRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		pending = append(pending, e.readPending(entry.Name()))
	}
	return pending, nil
}

func (e *FileExchange) readPending(name string) workorder.PendingRecord {
	item := workorder.PendingRecord{Source: name}

	raw, err := os.ReadFile(filepath.Join(e.inboundDir, name))
	if err != nil {
		item.Err = fmt.Errorf("reading %q: %w", name, err)
		return item
	}

	var rec workorder.ClientRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		item.Err = fmt.Errorf("decoding %q: %w", name, err)
		return item
	}

	item.Record = &rec
	return item
}

// Write persists one record as <orderNo>.json in the outbound directory.
// It either fully succeeds or fails leaving no artifact behind.
func (e *FileExchange) Write(ctx context.Context, rec *workorder.ClientRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(e.outboundDir, 0o755); err != nil {
		return fmt.Errorf("creating outbound directory %q: %w: %v", e.outboundDir, workorder.ErrExchangeUnavailable, err)
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding order %s: %w", rec.OrderNo, err)
	}
	payload = append(payload, '\n')

	target := filepath.Join(e.outboundDir, rec.OrderNo+".json")
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing order %s: %w", rec.OrderNo, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publishing order %s: %w", rec.OrderNo, err)
	}

	e.log.Debug("Wrote outbound record",
		zap.String("order_number", rec.OrderNo),
		zap.String("path", target),
	)
	return nil
}
