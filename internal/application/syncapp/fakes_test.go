package syncapp

import (
	"context"
	"time"

	"github.com/cmms/bridge/internal/domain/workorder"
)

// fakeRepo is an in-memory Repository keeping insertion order stable so
// that assertions on batch behavior are deterministic.
type fakeRepo struct {
	stored    map[string]*workorder.WorkOrder
	order     []string
	upserts   int
	findErr   error
	upsertErr error
	markErr   map[string]error
	markCalls []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stored:  make(map[string]*workorder.WorkOrder),
		markErr: make(map[string]error),
	}
}

func (r *fakeRepo) add(w *workorder.WorkOrder) {
	cp := *w
	if _, ok := r.stored[w.OrderNumber]; !ok {
		r.order = append(r.order, w.OrderNumber)
	}
	r.stored[w.OrderNumber] = &cp
}

func (r *fakeRepo) FindUnsynced(ctx context.Context) ([]*workorder.WorkOrder, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*workorder.WorkOrder
	for _, key := range r.order {
		if w := r.stored[key]; !w.IsSynced {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, w *workorder.WorkOrder) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts++
	r.add(w)
	return nil
}

func (r *fakeRepo) MarkSynced(ctx context.Context, orderNumber string, syncedAt time.Time) error {
	r.markCalls = append(r.markCalls, orderNumber)
	if err := r.markErr[orderNumber]; err != nil {
		return err
	}
	w, ok := r.stored[orderNumber]
	if !ok {
		return workorder.ErrNotFound
	}
	w.IsSynced = true
	w.SyncedAt = &syncedAt
	return nil
}

// fakeExchange is an in-memory Exchange capturing every written record.
type fakeExchange struct {
	pending  []workorder.PendingRecord
	listErr  error
	writeErr map[string]error
	writes   []*workorder.ClientRecord
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{writeErr: make(map[string]error)}
}

func (e *fakeExchange) ListPending(ctx context.Context) ([]workorder.PendingRecord, error) {
	if e.listErr != nil {
		return nil, e.listErr
	}
	return e.pending, nil
}

func (e *fakeExchange) Write(ctx context.Context, rec *workorder.ClientRecord) error {
	if err := e.writeErr[rec.OrderNo]; err != nil {
		return err
	}
	cp := *rec
	e.writes = append(e.writes, &cp)
	return nil
}

// fakeRunRepo is an in-memory RunRepository.
type fakeRunRepo struct {
	saved   []*RunRecord
	saveErr error
}

func (r *fakeRunRepo) Save(ctx context.Context, rec *RunRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, rec)
	return nil
}

func (r *fakeRunRepo) Recent(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 || limit > len(r.saved) {
		limit = len(r.saved)
	}
	out := make([]*RunRecord, 0, limit)
	for i := len(r.saved) - 1; i >= len(r.saved)-limit; i-- {
		out = append(out, r.saved[i])
	}
	return out, nil
}
