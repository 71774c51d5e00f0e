package persistence

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cmms/bridge/internal/domain/workorder"
)

// workOrderDoc is the stored form of a work order
type workOrderDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber string             `bson:"orderNumber"`
	Status      string             `bson:"status"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
	Deleted     bool               `bson:"deleted"`
	IsSynced    bool               `bson:"isSynced"`
	SyncedAt    *time.Time         `bson:"syncedAt,omitempty"`
}

func newWorkOrderDoc(w *workorder.WorkOrder) workOrderDoc {
	return workOrderDoc{
		OrderNumber: w.OrderNumber,
		Status:      w.Status.String(),
		Title:       w.Title,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		Deleted:     w.Deleted,
		IsSynced:    w.IsSynced,
		SyncedAt:    w.SyncedAt,
	}
}

func (d *workOrderDoc) toDomain() *workorder.WorkOrder {
	return &workorder.WorkOrder{
		OrderNumber: d.OrderNumber,
		Status:      workorder.Status(d.Status),
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		Deleted:     d.Deleted,
		IsSynced:    d.IsSynced,
		SyncedAt:    d.SyncedAt,
	}
}

// MongoWorkOrderRepository implements workorder.Repository backed by the
// CMMS MongoDB collection.
type MongoWorkOrderRepository struct {
	coll      *mongo.Collection
	opTimeout time.Duration
}

// NewMongoWorkOrderRepository creates a new MongoWorkOrderRepository
func NewMongoWorkOrderRepository(coll *mongo.Collection, opTimeout time.Duration) *MongoWorkOrderRepository {
	return &MongoWorkOrderRepository{coll: coll, opTimeout: opTimeout}
}

func (r *MongoWorkOrderRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opTimeout)
}

// FindUnsynced returns a snapshot of every work order with isSynced false
func (r *MongoWorkOrderRepository) FindUnsynced(ctx context.Context) ([]*workorder.WorkOrder, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"isSynced": bson.M{"$ne": true}})
	if err != nil {
		return nil, mapStoreErr("finding unsynced work orders", err)
	}

	var docs []workOrderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapStoreErr("reading unsynced work orders", err)
	}

	orders := make([]*workorder.WorkOrder, len(docs))
	for i := range docs {
		orders[i] = docs[i].toDomain()
	}
	return orders, nil
}

// Upsert inserts or updates a work order keyed by orderNumber. When the
// incoming record differs in no relevant field from the stored one the
// update is skipped, so an unchanged inbound record does not reset the
// stored record's sync state.
func (r *MongoWorkOrderRepository) Upsert(ctx context.Context, w *workorder.WorkOrder) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var existing workOrderDoc
	err := r.coll.FindOne(ctx, bson.M{"orderNumber": w.OrderNumber}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		_, err = r.coll.InsertOne(ctx, newWorkOrderDoc(w))
		return mapStoreErr("inserting work order", err)
	}
	if err != nil {
		return mapStoreErr("finding work order", err)
	}

	incoming := newWorkOrderDoc(w)
	if !shouldUpdate(&existing, &incoming) {
		return nil
	}

	// syncedAt is deliberately left untouched; isSynced resets so the
	// updated record crosses outbound again.
	update := bson.M{"$set": bson.M{
		"orderNumber": incoming.OrderNumber,
		"status":      incoming.Status,
		"title":       incoming.Title,
		"description": incoming.Description,
		"createdAt":   incoming.CreatedAt,
		"updatedAt":   incoming.UpdatedAt,
		"deleted":     incoming.Deleted,
		"isSynced":    false,
	}}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": existing.ID}, update)
	return mapStoreErr("updating work order", err)
}

// MarkSynced sets isSynced and syncedAt in a single update
func (r *MongoWorkOrderRepository) MarkSynced(ctx context.Context, orderNumber string, syncedAt time.Time) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"orderNumber": orderNumber},
		bson.M{"$set": bson.M{"isSynced": true, "syncedAt": syncedAt.UTC()}},
	)
	if err != nil {
		return mapStoreErr("marking work order synced", err)
	}
	if res.MatchedCount == 0 {
		return workorder.ErrNotFound
	}
	return nil
}

// shouldUpdate reports whether the incoming record differs from the stored
// one in any relevant field. Sync metadata is ignored and timestamps are
// compared at second precision.
func shouldUpdate(existing, incoming *workOrderDoc) bool {
	if existing.Status != incoming.Status ||
		existing.Title != incoming.Title ||
		existing.Description != incoming.Description ||
		existing.Deleted != incoming.Deleted {
		return true
	}
	if !sameTime(existing.CreatedAt, incoming.CreatedAt) {
		return true
	}
	if !sameTimePtr(existing.UpdatedAt, incoming.UpdatedAt) {
		return true
	}
	return false
}

func sameTime(a, b time.Time) bool {
	return a.UTC().Truncate(time.Second).Equal(b.UTC().Truncate(time.Second))
}

func sameTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return sameTime(*a, *b)
}
