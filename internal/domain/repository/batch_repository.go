package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// BatchRepository is the persistence port of batches. Batches are never deleted; depleted ones keep quantity 0.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// ListByItem returns every batch of the item, depleted ones included.
	ListByItem(ctx context.Context, itemID string) ([]*entity.Batch, error)
	ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.Batch, error)
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	// ListExpiringBefore returns batches with stock whose expiry date is before t.
	ListExpiringBefore(ctx context.Context, t time.Time) ([]*entity.Batch, error)
}
