package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// ItemRepository is the persistence port of the catalogue. Items are never deleted.
type ItemRepository interface {
	// Create returns domain.ErrDuplicate when the code is taken.
	Create(ctx context.Context, item *entity.InventoryItem) error
	// GetByID returns domain.ErrNotFound when missing.
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate reads the item and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update writes metadata only; quantities are untouched.
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateQuantities(ctx context.Context, id string, total, available int64) error
	List(ctx context.Context, f ItemFilter) ([]*entity.InventoryItem, int, error)
}
