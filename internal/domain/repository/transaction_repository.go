package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// TransactionRepository is the append-only ledger. There is no update or delete.
type TransactionRepository interface {
	// Append assigns Sequence and Number and stores the entry.
	Append(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)
	// List returns entries newest first with the total count for the filter.
	List(ctx context.Context, f TransactionFilter) ([]*entity.InventoryTransaction, int, error)
}
