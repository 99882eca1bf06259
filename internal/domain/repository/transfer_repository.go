package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// TransferRepository stores outgoing transfers with their lines.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.TransferOut) error
	GetByID(ctx context.Context, id string) (*entity.TransferOut, error)
	// GetForUpdate locks the transfer row until the transaction ends.
	GetForUpdate(ctx context.Context, id string) (*entity.TransferOut, error)
	// Update writes status, actors, timestamps and line allocations.
	Update(ctx context.Context, t *entity.TransferOut) error
	List(ctx context.Context, f TransferFilter) ([]*entity.TransferOut, int, error)
}
