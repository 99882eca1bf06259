package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// AdjustmentRepository stores stock adjustments.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.StockAdjustment) error
	List(ctx context.Context, f AdjustmentFilter) ([]*entity.StockAdjustment, int, error)
}
