package inventory

import (
	"sort"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// SortFEFO returns the batches with stock ordered first-expiry-first-out,
// ties broken by received date (FIFO) and then by id. The input is not modified.
func SortFEFO(batches []*entity.Batch) []*entity.Batch {
	eligible := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.Quantity > 0 {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if !a.ExpiryDate.Equal(b.ExpiryDate) {
			return a.ExpiryDate.Before(b.ExpiryDate)
		}
		if !a.ReceivedDate.Equal(b.ReceivedDate) {
			return a.ReceivedDate.Before(b.ReceivedDate)
		}
		return a.ID < b.ID
	})
	return eligible
}

// AllocateFEFO greedily draws q units from the item's batches in FEFO order.
// Returns *domain.InsufficientStockError when the batches cannot cover q; nothing is drawn then.
func AllocateFEFO(itemID string, batches []*entity.Batch, q int64) ([]entity.BatchAllocation, error) {
	if q <= 0 {
		return nil, domain.NewQuantityError("requested quantity must be positive, got %d", q)
	}
	sorted := SortFEFO(batches)

	var available int64
	for _, b := range sorted {
		available += b.Quantity
	}
	if available < q {
		return nil, &domain.InsufficientStockError{ItemID: itemID, Requested: q, Available: available}
	}

	remaining := q
	allocations := make([]entity.BatchAllocation, 0, 2)
	for _, b := range sorted {
		if remaining == 0 {
			break
		}
		take := min(remaining, b.Quantity)
		allocations = append(allocations, entity.BatchAllocation{BatchID: b.ID, Quantity: take})
		remaining -= take
	}
	return allocations, nil
}
