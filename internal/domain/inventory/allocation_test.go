package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
)

func TestAllocateFEFO_EarliestExpiryFirst(t *testing.T) {
	batches := []*entity.Batch{
		{ID: "B2", Quantity: 50, ExpiryDate: day(2025, 6, 1), ReceivedDate: day(2024, 1, 1)},
		{ID: "B1", Quantity: 100, ExpiryDate: day(2025, 1, 1), ReceivedDate: day(2024, 2, 1)},
	}

	allocs, err := inventory.AllocateFEFO("item-1", batches, 120)
	require.NoError(t, err)
	assert.Equal(t, []entity.BatchAllocation{
		{BatchID: "B1", Quantity: 100},
		{BatchID: "B2", Quantity: 20},
	}, allocs)
	assert.Equal(t, int64(100), batches[1].Quantity, "allocation must not mutate the batches")
}

func TestAllocateFEFO_TieBrokenByReceivedDateThenID(t *testing.T) {
	exp := day(2025, 6, 1)
	batches := []*entity.Batch{
		{ID: "c", Quantity: 10, ExpiryDate: exp, ReceivedDate: day(2024, 5, 1)},
		{ID: "b", Quantity: 10, ExpiryDate: exp, ReceivedDate: day(2024, 3, 1)},
		{ID: "a", Quantity: 10, ExpiryDate: exp, ReceivedDate: day(2024, 5, 1)},
	}

	allocs, err := inventory.AllocateFEFO("item-1", batches, 25)
	require.NoError(t, err)
	assert.Equal(t, []entity.BatchAllocation{
		{BatchID: "b", Quantity: 10},
		{BatchID: "a", Quantity: 10},
		{BatchID: "c", Quantity: 5},
	}, allocs)
}

func TestAllocateFEFO_SkipsEmptyBatches(t *testing.T) {
	batches := []*entity.Batch{
		{ID: "empty", Quantity: 0, ExpiryDate: day(2024, 1, 1)},
		{ID: "full", Quantity: 10, ExpiryDate: day(2026, 1, 1)},
	}
	allocs, err := inventory.AllocateFEFO("item-1", batches, 4)
	require.NoError(t, err)
	assert.Equal(t, []entity.BatchAllocation{{BatchID: "full", Quantity: 4}}, allocs)
}

func TestAllocateFEFO_Insufficient(t *testing.T) {
	batches := []*entity.Batch{
		{ID: "B1", Quantity: 100, ExpiryDate: day(2025, 1, 1)},
		{ID: "B2", Quantity: 50, ExpiryDate: day(2025, 6, 1)},
	}

	allocs, err := inventory.AllocateFEFO("item-1", batches, 500)
	assert.Nil(t, allocs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, int64(500), short.Requested)
	assert.Equal(t, int64(150), short.Available)
	assert.Equal(t, int64(350), short.Shortfall())
}

func TestAllocateFEFO_NonPositiveQuantity(t *testing.T) {
	for _, q := range []int64{0, -3} {
		_, err := inventory.AllocateFEFO("item-1", nil, q)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestSortFEFO_DoesNotReorderInput(t *testing.T) {
	batches := []*entity.Batch{
		{ID: "late", Quantity: 1, ExpiryDate: day(2026, 1, 1)},
		{ID: "early", Quantity: 1, ExpiryDate: day(2025, 1, 1)},
	}
	sorted := inventory.SortFEFO(batches)
	assert.Equal(t, "early", sorted[0].ID)
	assert.Equal(t, "late", batches[0].ID)
}
