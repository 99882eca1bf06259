package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
)

var manila = time.FixedZone("PST", 8*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, manila)

	assert.Equal(t, 1, inventory.DaysUntilExpiry(day(2025, 3, 2), now), "partial day rounds up")
	assert.Equal(t, 30, inventory.DaysUntilExpiry(day(2025, 3, 31), now))
	assert.Equal(t, 0, inventory.DaysUntilExpiry(day(2025, 3, 1), now), "midnight already passed today")
	assert.Equal(t, -1, inventory.DaysUntilExpiry(day(2025, 2, 28), now))
}

func TestDeriveItemStatus_Precedence(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, manila)
	expired := inventory.BatchExpiry{Quantity: 10, ExpiryDate: day(2025, 2, 1)}
	soon := inventory.BatchExpiry{Quantity: 10, ExpiryDate: day(2025, 5, 1)}
	far := inventory.BatchExpiry{Quantity: 10, ExpiryDate: day(2027, 1, 1)}

	tests := []struct {
		name      string
		available int64
		reorder   int64
		batches   []inventory.BatchExpiry
		want      string
	}{
		{"zero available wins over everything", 0, 10, []inventory.BatchExpiry{expired}, entity.StatusOutOfStock},
		{"expired batch with stock", 50, 10, []inventory.BatchExpiry{far, expired}, entity.StatusExpired},
		{"expired batch without stock is ignored", 50, 10, []inventory.BatchExpiry{far, {Quantity: 0, ExpiryDate: day(2025, 2, 1)}}, entity.StatusActive},
		{"expiring within the warning window", 50, 10, []inventory.BatchExpiry{far, soon}, entity.StatusExpiringSoon},
		{"expiring beats low stock", 5, 10, []inventory.BatchExpiry{soon}, entity.StatusExpiringSoon},
		{"at reorder level is low stock", 10, 10, []inventory.BatchExpiry{far}, entity.StatusLowStock},
		{"above reorder level", 11, 10, []inventory.BatchExpiry{far}, entity.StatusActive},
		{"no batches", 11, 10, nil, entity.StatusActive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.DeriveItemStatus(tc.available, tc.reorder, tc.batches, now))
		})
	}
}

func TestDeriveItemStatus_WarningWindowBoundary(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, manila)
	edge := now.AddDate(0, 0, inventory.ExpiryWarningDays)
	past := edge.AddDate(0, 0, 1)

	assert.Equal(t, entity.StatusExpiringSoon,
		inventory.DeriveItemStatus(100, 10, []inventory.BatchExpiry{{Quantity: 1, ExpiryDate: edge}}, now))
	assert.Equal(t, entity.StatusActive,
		inventory.DeriveItemStatus(100, 10, []inventory.BatchExpiry{{Quantity: 1, ExpiryDate: past}}, now))
}

func TestExpiry_MidnightOfExpiryDateIsExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, manila)
	exp := day(2025, 3, 1)

	assert.True(t, inventory.IsExpired(exp, now))
	assert.Equal(t, 0, inventory.DaysUntilExpiry(exp, now))
	assert.False(t, inventory.IsExpiringSoon(exp, now))
	assert.Equal(t, entity.StatusExpired,
		inventory.DeriveItemStatus(100, 10, []inventory.BatchExpiry{{Quantity: 1, ExpiryDate: exp}}, now))
	assert.Equal(t, entity.StatusExpired, inventory.DeriveBatchStatus(&entity.Batch{Quantity: 1, ExpiryDate: exp}, now))

	// Un instante antes todavía está por vencer.
	before := now.Add(-time.Nanosecond)
	assert.False(t, inventory.IsExpired(exp, before))
	assert.True(t, inventory.IsExpiringSoon(exp, before))
}

func TestDeriveBatchStatus(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, manila)

	assert.Equal(t, entity.StatusDepleted, inventory.DeriveBatchStatus(&entity.Batch{Quantity: 0, ExpiryDate: day(2024, 1, 1)}, now))
	assert.Equal(t, entity.StatusExpired, inventory.DeriveBatchStatus(&entity.Batch{Quantity: 3, ExpiryDate: day(2024, 1, 1)}, now))
	assert.Equal(t, entity.StatusExpiringSoon, inventory.DeriveBatchStatus(&entity.Batch{Quantity: 3, ExpiryDate: day(2025, 4, 1)}, now))
	assert.Equal(t, entity.StatusActive, inventory.DeriveBatchStatus(&entity.Batch{Quantity: 3, ExpiryDate: day(2026, 4, 1)}, now))
}

func TestNearestExpiry_SkipsEmptyBatches(t *testing.T) {
	batches := []*entity.Batch{
		{ID: "a", Quantity: 0, ExpiryDate: day(2025, 1, 1)},
		{ID: "b", Quantity: 5, ExpiryDate: day(2025, 9, 1)},
		{ID: "c", Quantity: 5, ExpiryDate: day(2025, 6, 1)},
	}
	got := inventory.NearestExpiry(batches)
	if assert.NotNil(t, got) {
		assert.True(t, got.Equal(day(2025, 6, 1)))
	}
	assert.Nil(t, inventory.NearestExpiry(nil))
}
