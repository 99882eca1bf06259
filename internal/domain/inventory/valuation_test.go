package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	batches := []*entity.Batch{
		{Quantity: 100, UnitCost: decimal.RequireFromString("2.50")},
		{Quantity: 50, UnitCost: decimal.RequireFromString("4.00")},
		{Quantity: 0, UnitCost: decimal.RequireFromString("99.00")},
	}
	assert.True(t, inventory.WeightedAverageCost(batches).Equal(decimal.RequireFromString("3.00")))
	assert.True(t, inventory.StockValue(batches).Equal(decimal.RequireFromString("450")))
	assert.True(t, inventory.WeightedAverageCost(nil).IsZero())
}
