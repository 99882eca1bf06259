package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// WeightedAverageCost = sum(qty * unitCost) / sum(qty) over batches with stock.
func WeightedAverageCost(batches []*entity.Batch) decimal.Decimal {
	var qty int64
	value := decimal.Zero
	for _, b := range batches {
		if b.Quantity <= 0 {
			continue
		}
		qty += b.Quantity
		value = value.Add(b.UnitCost.Mul(decimal.NewFromInt(b.Quantity)))
	}
	if qty == 0 {
		return decimal.Zero
	}
	return value.Div(decimal.NewFromInt(qty)).Round(2)
}

// StockValue = sum(qty * unitCost) over batches with stock.
func StockValue(batches []*entity.Batch) decimal.Decimal {
	value := decimal.Zero
	for _, b := range batches {
		if b.Quantity > 0 {
			value = value.Add(b.UnitCost.Mul(decimal.NewFromInt(b.Quantity)))
		}
	}
	return value
}
