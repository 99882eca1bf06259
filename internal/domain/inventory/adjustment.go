package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// LocationTransferLabel is shown for adjustment rows whose type is outside the fixed set.
const LocationTransferLabel = "Location Transfer"

var adjustmentLabels = map[string]string{
	entity.AdjustmentPhysicalCount: "Physical Count",
	entity.AdjustmentDamage:        "Damage",
	entity.AdjustmentExpired:       "Expired",
	entity.AdjustmentCorrection:    "Correction",
	entity.AdjustmentOther:         "Other",
}

// IsAdjustmentType reports whether t belongs to the fixed adjustment set.
func IsAdjustmentType(t string) bool {
	_, ok := adjustmentLabels[t]
	return ok
}

// DisplayAdjustmentType is a presentation rule only: unknown types read as a location transfer.
func DisplayAdjustmentType(t string) string {
	if label, ok := adjustmentLabels[t]; ok {
		return label
	}
	return LocationTransferLabel
}

// AdjustmentInput is what a caller may supply. There is deliberately no Difference field.
type AdjustmentInput struct {
	ItemID        string
	BatchID       string
	Type          string
	QuantityAfter int64
	Reason        string
	PerformedBy   string
}

// NewStockAdjustment validates the input against the quantity read under lock and computes Difference.
func NewStockAdjustment(in AdjustmentInput, quantityBefore int64, at time.Time) (*entity.StockAdjustment, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "is required")
	}
	if !IsAdjustmentType(in.Type) {
		return nil, domain.NewValidationError("type", "must be one of physical_count, damage, expired, correction, other")
	}
	if in.QuantityAfter < 0 {
		return nil, domain.NewQuantityError("quantity_after must not be negative")
	}
	if in.QuantityAfter == quantityBefore {
		return nil, domain.NewValidationError("quantity_after", "equals the current quantity; nothing to adjust")
	}
	return &entity.StockAdjustment{
		ItemID:         in.ItemID,
		BatchID:        in.BatchID,
		Type:           in.Type,
		QuantityBefore: quantityBefore,
		QuantityAfter:  in.QuantityAfter,
		Difference:     in.QuantityAfter - quantityBefore,
		Reason:         reason,
		PerformedBy:    in.PerformedBy,
		CreatedAt:      at,
	}, nil
}
