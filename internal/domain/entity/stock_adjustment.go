package entity

import "time"

// Stock adjustment types.
const (
	AdjustmentPhysicalCount = "physical_count"
	AdjustmentDamage        = "damage"
	AdjustmentExpired       = "expired"
	AdjustmentCorrection    = "correction"
	AdjustmentOther         = "other"
)

// StockAdjustment records a manual correction. Difference = QuantityAfter - QuantityBefore.
type StockAdjustment struct {
	ID             string
	Number         string
	ItemID         string
	BatchID        string
	Type           string
	QuantityBefore int64
	QuantityAfter  int64
	Difference     int64
	Reason         string
	PerformedBy    string
	TransactionID  string
	CreatedAt      time.Time
}
