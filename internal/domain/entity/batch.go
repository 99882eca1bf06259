package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch is a received lot of an item. It belongs to exactly one item (ItemID).
type Batch struct {
	ID              string
	ItemID          string
	LotNumber       string
	Quantity        int64 // remaining, never negative
	InitialQuantity int64
	ExpiryDate      time.Time
	ReceivedDate    time.Time
	Supplier        string
	WRRNumber       string // warehouse receiving report reference, optional
	Location        string
	UnitCost        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
