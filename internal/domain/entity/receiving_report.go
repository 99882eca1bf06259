package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseReceivingReport documents goods received against a purchase order.
type WarehouseReceivingReport struct {
	ID              string
	WRRNumber       string
	PurchaseOrderID string
	Supplier        string
	ReceivedBy      string
	ReceivedDate    time.Time
	Lines           []ReceivingLine
	CreatedAt       time.Time
}

// ReceivingLine becomes one batch when the report is posted.
type ReceivingLine struct {
	ItemID     string
	BatchID    string // set once the batch is created
	LotNumber  string
	Quantity   int64
	ExpiryDate time.Time
	Location   string
	UnitCost   decimal.Decimal
}

// TotalAmount sums quantity x unit cost.
func (w *WarehouseReceivingReport) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range w.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}
