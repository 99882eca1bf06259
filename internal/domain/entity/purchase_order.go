package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order statuses.
const (
	POPending   = "pending"
	POApproved  = "approved"
	PODelivered = "delivered"
	POCancelled = "cancelled"
)

// PurchaseOrder is issued to a supplier from an approved purchase request.
type PurchaseOrder struct {
	ID                string
	PONumber          string
	PurchaseRequestID string
	Supplier          string
	Status            string
	Lines             []PurchaseOrderLine
	CreatedBy         string
	ApprovedBy        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PurchaseOrderLine is an ordered catalogue item.
type PurchaseOrderLine struct {
	ItemID   string
	Quantity int64
	UnitCost decimal.Decimal
}

// TotalAmount sums quantity x unit cost.
func (po *PurchaseOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}
