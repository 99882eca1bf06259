package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase request statuses.
const (
	PRDraft     = "draft"
	PRSubmitted = "submitted"
	PRApproved  = "approved"
	PRDenied    = "denied"
)

// PurchaseRequest starts the procurement pipeline.
type PurchaseRequest struct {
	ID           string
	PRNumber     string
	Department   string
	Purpose      string
	Status       string
	DenialReason string
	Lines        []PurchaseRequestLine
	RequestedBy  string
	ApprovedBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseRequestLine is a requested item. ItemID is empty for items not yet in the catalogue.
type PurchaseRequestLine struct {
	ItemID            string
	Description       string
	Unit              string
	Quantity          int64
	EstimatedUnitCost decimal.Decimal
}

// EstimatedTotal sums quantity x estimated unit cost.
func (pr *PurchaseRequest) EstimatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range pr.Lines {
		total = total.Add(l.EstimatedUnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}
