package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase invoice statuses.
const (
	InvoiceUnpaid = "unpaid"
	InvoicePaid   = "paid"
)

// PurchaseInvoice is the supplier's bill for a receiving report.
type PurchaseInvoice struct {
	ID                string
	InvoiceNumber     string
	ReceivingReportID string
	Supplier          string
	Amount            decimal.Decimal
	Status            string
	DueDate           *time.Time
	PaidAt            *time.Time
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
