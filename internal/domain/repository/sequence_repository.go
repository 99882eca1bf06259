package repository

import "context"

// Sequence names used for document numbers.
const (
	SeqPurchaseRequest = "purchase_request"
	SeqPurchaseOrder   = "purchase_order"
	SeqReceivingReport = "receiving_report"
	SeqPurchaseInvoice = "purchase_invoice"
	SeqTransfer        = "transfer"
	SeqAdjustment      = "adjustment"
	SeqPatient         = "patient"
)

// SequenceRepository hands out gap-free per-name counters inside the current transaction.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
