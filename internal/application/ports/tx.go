// Package ports declares the outbound contracts the use cases depend on.
package ports

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// TxRepos are repositories bound to one transaction.
type TxRepos struct {
	Items            repository.ItemRepository
	Batches          repository.BatchRepository
	Transactions     repository.TransactionRepository
	Adjustments      repository.AdjustmentRepository
	Transfers        repository.TransferRepository
	Patients         repository.PatientRepository
	Sequences        repository.SequenceRepository
	PurchaseRequests repository.PurchaseRequestRepository
	PurchaseOrders   repository.PurchaseOrderRepository
	ReceivingReports repository.ReceivingReportRepository
	Invoices         repository.PurchaseInvoiceRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error nada de lo escrito persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// ItemLocker serialises mutations per item across goroutines (and instances, for distributed lockers).
// Lock acquires every id in sorted order and returns the release func.
type ItemLocker interface {
	Lock(ctx context.Context, itemIDs ...string) (unlock func(), err error)
}
