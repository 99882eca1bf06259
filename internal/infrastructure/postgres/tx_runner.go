package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories ata todos los repositorios a q (pool para lecturas, tx dentro de Run).
func Repositories(q Querier) ports.TxRepos {
	return ports.TxRepos{
		Items:            NewItemRepository(q),
		Batches:          NewBatchRepository(q),
		Transactions:     NewTransactionRepository(q),
		Adjustments:      NewAdjustmentRepository(q),
		Transfers:        NewTransferRepository(q),
		Patients:         NewPatientRepository(q),
		Sequences:        NewSequenceRepository(q),
		PurchaseRequests: NewPurchaseRequestRepository(q),
		PurchaseOrders:   NewPurchaseOrderRepository(q),
		ReceivingReports: NewReceivingReportRepository(q),
		Invoices:         NewPurchaseInvoiceRepository(q),
	}
}
