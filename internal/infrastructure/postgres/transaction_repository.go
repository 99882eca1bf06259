package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo es el libro de movimientos. La tabla rechaza UPDATE y DELETE por trigger.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el repositorio del libro.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const txnColumns = `id, number, sequence, item_id, COALESCE(batch_id, ''), type, quantity,
	beginning_quantity, ending_quantity, performed_by, reference, remarks, created_at`

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	err := row.Scan(&t.ID, &t.Number, &t.Sequence, &t.ItemID, &t.BatchID, &t.Type, &t.Quantity,
		&t.BeginningQuantity, &t.EndingQuantity, &t.PerformedBy, &t.Reference, &t.Remarks, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Append toma el siguiente valor de inventory_txn_seq y deriva el número TXN de él.
func (r *TransactionRepo) Append(ctx context.Context, t *entity.InventoryTransaction) error {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('inventory_txn_seq')`).Scan(&seq); err != nil {
		return wrap("next transaction sequence", err)
	}
	number := inventory.TransactionNumber(seq, t.CreatedAt)
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_transactions (id, number, sequence, item_id, batch_id, type, quantity,
			beginning_quantity, ending_quantity, performed_by, reference, remarks, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, number, seq, t.ItemID, t.BatchID, t.Type, t.Quantity,
		t.BeginningQuantity, t.EndingQuantity, t.PerformedBy, t.Reference, t.Remarks, t.CreatedAt)
	if err != nil {
		return wrap("append transaction", err)
	}
	t.Sequence, t.Number = seq, number
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+txnColumns+` FROM inventory_transactions WHERE id = $1`, id))
	return t, wrap("get transaction", err)
}

func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, int, error) {
	var w where
	if f.ItemID != "" {
		w.add("item_id = ?", f.ItemID)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}
	total, err := w.count(ctx, r.q, "inventory_transactions")
	if err != nil {
		return nil, 0, wrap("count transactions", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+txnColumns+` FROM inventory_transactions`+w.sql()+` ORDER BY sequence DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list transactions", err)
	}
	defer rows.Close()

	var out []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, wrap("scan transaction", err)
		}
		out = append(out, t)
	}
	return out, total, wrap("list transactions", rows.Err())
}

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementa repository.AdjustmentRepository.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el repositorio de ajustes.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_adjustments (id, number, item_id, batch_id, type, quantity_before, quantity_after,
			difference, reason, performed_by, transaction_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.Number, a.ItemID, a.BatchID, a.Type, a.QuantityBefore, a.QuantityAfter,
		a.Difference, a.Reason, a.PerformedBy, a.TransactionID, a.CreatedAt)
	return wrap("insert adjustment", err)
}

func (r *AdjustmentRepo) List(ctx context.Context, f repository.AdjustmentFilter) ([]*entity.StockAdjustment, int, error) {
	var w where
	if f.ItemID != "" {
		w.add("item_id = ?", f.ItemID)
	}
	total, err := w.count(ctx, r.q, "stock_adjustments")
	if err != nil {
		return nil, 0, wrap("count adjustments", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `
		SELECT id, number, item_id, COALESCE(batch_id, ''), type, quantity_before, quantity_after,
			difference, reason, performed_by, transaction_id, created_at
		FROM stock_adjustments`+w.sql()+` ORDER BY created_at DESC, number DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list adjustments", err)
	}
	defer rows.Close()

	var out []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.Number, &a.ItemID, &a.BatchID, &a.Type, &a.QuantityBefore, &a.QuantityAfter,
			&a.Difference, &a.Reason, &a.PerformedBy, &a.TransactionID, &a.CreatedAt); err != nil {
			return nil, 0, wrap("scan adjustment", err)
		}
		out = append(out, &a)
	}
	return out, total, wrap("list adjustments", rows.Err())
}
