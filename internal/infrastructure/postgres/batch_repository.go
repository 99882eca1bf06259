package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementa repository.BatchRepository.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el repositorio de lotes.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, item_id, lot_number, quantity, initial_quantity, expiry_date, received_date,
	supplier, wrr_number, location, unit_cost, created_at, updated_at`

// fefoOrder es el orden de consumo: vence primero, luego el más antiguo.
const fefoOrder = ` ORDER BY expiry_date, received_date, id`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(&b.ID, &b.ItemID, &b.LotNumber, &b.Quantity, &b.InitialQuantity, &b.ExpiryDate,
		&b.ReceivedDate, &b.Supplier, &b.WRRNumber, &b.Location, &b.UnitCost, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepo) queryBatches(ctx context.Context, op, sql string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var out []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, b)
	}
	return out, wrap(op, rows.Err())
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO batches (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.ItemID, b.LotNumber, b.Quantity, b.InitialQuantity, b.ExpiryDate, b.ReceivedDate,
		b.Supplier, b.WRRNumber, b.Location, b.UnitCost, b.CreatedAt, b.UpdatedAt)
	return wrap("insert batch", err)
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	return b, wrap("get batch", err)
}

func (r *BatchRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	return r.queryBatches(ctx, "list batches",
		`SELECT `+batchColumns+` FROM batches WHERE item_id = $1 ORDER BY received_date, id`, itemID)
}

func (r *BatchRepo) ListByItems(ctx context.Context, itemIDs []string) (map[string][]*entity.Batch, error) {
	out := make(map[string][]*entity.Batch, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	list, err := r.queryBatches(ctx, "list batches",
		`SELECT `+batchColumns+` FROM batches WHERE item_id = ANY($1) ORDER BY received_date, id`, itemIDs)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		out[b.ItemID] = append(out[b.ItemID], b)
	}
	return out, nil
}

func (r *BatchRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	return mustAffect(tag, err, "update batch quantity")
}

// ListExpiringBefore compara fechas de calendario: un lote vence a la medianoche de su fecha.
func (r *BatchRepo) ListExpiringBefore(ctx context.Context, t time.Time) ([]*entity.Batch, error) {
	return r.queryBatches(ctx, "list expiring batches",
		`SELECT `+batchColumns+` FROM batches WHERE quantity > 0 AND expiry_date < $1`+fefoOrder,
		expiryCutoff(t))
}

// expiryCutoff devuelve la primera fecha cuya medianoche no es anterior a t.
func expiryCutoff(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
