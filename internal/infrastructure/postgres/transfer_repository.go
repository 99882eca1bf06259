package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo guarda transferencias en transfers + transfer_lines (asignaciones por lote en JSONB).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el repositorio de transferencias.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

type allocationJSON struct {
	BatchID  string `json:"batch_id"`
	Quantity int64  `json:"quantity"`
}

func toAllocationJSON(in []entity.BatchAllocation) []allocationJSON {
	out := make([]allocationJSON, 0, len(in))
	for _, a := range in {
		out = append(out, allocationJSON{BatchID: a.BatchID, Quantity: a.Quantity})
	}
	return out
}

const transferColumns = `id, number, destination_unit_id, destination_name, status, remarks,
	requested_by, approved_by, issued_by, received_by, created_at, approved_at, issued_at, received_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.TransferOut, error) {
	var t entity.TransferOut
	err := row.Scan(&t.ID, &t.Number, &t.DestinationUnitID, &t.DestinationName, &t.Status, &t.Remarks,
		&t.RequestedBy, &t.ApprovedBy, &t.IssuedBy, &t.ReceivedBy,
		&t.CreatedAt, &t.ApprovedAt, &t.IssuedAt, &t.ReceivedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRepo) Create(ctx context.Context, t *entity.TransferOut) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.Number, t.DestinationUnitID, t.DestinationName, t.Status, t.Remarks,
		t.RequestedBy, t.ApprovedBy, t.IssuedBy, t.ReceivedBy,
		t.CreatedAt, t.ApprovedAt, t.IssuedAt, t.ReceivedAt, t.UpdatedAt)
	if err != nil {
		return wrap("insert transfer", err)
	}
	for i, l := range t.Lines {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO transfer_lines (transfer_id, line_no, item_id, quantity, allocations)
			VALUES ($1, $2, $3, $4, $5)`,
			t.ID, i+1, l.ItemID, l.Quantity, toAllocationJSON(l.Allocations)); err != nil {
			return wrap("insert transfer line", err)
		}
	}
	return nil
}

func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.TransferOut, error) {
	return r.get(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetForUpdate bloquea la transferencia para serializar aprobaciones y despachos concurrentes.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.TransferOut, error) {
	return r.get(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransferRepo) get(ctx context.Context, sql, id string) (*entity.TransferOut, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, wrap("get transfer", err)
	}
	if err := r.loadLines(ctx, []*entity.TransferOut{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransferRepo) Update(ctx context.Context, t *entity.TransferOut) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE transfers SET status = $2, remarks = $3, approved_by = $4, issued_by = $5, received_by = $6,
			approved_at = $7, issued_at = $8, received_at = $9, updated_at = $10
		WHERE id = $1`,
		t.ID, t.Status, t.Remarks, t.ApprovedBy, t.IssuedBy, t.ReceivedBy,
		t.ApprovedAt, t.IssuedAt, t.ReceivedAt, t.UpdatedAt)
	if err := mustAffect(tag, err, "update transfer"); err != nil {
		return err
	}
	for i, l := range t.Lines {
		if _, err := r.q.Exec(ctx, `
			UPDATE transfer_lines SET allocations = $3 WHERE transfer_id = $1 AND line_no = $2`,
			t.ID, i+1, toAllocationJSON(l.Allocations)); err != nil {
			return wrap("update transfer line", err)
		}
	}
	return nil
}

func (r *TransferRepo) List(ctx context.Context, f repository.TransferFilter) ([]*entity.TransferOut, int, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	total, err := w.count(ctx, r.q, "transfers")
	if err != nil {
		return nil, 0, wrap("count transfers", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+transferColumns+` FROM transfers`+w.sql()+` ORDER BY created_at DESC, number DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list transfers", err)
	}
	var out []*entity.TransferOut
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			rows.Close()
			return nil, 0, wrap("scan transfer", err)
		}
		out = append(out, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, wrap("list transfers", err)
	}
	if err := r.loadLines(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// loadLines completa las líneas de cada transferencia en una sola consulta.
func (r *TransferRepo) loadLines(ctx context.Context, ts []*entity.TransferOut) error {
	if len(ts) == 0 {
		return nil
	}
	byID := make(map[string]*entity.TransferOut, len(ts))
	ids := make([]string, 0, len(ts))
	for _, t := range ts {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT transfer_id, item_id, quantity, allocations
		FROM transfer_lines WHERE transfer_id = ANY($1) ORDER BY transfer_id, line_no`, ids)
	if err != nil {
		return wrap("list transfer lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			transferID string
			line       entity.TransferLine
			allocs     []allocationJSON
		)
		if err := rows.Scan(&transferID, &line.ItemID, &line.Quantity, &allocs); err != nil {
			return wrap("scan transfer line", err)
		}
		for _, a := range allocs {
			line.Allocations = append(line.Allocations, entity.BatchAllocation{BatchID: a.BatchID, Quantity: a.Quantity})
		}
		t := byID[transferID]
		t.Lines = append(t.Lines, line)
	}
	return wrap("list transfer lines", rows.Err())
}
