package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa repository.ItemRepository.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el repositorio de ítems sobre un pool o una tx.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, name, category, sub_type, unit, description,
	total_quantity, available_quantity, reorder_level, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Category, &it.SubType, &it.Unit, &it.Description,
		&it.TotalQuantity, &it.AvailableQuantity, &it.ReorderLevel, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		it.ID, it.Code, it.Name, it.Category, it.SubType, it.Unit, it.Description,
		it.TotalQuantity, it.AvailableQuantity, it.ReorderLevel, it.CreatedAt, it.UpdatedAt)
	return wrap("insert item", err)
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	return it, wrap("get item", err)
}

// GetForUpdate bloquea la fila del ítem (SELECT ... FOR UPDATE) hasta el fin de la tx.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id))
	return it, wrap("lock item", err)
}

func (r *ItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET code = $2, name = $3, category = $4, sub_type = $5, unit = $6,
			description = $7, reorder_level = $8, updated_at = $9
		WHERE id = $1`,
		it.ID, it.Code, it.Name, it.Category, it.SubType, it.Unit, it.Description, it.ReorderLevel, it.UpdatedAt)
	return mustAffect(tag, err, "update item")
}

func (r *ItemRepo) UpdateQuantities(ctx context.Context, id string, total, available int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET total_quantity = $2, available_quantity = $3, updated_at = now()
		WHERE id = $1`, id, total, available)
	return mustAffect(tag, err, "update item quantities")
}

// itemListOrder es el mismo orden que usa el driver memory.
const itemListOrder = " ORDER BY code"

// itemWhere arma el filtro de listado; la categoría se compara sin distinguir mayúsculas.
func itemWhere(f repository.ItemFilter) where {
	var w where
	if f.Search != "" {
		w.add("(lower(code) LIKE ? OR lower(name) LIKE ? OR lower(category) LIKE ?)", like(f.Search))
	}
	if f.Category != "" {
		w.add("lower(category) = lower(?)", strings.TrimSpace(f.Category))
	}
	if f.SubType != "" {
		w.add("sub_type = ?", f.SubType)
	}
	return w
}

func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	w := itemWhere(f)
	total, err := w.count(ctx, r.q, "items")
	if err != nil {
		return nil, 0, wrap("count items", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items`+w.sql()+itemListOrder+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list items", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, wrap("scan item", err)
		}
		out = append(out, it)
	}
	return out, total, wrap("list items", rows.Err())
}
