package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository        = (*ItemRepo)(nil)
	_ repository.BatchRepository       = (*BatchRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.AdjustmentRepository  = (*AdjustmentRepo)(nil)
)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── Items ────────────────────────────────────────────────────────────────────

// ItemRepo implementa repository.ItemRepository en memoria.
type ItemRepo struct{ c scope }

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, it := range st.items {
			if strings.EqualFold(it.Code, item.Code) {
				return domain.ErrDuplicate
			}
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.c.read(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &it
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el writer ya es exclusivo.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.c.write(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, it := range st.items {
			if id != item.ID && strings.EqualFold(it.Code, item.Code) {
				return domain.ErrDuplicate
			}
		}
		next := *item
		next.TotalQuantity = cur.TotalQuantity
		next.AvailableQuantity = cur.AvailableQuantity
		st.items[item.ID] = next
		return nil
	})
}

func (r *ItemRepo) UpdateQuantities(_ context.Context, id string, total, available int64) error {
	return r.c.write(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.TotalQuantity = total
		it.AvailableQuantity = available
		st.items[id] = it
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var list []*entity.InventoryItem
	err := r.c.read(func(st *state) error {
		for _, it := range st.items {
			if f.Search != "" && !containsFold(it.Code, f.Search) && !containsFold(it.Name, f.Search) && !containsFold(it.Category, f.Search) {
				continue
			}
			if f.Category != "" && !strings.EqualFold(it.Category, strings.TrimSpace(f.Category)) {
				continue
			}
			if f.SubType != "" && it.SubType != f.SubType {
				continue
			}
			list = append(list, &it)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return paginate(list, f.Page), len(list), nil
}

// ── Batches ──────────────────────────────────────────────────────────────────

// BatchRepo implementa repository.BatchRepository en memoria.
type BatchRepo struct{ c scope }

func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.items[b.ItemID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.batches[b.ID]; ok {
			return domain.ErrDuplicate
		}
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.c.read(func(st *state) error {
		b, ok := st.batches[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *BatchRepo) ListByItem(_ context.Context, itemID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.c.read(func(st *state) error {
		for _, b := range st.batches {
			if b.ItemID == itemID {
				out = append(out, &b)
			}
		}
		return nil
	})
	sortByReceived(out)
	return out, err
}

func (r *BatchRepo) ListByItems(_ context.Context, itemIDs []string) (map[string][]*entity.Batch, error) {
	want := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	out := make(map[string][]*entity.Batch, len(itemIDs))
	err := r.c.read(func(st *state) error {
		for _, b := range st.batches {
			if want[b.ItemID] {
				out[b.ItemID] = append(out[b.ItemID], &b)
			}
		}
		return nil
	})
	for _, bs := range out {
		sortByReceived(bs)
	}
	return out, err
}

func (r *BatchRepo) UpdateQuantity(_ context.Context, id string, quantity int64) error {
	if quantity < 0 {
		return domain.NewQuantityError("batch %s would go negative", id)
	}
	return r.c.write(func(st *state) error {
		b, ok := st.batches[id]
		if !ok {
			return domain.ErrNotFound
		}
		b.Quantity = quantity
		st.batches[id] = b
		return nil
	})
}

func (r *BatchRepo) ListExpiringBefore(_ context.Context, t time.Time) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.c.read(func(st *state) error {
		for _, b := range st.batches {
			if b.Quantity > 0 && inventory.ExpiryInstant(b.ExpiryDate, t.Location()).Before(t) {
				out = append(out, &b)
			}
		}
		return nil
	})
	return inventory.SortFEFO(out), err
}

func sortByReceived(bs []*entity.Batch) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].ReceivedDate.Equal(bs[j].ReceivedDate) {
			return bs[i].ReceivedDate.Before(bs[j].ReceivedDate)
		}
		return bs[i].ID < bs[j].ID
	})
}

// ── Ledger ───────────────────────────────────────────────────────────────────

// TransactionRepo es el libro append-only en memoria.
type TransactionRepo struct{ c scope }

// Append asigna la secuencia y el número TXN y agrega el asiento.
func (r *TransactionRepo) Append(_ context.Context, tx *entity.InventoryTransaction) error {
	return r.c.write(func(st *state) error {
		st.txnSeq++
		tx.Sequence = st.txnSeq
		tx.Number = inventory.TransactionNumber(tx.Sequence, tx.CreatedAt)
		st.transactions = append(st.transactions, *tx)
		return nil
	})
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransaction, error) {
	var out *entity.InventoryTransaction
	err := r.c.read(func(st *state) error {
		for i := range st.transactions {
			if st.transactions[i].ID == id {
				t := st.transactions[i]
				out = &t
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func (r *TransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, int, error) {
	var list []*entity.InventoryTransaction
	err := r.c.read(func(st *state) error {
		for i := len(st.transactions) - 1; i >= 0; i-- {
			t := st.transactions[i]
			if f.ItemID != "" && t.ItemID != f.ItemID {
				continue
			}
			if f.Type != "" && t.Type != f.Type {
				continue
			}
			if f.From != nil && t.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !t.CreatedAt.Before(*f.To) {
				continue
			}
			list = append(list, &t)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(list, f.Page), len(list), nil
}

// ── Adjustments ──────────────────────────────────────────────────────────────

// AdjustmentRepo implementa repository.AdjustmentRepository en memoria.
type AdjustmentRepo struct{ c scope }

func (r *AdjustmentRepo) Create(_ context.Context, adj *entity.StockAdjustment) error {
	return r.c.write(func(st *state) error {
		st.adjustments = append(st.adjustments, *adj)
		return nil
	})
}

func (r *AdjustmentRepo) List(_ context.Context, f repository.AdjustmentFilter) ([]*entity.StockAdjustment, int, error) {
	var list []*entity.StockAdjustment
	err := r.c.read(func(st *state) error {
		for i := len(st.adjustments) - 1; i >= 0; i-- {
			a := st.adjustments[i]
			if f.ItemID != "" && a.ItemID != f.ItemID {
				continue
			}
			list = append(list, &a)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(list, f.Page), len(list), nil
}
