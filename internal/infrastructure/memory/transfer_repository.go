package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementa repository.TransferRepository en memoria.
type TransferRepo struct{ c scope }

func (r *TransferRepo) Create(_ context.Context, t *entity.TransferOut) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.transfers[t.ID]; ok {
			return domain.ErrDuplicate
		}
		st.transfers[t.ID] = cloneTransfer(*t)
		return nil
	})
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.TransferOut, error) {
	var out *entity.TransferOut
	err := r.c.read(func(st *state) error {
		t, ok := st.transfers[id]
		if !ok {
			return domain.ErrNotFound
		}
		t = cloneTransfer(t)
		out = &t
		return nil
	})
	return out, err
}

func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.TransferOut, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) Update(_ context.Context, t *entity.TransferOut) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.transfers[t.ID]; !ok {
			return domain.ErrNotFound
		}
		st.transfers[t.ID] = cloneTransfer(*t)
		return nil
	})
}

func (r *TransferRepo) List(_ context.Context, f repository.TransferFilter) ([]*entity.TransferOut, int, error) {
	var list []*entity.TransferOut
	err := r.c.read(func(st *state) error {
		for _, t := range st.transfers {
			if f.Status != "" && t.Status != f.Status {
				continue
			}
			t = cloneTransfer(t)
			list = append(list, &t)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, f.Page), len(list), nil
}
