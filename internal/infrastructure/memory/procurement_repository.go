package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)
	_ repository.PurchaseOrderRepository   = (*PurchaseOrderRepo)(nil)
	_ repository.ReceivingReportRepository = (*ReceivingReportRepo)(nil)
	_ repository.PurchaseInvoiceRepository = (*InvoiceRepo)(nil)
)

// matches aplica los filtros comunes de compras.
func matches(f repository.ProcurementFilter, number, status, department, supplier string) bool {
	if f.Search != "" && !containsFold(number, f.Search) {
		return false
	}
	if f.Status != "" && status != f.Status {
		return false
	}
	if f.Department != "" && !strings.EqualFold(department, f.Department) {
		return false
	}
	if f.Supplier != "" && !containsFold(supplier, f.Supplier) {
		return false
	}
	return true
}

// ── Purchase requests ────────────────────────────────────────────────────────

// PurchaseRequestRepo implementa repository.PurchaseRequestRepository en memoria.
type PurchaseRequestRepo struct{ c scope }

func (r *PurchaseRequestRepo) Create(_ context.Context, pr *entity.PurchaseRequest) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.prs[pr.ID]; ok {
			return domain.ErrDuplicate
		}
		st.prs[pr.ID] = clonePR(*pr)
		return nil
	})
}

func (r *PurchaseRequestRepo) GetByID(_ context.Context, id string) (*entity.PurchaseRequest, error) {
	var out *entity.PurchaseRequest
	err := r.c.read(func(st *state) error {
		pr, ok := st.prs[id]
		if !ok {
			return domain.ErrNotFound
		}
		pr = clonePR(pr)
		out = &pr
		return nil
	})
	return out, err
}

func (r *PurchaseRequestRepo) Update(_ context.Context, pr *entity.PurchaseRequest) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.prs[pr.ID]; !ok {
			return domain.ErrNotFound
		}
		st.prs[pr.ID] = clonePR(*pr)
		return nil
	})
}

func (r *PurchaseRequestRepo) List(_ context.Context, f repository.ProcurementFilter) ([]*entity.PurchaseRequest, int, error) {
	var list []*entity.PurchaseRequest
	err := r.c.read(func(st *state) error {
		for _, pr := range st.prs {
			if !matches(f, pr.PRNumber, pr.Status, pr.Department, "") {
				continue
			}
			pr = clonePR(pr)
			list = append(list, &pr)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PRNumber > list[j].PRNumber })
	return paginate(list, f.Page), len(list), nil
}

// ── Purchase orders ──────────────────────────────────────────────────────────

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository en memoria.
type PurchaseOrderRepo struct{ c scope }

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.pos[po.ID]; ok {
			return domain.ErrDuplicate
		}
		st.pos[po.ID] = clonePO(*po)
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.c.read(func(st *state) error {
		po, ok := st.pos[id]
		if !ok {
			return domain.ErrNotFound
		}
		po = clonePO(po)
		out = &po
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.pos[po.ID]; !ok {
			return domain.ErrNotFound
		}
		st.pos[po.ID] = clonePO(*po)
		return nil
	})
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.ProcurementFilter) ([]*entity.PurchaseOrder, int, error) {
	var list []*entity.PurchaseOrder
	err := r.c.read(func(st *state) error {
		for _, po := range st.pos {
			if !matches(f, po.PONumber, po.Status, "", po.Supplier) {
				continue
			}
			po = clonePO(po)
			list = append(list, &po)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PONumber > list[j].PONumber })
	return paginate(list, f.Page), len(list), nil
}

// ── Receiving reports ────────────────────────────────────────────────────────

// ReceivingReportRepo implementa repository.ReceivingReportRepository en memoria.
type ReceivingReportRepo struct{ c scope }

func (r *ReceivingReportRepo) Create(_ context.Context, w *entity.WarehouseReceivingReport) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.wrrs[w.ID]; ok {
			return domain.ErrDuplicate
		}
		st.wrrs[w.ID] = cloneWRR(*w)
		return nil
	})
}

func (r *ReceivingReportRepo) GetByID(_ context.Context, id string) (*entity.WarehouseReceivingReport, error) {
	var out *entity.WarehouseReceivingReport
	err := r.c.read(func(st *state) error {
		w, ok := st.wrrs[id]
		if !ok {
			return domain.ErrNotFound
		}
		w = cloneWRR(w)
		out = &w
		return nil
	})
	return out, err
}

func (r *ReceivingReportRepo) List(_ context.Context, f repository.ProcurementFilter) ([]*entity.WarehouseReceivingReport, int, error) {
	var list []*entity.WarehouseReceivingReport
	f.Status = "" // receiving reports have no status
	err := r.c.read(func(st *state) error {
		for _, w := range st.wrrs {
			if !matches(f, w.WRRNumber, "", "", w.Supplier) {
				continue
			}
			w = cloneWRR(w)
			list = append(list, &w)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WRRNumber > list[j].WRRNumber })
	return paginate(list, f.Page), len(list), nil
}

// ── Invoices ─────────────────────────────────────────────────────────────────

// InvoiceRepo implementa repository.PurchaseInvoiceRepository en memoria.
type InvoiceRepo struct{ c scope }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.PurchaseInvoice) error {
	return r.c.write(func(st *state) error {
		for _, existing := range st.invoices {
			if existing.ID == inv.ID || strings.EqualFold(existing.InvoiceNumber, inv.InvoiceNumber) {
				return domain.ErrDuplicate
			}
		}
		st.invoices[inv.ID] = cloneInvoice(*inv)
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.PurchaseInvoice, error) {
	var out *entity.PurchaseInvoice
	err := r.c.read(func(st *state) error {
		inv, ok := st.invoices[id]
		if !ok {
			return domain.ErrNotFound
		}
		inv = cloneInvoice(inv)
		out = &inv
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.PurchaseInvoice) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.invoices[inv.ID]; !ok {
			return domain.ErrNotFound
		}
		st.invoices[inv.ID] = cloneInvoice(*inv)
		return nil
	})
}

func (r *InvoiceRepo) List(_ context.Context, f repository.ProcurementFilter) ([]*entity.PurchaseInvoice, int, error) {
	var list []*entity.PurchaseInvoice
	err := r.c.read(func(st *state) error {
		for _, inv := range st.invoices {
			if !matches(f, inv.InvoiceNumber, inv.Status, "", inv.Supplier) {
				continue
			}
			inv = cloneInvoice(inv)
			list = append(list, &inv)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, f.Page), len(list), nil
}
