package memory

import (
	"slices"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTransfer(t entity.TransferOut) entity.TransferOut {
	t.Lines = slices.Clone(t.Lines)
	for i := range t.Lines {
		t.Lines[i].Allocations = slices.Clone(t.Lines[i].Allocations)
	}
	t.ApprovedAt = clonePtr(t.ApprovedAt)
	t.IssuedAt = clonePtr(t.IssuedAt)
	t.ReceivedAt = clonePtr(t.ReceivedAt)
	return t
}

func clonePatient(p entity.Patient) entity.Patient {
	p.BirthDate = clonePtr(p.BirthDate)
	return p
}

func clonePR(pr entity.PurchaseRequest) entity.PurchaseRequest {
	pr.Lines = slices.Clone(pr.Lines)
	return pr
}

func clonePO(po entity.PurchaseOrder) entity.PurchaseOrder {
	po.Lines = slices.Clone(po.Lines)
	return po
}

func cloneWRR(w entity.WarehouseReceivingReport) entity.WarehouseReceivingReport {
	w.Lines = slices.Clone(w.Lines)
	return w
}

func cloneInvoice(inv entity.PurchaseInvoice) entity.PurchaseInvoice {
	inv.DueDate = clonePtr(inv.DueDate)
	inv.PaidAt = clonePtr(inv.PaidAt)
	return inv
}
