package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// PurchaseRequestRepository stores purchase requests with their lines.
type PurchaseRequestRepository interface {
	Create(ctx context.Context, pr *entity.PurchaseRequest) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error)
	// Update writes status, approver and denial reason.
	Update(ctx context.Context, pr *entity.PurchaseRequest) error
	List(ctx context.Context, f ProcurementFilter) ([]*entity.PurchaseRequest, int, error)
}

// PurchaseOrderRepository stores purchase orders with their lines.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	List(ctx context.Context, f ProcurementFilter) ([]*entity.PurchaseOrder, int, error)
}

// ReceivingReportRepository stores warehouse receiving reports. They are immutable once posted.
type ReceivingReportRepository interface {
	Create(ctx context.Context, wrr *entity.WarehouseReceivingReport) error
	GetByID(ctx context.Context, id string) (*entity.WarehouseReceivingReport, error)
	List(ctx context.Context, f ProcurementFilter) ([]*entity.WarehouseReceivingReport, int, error)
}

// PurchaseInvoiceRepository stores supplier invoices.
type PurchaseInvoiceRepository interface {
	Create(ctx context.Context, inv *entity.PurchaseInvoice) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	Update(ctx context.Context, inv *entity.PurchaseInvoice) error
	List(ctx context.Context, f ProcurementFilter) ([]*entity.PurchaseInvoice, int, error)
}
