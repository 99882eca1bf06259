// Package procurement implements the purchase flow: request, order, receiving report, invoice.
// Posting a receiving report creates batches through the ledger in the same transaction.
package procurement

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	domainproc "github.com/jhoicas/rhu-inventory-api/internal/domain/procurement"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// UseCase agrupa los casos de uso de compras.
type UseCase struct {
	ledger   *inventory.LedgerUseCase
	tx       ports.TxRunner
	prs      repository.PurchaseRequestRepository
	pos      repository.PurchaseOrderRepository
	wrrs     repository.ReceivingReportRepository
	invoices repository.PurchaseInvoiceRepository
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	ledger *inventory.LedgerUseCase,
	tx ports.TxRunner,
	prs repository.PurchaseRequestRepository,
	pos repository.PurchaseOrderRepository,
	wrrs repository.ReceivingReportRepository,
	invoices repository.PurchaseInvoiceRepository,
) *UseCase {
	return &UseCase{ledger: ledger, tx: tx, prs: prs, pos: pos, wrrs: wrrs, invoices: invoices}
}

func toPageFilter(in dto.ProcurementListRequest) repository.ProcurementFilter {
	in.DefaultPage()
	return repository.ProcurementFilter{
		Search:     in.Search,
		Status:     in.Status,
		Department: in.Department,
		Supplier:   in.Supplier,
		Page:       repository.Page{Limit: in.Limit, Offset: in.Offset},
	}
}

// ── Purchase requests ────────────────────────────────────────────────────────

// CreatePR registra una solicitud de compra en borrador.
func (uc *UseCase) CreatePR(ctx context.Context, userID string, in dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	if strings.TrimSpace(in.Department) == "" {
		return nil, domain.NewValidationError("department", "is required")
	}
	lines := make([]entity.PurchaseRequestLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.PurchaseRequestLine{
			ItemID:            l.ItemID,
			Description:       strings.TrimSpace(l.Description),
			Unit:              l.Unit,
			Quantity:          l.Quantity,
			EstimatedUnitCost: l.EstimatedUnitCost,
		})
	}
	if err := domainproc.ValidatePRLines(lines); err != nil {
		return nil, err
	}
	now := uc.ledger.Now()
	pr := &entity.PurchaseRequest{
		ID:          uuid.New().String(),
		Department:  strings.TrimSpace(in.Department),
		Purpose:     in.Purpose,
		Status:      entity.PRDraft,
		Lines:       lines,
		RequestedBy: userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		seq, err := r.Sequences.Next(ctx, repository.SeqPurchaseRequest)
		if err != nil {
			return err
		}
		pr.PRNumber = domain.DocumentNumber("PR", now.Year(), seq)
		return r.PurchaseRequests.Create(ctx, pr)
	})
	if err != nil {
		return nil, err
	}
	return toPRResponse(pr), nil
}

// SubmitPR envía el borrador a aprobación.
func (uc *UseCase) SubmitPR(ctx context.Context, userID, id string) (*dto.PurchaseRequestResponse, error) {
	return uc.changePR(ctx, id, func(pr *entity.PurchaseRequest) error {
		if err := domainproc.CheckPRTransition(pr.Status, entity.PRSubmitted); err != nil {
			return err
		}
		pr.Status = entity.PRSubmitted
		return nil
	})
}

// ApprovePR aprueba una solicitud enviada.
func (uc *UseCase) ApprovePR(ctx context.Context, userID, id string) (*dto.PurchaseRequestResponse, error) {
	return uc.changePR(ctx, id, func(pr *entity.PurchaseRequest) error {
		if err := domainproc.CheckPRTransition(pr.Status, entity.PRApproved); err != nil {
			return err
		}
		pr.Status = entity.PRApproved
		pr.ApprovedBy = userID
		return nil
	})
}

// DenyPR rechaza una solicitud enviada; el motivo es obligatorio.
func (uc *UseCase) DenyPR(ctx context.Context, userID, id, reason string) (*dto.PurchaseRequestResponse, error) {
	return uc.changePR(ctx, id, func(pr *entity.PurchaseRequest) error {
		if err := domainproc.Deny(pr, reason); err != nil {
			return err
		}
		pr.ApprovedBy = userID
		return nil
	})
}

func (uc *UseCase) changePR(ctx context.Context, id string, mutate func(*entity.PurchaseRequest) error) (*dto.PurchaseRequestResponse, error) {
	var out *dto.PurchaseRequestResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		pr, err := r.PurchaseRequests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(pr); err != nil {
			return err
		}
		pr.UpdatedAt = uc.ledger.Now()
		if err := r.PurchaseRequests.Update(ctx, pr); err != nil {
			return err
		}
		out = toPRResponse(pr)
		return nil
	})
	return out, err
}

// GetPR obtiene una solicitud.
func (uc *UseCase) GetPR(ctx context.Context, id string) (*dto.PurchaseRequestResponse, error) {
	pr, err := uc.prs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPRResponse(pr), nil
}

// ListPRs lista solicitudes por número, departamento o estado.
func (uc *UseCase) ListPRs(ctx context.Context, in dto.ProcurementListRequest) (*dto.PurchaseRequestListResponse, error) {
	f := toPageFilter(in)
	list, total, err := uc.prs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseRequestResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, *toPRResponse(pr))
	}
	return &dto.PurchaseRequestListResponse{
		PurchaseRequests: out,
		Page:             dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// ── Purchase orders ──────────────────────────────────────────────────────────

// CreatePO emite una orden de compra contra una solicitud aprobada.
func (uc *UseCase) CreatePO(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if strings.TrimSpace(in.Supplier) == "" {
		return nil, domain.NewValidationError("supplier", "is required")
	}
	lines := make([]entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.PurchaseOrderLine{ItemID: l.ItemID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	if err := domainproc.ValidatePOLines(lines); err != nil {
		return nil, err
	}
	now := uc.ledger.Now()
	po := &entity.PurchaseOrder{
		ID:                uuid.New().String(),
		PurchaseRequestID: in.PurchaseRequestID,
		Supplier:          strings.TrimSpace(in.Supplier),
		Status:            entity.POPending,
		Lines:             lines,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		pr, err := r.PurchaseRequests.GetByID(ctx, in.PurchaseRequestID)
		if err != nil {
			return err
		}
		if pr.Status != entity.PRApproved {
			return domain.NewValidationError("purchase_request_id", "purchase request is not approved")
		}
		for _, l := range lines {
			if _, err := r.Items.GetByID(ctx, l.ItemID); err != nil {
				return err
			}
		}
		seq, err := r.Sequences.Next(ctx, repository.SeqPurchaseOrder)
		if err != nil {
			return err
		}
		po.PONumber = domain.DocumentNumber("PO", now.Year(), seq)
		return r.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// ApprovePO aprueba una orden pendiente.
func (uc *UseCase) ApprovePO(ctx context.Context, userID, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.changePO(ctx, id, entity.POApproved, userID)
}

// CancelPO cancela una orden no entregada.
func (uc *UseCase) CancelPO(ctx context.Context, userID, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.changePO(ctx, id, entity.POCancelled, "")
}

func (uc *UseCase) changePO(ctx context.Context, id, to, approver string) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := domainproc.CheckPOTransition(po.Status, to); err != nil {
			return err
		}
		po.Status = to
		if approver != "" {
			po.ApprovedBy = approver
		}
		po.UpdatedAt = uc.ledger.Now()
		if err := r.PurchaseOrders.Update(ctx, po); err != nil {
			return err
		}
		out = toPOResponse(po)
		return nil
	})
	return out, err
}

// GetPO obtiene una orden.
func (uc *UseCase) GetPO(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.pos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// ListPOs lista órdenes por número, proveedor o estado.
func (uc *UseCase) ListPOs(ctx context.Context, in dto.ProcurementListRequest) (*dto.PurchaseOrderListResponse, error) {
	f := toPageFilter(in)
	list, total, err := uc.pos.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, *toPOResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		PurchaseOrders: out,
		Page:           dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// ── Warehouse receiving reports ──────────────────────────────────────────────

// CreateWRR registra la recepción de una orden aprobada. Cada línea crea un lote y un asiento
// warehouse_receiving; la orden pasa a delivered. Todo en una sola transacción.
func (uc *UseCase) CreateWRR(ctx context.Context, userID string, in dto.CreateReceivingReportRequest) (*dto.ReceivingReportResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("lines", "at least one line is required")
	}
	received, err := dto.ParseOptionalDate("received_date", in.ReceivedDate)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.ReceivingLine, 0, len(in.Lines))
	itemIDs := make([]string, 0, len(in.Lines))
	for i, l := range in.Lines {
		expiry, err := dto.ParseDate("lines["+itoa(i)+"].expiry_date", l.ExpiryDate)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.ReceivingLine{
			ItemID:     l.ItemID,
			LotNumber:  strings.TrimSpace(l.LotNumber),
			Quantity:   l.Quantity,
			ExpiryDate: expiry,
			Location:   l.Location,
			UnitCost:   l.UnitCost,
		})
		itemIDs = append(itemIDs, l.ItemID)
	}

	now := uc.ledger.Now()
	wrr := &entity.WarehouseReceivingReport{
		ID:              uuid.New().String(),
		PurchaseOrderID: in.PurchaseOrderID,
		ReceivedBy:      userID,
		ReceivedDate:    now,
		Lines:           lines,
		CreatedAt:       now,
	}
	if received != nil {
		wrr.ReceivedDate = *received
	}

	err = uc.ledger.WithItems(ctx, itemIDs, func(r ports.TxRepos) error {
		po, err := r.PurchaseOrders.GetForUpdate(ctx, in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if err := domainproc.CheckPOTransition(po.Status, entity.PODelivered); err != nil {
			return err
		}
		ordered := make(map[string]bool, len(po.Lines))
		for _, l := range po.Lines {
			ordered[l.ItemID] = true
		}
		seq, err := r.Sequences.Next(ctx, repository.SeqReceivingReport)
		if err != nil {
			return err
		}
		wrr.WRRNumber = domain.DocumentNumber("WRR", now.Year(), seq)
		wrr.Supplier = po.Supplier

		for i := range wrr.Lines {
			line := &wrr.Lines[i]
			if !ordered[line.ItemID] {
				return domain.NewValidationError("lines["+itoa(i)+"].item_id", "item is not on the purchase order")
			}
			batch, _, err := uc.ledger.ReceiveTx(ctx, r, inventory.Receipt{
				ItemID:       line.ItemID,
				LotNumber:    line.LotNumber,
				Quantity:     line.Quantity,
				ExpiryDate:   line.ExpiryDate,
				ReceivedDate: wrr.ReceivedDate,
				Supplier:     po.Supplier,
				WRRNumber:    wrr.WRRNumber,
				Location:     line.Location,
				UnitCost:     line.UnitCost,
				TxType:       entity.TxTypeWarehouseReceiving,
				PerformedBy:  userID,
				Reference:    wrr.WRRNumber,
				Remarks:      po.PONumber,
			})
			if err != nil {
				return err
			}
			line.BatchID = batch.ID
		}

		po.Status = entity.PODelivered
		po.UpdatedAt = now
		if err := r.PurchaseOrders.Update(ctx, po); err != nil {
			return err
		}
		return r.ReceivingReports.Create(ctx, wrr)
	})
	if err != nil {
		return nil, err
	}
	return toWRRResponse(wrr), nil
}

// GetWRR obtiene un reporte de recepción.
func (uc *UseCase) GetWRR(ctx context.Context, id string) (*dto.ReceivingReportResponse, error) {
	wrr, err := uc.wrrs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWRRResponse(wrr), nil
}

// ListWRRs lista reportes de recepción.
func (uc *UseCase) ListWRRs(ctx context.Context, in dto.ProcurementListRequest) (*dto.ReceivingReportListResponse, error) {
	f := toPageFilter(in)
	list, total, err := uc.wrrs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceivingReportResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWRRResponse(w))
	}
	return &dto.ReceivingReportListResponse{
		ReceivingReports: out,
		Page:             dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// ── Purchase invoices ────────────────────────────────────────────────────────

// CreateInvoice registra la factura del proveedor para un WRR. Sin monto, se usa el total del WRR.
func (uc *UseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	due, err := dto.ParseOptionalDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, domain.NewValidationError("amount", "must not be negative")
	}
	wrr, err := uc.wrrs.GetByID(ctx, in.ReceivingReportID)
	if err != nil {
		return nil, err
	}
	amount := wrr.TotalAmount()
	if in.Amount != nil {
		amount = *in.Amount
	}
	now := uc.ledger.Now()
	inv := &entity.PurchaseInvoice{
		ID:                uuid.New().String(),
		InvoiceNumber:     strings.TrimSpace(in.InvoiceNumber),
		ReceivingReportID: wrr.ID,
		Supplier:          wrr.Supplier,
		Amount:            amount,
		Status:            entity.InvoiceUnpaid,
		DueDate:           due,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if inv.InvoiceNumber == "" {
			seq, err := r.Sequences.Next(ctx, repository.SeqPurchaseInvoice)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = domain.DocumentNumber("INV", now.Year(), seq)
		}
		return r.Invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// PayInvoice marca una factura como pagada.
func (uc *UseCase) PayInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		inv, err := r.Invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv.Status != entity.InvoiceUnpaid {
			return domain.NewValidationError("status", "invoice is already "+inv.Status)
		}
		now := uc.ledger.Now()
		inv.Status = entity.InvoicePaid
		inv.PaidAt = &now
		inv.UpdatedAt = now
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		out = toInvoiceResponse(inv)
		return nil
	})
	return out, err
}

// ListInvoices lista facturas por número, proveedor o estado.
func (uc *UseCase) ListInvoices(ctx context.Context, in dto.ProcurementListRequest) (*dto.InvoiceListResponse, error) {
	f := toPageFilter(in)
	list, total, err := uc.invoices.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Invoices: out,
		Page:     dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// OutstandingTotal sums unpaid invoice amounts.
func (uc *UseCase) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	list, _, err := uc.invoices.List(ctx, repository.ProcurementFilter{Status: entity.InvoiceUnpaid})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range list {
		total = total.Add(inv.Amount)
	}
	return total, nil
}
