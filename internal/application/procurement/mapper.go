package procurement

import (
	"strconv"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/pkg/format"
)

func itoa(i int) string { return strconv.Itoa(i) }

func toPRResponse(pr *entity.PurchaseRequest) *dto.PurchaseRequestResponse {
	lines := make([]dto.PRLineRequest, 0, len(pr.Lines))
	for _, l := range pr.Lines {
		lines = append(lines, dto.PRLineRequest{
			ItemID:            l.ItemID,
			Description:       l.Description,
			Unit:              l.Unit,
			Quantity:          l.Quantity,
			EstimatedUnitCost: l.EstimatedUnitCost,
		})
	}
	return &dto.PurchaseRequestResponse{
		ID:             pr.ID,
		PRNumber:       pr.PRNumber,
		Department:     pr.Department,
		Purpose:        pr.Purpose,
		Status:         pr.Status,
		DenialReason:   pr.DenialReason,
		Lines:          lines,
		EstimatedTotal: pr.EstimatedTotal(),
		RequestedBy:    pr.RequestedBy,
		ApprovedBy:     pr.ApprovedBy,
		CreatedAt:      pr.CreatedAt,
		UpdatedAt:      pr.UpdatedAt,
	}
}

func toPOResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	lines := make([]dto.POLineRequest, 0, len(po.Lines))
	for _, l := range po.Lines {
		lines = append(lines, dto.POLineRequest{ItemID: l.ItemID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	return &dto.PurchaseOrderResponse{
		ID:                po.ID,
		PONumber:          po.PONumber,
		PurchaseRequestID: po.PurchaseRequestID,
		Supplier:          po.Supplier,
		Status:            po.Status,
		Lines:             lines,
		TotalAmount:       po.TotalAmount(),
		CreatedBy:         po.CreatedBy,
		ApprovedBy:        po.ApprovedBy,
		CreatedAt:         po.CreatedAt,
		UpdatedAt:         po.UpdatedAt,
	}
}

func toWRRResponse(w *entity.WarehouseReceivingReport) *dto.ReceivingReportResponse {
	lines := make([]dto.WRRLineResponse, 0, len(w.Lines))
	for _, l := range w.Lines {
		lines = append(lines, dto.WRRLineResponse{
			WRRLineRequest: dto.WRRLineRequest{
				ItemID:     l.ItemID,
				LotNumber:  l.LotNumber,
				Quantity:   l.Quantity,
				ExpiryDate: l.ExpiryDate.Format(dto.DateLayout),
				Location:   l.Location,
				UnitCost:   l.UnitCost,
			},
			BatchID: l.BatchID,
		})
	}
	return &dto.ReceivingReportResponse{
		ID:              w.ID,
		WRRNumber:       w.WRRNumber,
		PurchaseOrderID: w.PurchaseOrderID,
		Supplier:        w.Supplier,
		ReceivedBy:      w.ReceivedBy,
		ReceivedDate:    w.ReceivedDate.Format(dto.DateLayout),
		Lines:           lines,
		TotalAmount:     w.TotalAmount(),
		CreatedAt:       w.CreatedAt,
	}
}

func toInvoiceResponse(inv *entity.PurchaseInvoice) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:                inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		ReceivingReportID: inv.ReceivingReportID,
		Supplier:          inv.Supplier,
		Amount:            inv.Amount,
		AmountDisplay:     format.Peso(inv.Amount),
		Status:            inv.Status,
		PaidAt:            inv.PaidAt,
		CreatedBy:         inv.CreatedBy,
		CreatedAt:         inv.CreatedAt,
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format(dto.DateLayout)
	}
	return out
}
