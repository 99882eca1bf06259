package inventory

import (
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
)

// ToItemResponse maps an item and its batches, deriving the status at now.
func ToItemResponse(it *entity.InventoryItem, batches []*entity.Batch, now time.Time) dto.ItemResponse {
	return dto.ItemResponse{
		ID:                it.ID,
		Code:              it.Code,
		Name:              it.Name,
		Category:          it.Category,
		SubType:           it.SubType,
		Unit:              it.Unit,
		Description:       it.Description,
		TotalQuantity:     it.TotalQuantity,
		AvailableQuantity: it.AvailableQuantity,
		ReorderLevel:      it.ReorderLevel,
		Status:            inventory.DeriveItemStatus(it.AvailableQuantity, it.ReorderLevel, inventory.ExpiriesOf(batches), now),
		NearestExpiry:     inventory.NearestExpiry(batches),
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

// ToBatchResponse maps a batch, deriving its status at now.
func ToBatchResponse(b *entity.Batch, now time.Time) dto.BatchResponse {
	return dto.BatchResponse{
		ID:              b.ID,
		ItemID:          b.ItemID,
		LotNumber:       b.LotNumber,
		Quantity:        b.Quantity,
		InitialQuantity: b.InitialQuantity,
		ExpiryDate:      b.ExpiryDate.Format(dto.DateLayout),
		ReceivedDate:    b.ReceivedDate.Format(dto.DateLayout),
		DaysUntilExpiry: inventory.DaysUntilExpiry(b.ExpiryDate, now),
		Status:          inventory.DeriveBatchStatus(b, now),
		Supplier:        b.Supplier,
		WRRNumber:       b.WRRNumber,
		Location:        b.Location,
		UnitCost:        b.UnitCost,
	}
}

// ToTransactionResponse maps a ledger entry.
func ToTransactionResponse(t *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                t.ID,
		Number:            t.Number,
		ItemID:            t.ItemID,
		BatchID:           t.BatchID,
		Type:              t.Type,
		Quantity:          t.Quantity,
		BeginningQuantity: t.BeginningQuantity,
		EndingQuantity:    t.EndingQuantity,
		PerformedBy:       t.PerformedBy,
		Reference:         t.Reference,
		Remarks:           t.Remarks,
		CreatedAt:         t.CreatedAt,
	}
}

// ToAdjustmentResponse maps an adjustment with its display label.
func ToAdjustmentResponse(a *entity.StockAdjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:             a.ID,
		Number:         a.Number,
		ItemID:         a.ItemID,
		BatchID:        a.BatchID,
		Type:           a.Type,
		TypeLabel:      inventory.DisplayAdjustmentType(a.Type),
		QuantityBefore: a.QuantityBefore,
		QuantityAfter:  a.QuantityAfter,
		Difference:     a.Difference,
		Reason:         a.Reason,
		PerformedBy:    a.PerformedBy,
		TransactionID:  a.TransactionID,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAllocationResponses maps FEFO allocations.
func ToAllocationResponses(allocs []entity.BatchAllocation) []dto.AllocationResponse {
	out := make([]dto.AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, dto.AllocationResponse{BatchID: a.BatchID, Quantity: a.Quantity})
	}
	return out
}

// ToTransferResponse maps a transfer with its lines.
func ToTransferResponse(t *entity.TransferOut) dto.TransferResponse {
	lines := make([]dto.TransferLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		line := dto.TransferLineResponse{ItemID: l.ItemID, Quantity: l.Quantity}
		if len(l.Allocations) > 0 {
			line.Allocations = ToAllocationResponses(l.Allocations)
		}
		lines = append(lines, line)
	}
	return dto.TransferResponse{
		ID:                t.ID,
		Number:            t.Number,
		DestinationUnitID: t.DestinationUnitID,
		DestinationName:   t.DestinationName,
		Status:            t.Status,
		Remarks:           t.Remarks,
		Lines:             lines,
		RequestedBy:       t.RequestedBy,
		ApprovedBy:        t.ApprovedBy,
		IssuedBy:          t.IssuedBy,
		ReceivedBy:        t.ReceivedBy,
		CreatedAt:         t.CreatedAt,
		ApprovedAt:        t.ApprovedAt,
		IssuedAt:          t.IssuedAt,
		ReceivedAt:        t.ReceivedAt,
	}
}
