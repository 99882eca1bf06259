package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// EntryInput describes a quantity change to be recorded on the ledger.
type EntryInput struct {
	ItemID      string
	BatchID     string
	Type        string
	Delta       int64
	PerformedBy string
	Reference   string
	Remarks     string
}

// NewTransaction builds a ledger entry from the item's available quantity before the change.
// It rejects deltas whose sign does not match the type and deltas that would leave the item negative.
func NewTransaction(in EntryInput, beginning int64, at time.Time) (*entity.InventoryTransaction, error) {
	if in.ItemID == "" {
		return nil, domain.NewValidationError("item_id", "is required")
	}
	if in.PerformedBy == "" {
		return nil, domain.NewValidationError("performed_by", "is required")
	}
	if !entity.IsValidTxType(in.Type) {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown transaction type %q", in.Type))
	}
	if in.Delta == 0 {
		return nil, domain.NewQuantityError("delta must not be zero")
	}
	switch in.Type {
	case entity.TxTypeWarehouseReceiving, entity.TxTypeTransferIn:
		if in.Delta < 0 {
			return nil, domain.NewQuantityError("%s must add stock", in.Type)
		}
	case entity.TxTypeDispense, entity.TxTypeTransferOut, entity.TxTypeDisposal:
		if in.Delta > 0 {
			return nil, domain.NewQuantityError("%s must remove stock", in.Type)
		}
	}
	ending := beginning + in.Delta
	if ending < 0 {
		return nil, domain.NewQuantityError("available quantity %d cannot absorb %d", beginning, in.Delta)
	}
	return &entity.InventoryTransaction{
		ItemID:            in.ItemID,
		BatchID:           in.BatchID,
		Type:              in.Type,
		Quantity:          in.Delta,
		BeginningQuantity: beginning,
		EndingQuantity:    ending,
		PerformedBy:       in.PerformedBy,
		Reference:         in.Reference,
		Remarks:           in.Remarks,
		CreatedAt:         at,
	}, nil
}

// TransactionNumber formats the display number of a ledger entry.
func TransactionNumber(seq int64, at time.Time) string {
	return fmt.Sprintf("TXN-%s-%06d", at.Format("20060102"), seq)
}

// ApplyDelta moves the item's quantities by delta, keeping available <= total.
func ApplyDelta(item *entity.InventoryItem, delta int64) error {
	available := item.AvailableQuantity + delta
	total := item.TotalQuantity + delta
	if available < 0 || total < 0 {
		return domain.NewQuantityError("item %s cannot go below zero (available %d, delta %d)", item.ID, item.AvailableQuantity, delta)
	}
	item.AvailableQuantity = available
	item.TotalQuantity = total
	return nil
}
