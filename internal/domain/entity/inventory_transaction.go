package entity

import "time"

// Ledger entry types.
const (
	TxTypeWarehouseReceiving = "warehouse_receiving"
	TxTypeDispense           = "dispense"
	TxTypeTransferOut        = "transfer_out"
	TxTypeTransferIn         = "transfer_in"
	TxTypeAdjustment         = "adjustment"
	TxTypeDisposal           = "disposal"
)

// InventoryTransaction is an immutable ledger entry.
// EndingQuantity = BeginningQuantity + Quantity always holds.
type InventoryTransaction struct {
	ID                string
	Number            string // TXN-YYYYMMDD-NNNNNN, assigned on append
	Sequence          int64
	ItemID            string
	BatchID           string // optional
	Type              string
	Quantity          int64 // signed delta
	BeginningQuantity int64
	EndingQuantity    int64
	PerformedBy       string
	Reference         string // WRR, transfer or patient reference
	Remarks           string
	CreatedAt         time.Time
}

// IsValidTxType reports whether t is a known ledger type.
func IsValidTxType(t string) bool {
	switch t {
	case TxTypeWarehouseReceiving, TxTypeDispense, TxTypeTransferOut,
		TxTypeTransferIn, TxTypeAdjustment, TxTypeDisposal:
		return true
	}
	return false
}
