package ports

import "time"

// InventoryObserver receives ledger events; the metrics adapter implements it.
type InventoryObserver interface {
	EntryAppended(txType string, delta int64)
	Rejected(operation, reason string)
	LockWaited(d time.Duration)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) EntryAppended(string, int64) {}
func (NopObserver) Rejected(string, string)     {}
func (NopObserver) LockWaited(time.Duration)    {}
