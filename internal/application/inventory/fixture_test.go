package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
)

var testNow = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	repos     ports.TxRepos
	ledger    *appinv.LedgerUseCase
	items     *appinv.ItemUseCase
	transfers *appinv.TransferUseCase
}

// newFixture arma los casos de uso sobre el store en memoria con las unidades y usuarios demo.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	clock := ports.FixedClock{T: testNow}
	tx := memory.NewTxRunner(store)
	ledger := appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx:          tx,
		Locker:      lock.NewLocal(),
		Clock:       clock,
		Batches:     repos.Batches,
		Ledger:      repos.Transactions,
		Adjustments: repos.Adjustments,
	})
	require.NoError(t, memory.SeedDemo(context.Background(), store, ledger))
	return &fixture{
		store:     store,
		repos:     repos,
		ledger:    ledger,
		items:     appinv.NewItemUseCase(repos.Items, repos.Batches, clock),
		transfers: appinv.NewTransferUseCase(ledger, tx, repos.Transfers, store.Units(), repos.Items),
	}
}

func (f *fixture) newItem(t *testing.T, code string, reorder int64) string {
	t.Helper()
	it, err := f.items.Create(context.Background(), dto.CreateItemRequest{
		Code:         code,
		Name:         "Test " + code,
		Category:     "Test",
		SubType:      "supplied",
		Unit:         "tablet",
		ReorderLevel: reorder,
	})
	require.NoError(t, err)
	return it.ID
}

func (f *fixture) receive(t *testing.T, itemID, lot string, qty int64, expiry, received string) dto.BatchResponse {
	t.Helper()
	out, err := f.ledger.Receive(context.Background(), "user-storekeeper", dto.ReceiveRequest{
		ItemID:       itemID,
		LotNumber:    lot,
		Quantity:     qty,
		ExpiryDate:   expiry,
		ReceivedDate: received,
		Supplier:     "Unilab",
		UnitCost:     decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	return out.Batch
}

func (f *fixture) available(t *testing.T, itemID string) int64 {
	t.Helper()
	it, err := f.repos.Items.GetByID(context.Background(), itemID)
	require.NoError(t, err)
	return it.AvailableQuantity
}

func (f *fixture) batchQty(t *testing.T, batchID string) int64 {
	t.Helper()
	b, err := f.repos.Batches.GetByID(context.Background(), batchID)
	require.NoError(t, err)
	return b.Quantity
}

func txFilter(itemID string) repository.TransactionFilter {
	return repository.TransactionFilter{ItemID: itemID}
}

// rejections registra los rechazos que recibe el observer; el resto se descarta.
type rejections struct {
	ports.NopObserver
	mu   sync.Mutex
	seen []string
}

func (r *rejections) Rejected(operation, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, operation+":"+reason)
}

// observedLedger arma otro LedgerUseCase sobre el mismo store que reporta a obs.
func (f *fixture) observedLedger(obs ports.InventoryObserver) *appinv.LedgerUseCase {
	return appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx:          memory.NewTxRunner(f.store),
		Locker:      lock.NewLocal(),
		Clock:       ports.FixedClock{T: testNow},
		Observer:    obs,
		Batches:     f.repos.Batches,
		Ledger:      f.repos.Transactions,
		Adjustments: f.repos.Adjustments,
	})
}
