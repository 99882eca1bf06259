package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/analytics"
	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
)

func newDashboard(t *testing.T) (*analytics.DashboardUseCase, *appinv.TransferUseCase) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	clock := ports.FixedClock{T: time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)}
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

	dash := analytics.NewDashboardUseCase(analytics.DashboardDeps{
		Items:            repos.Items,
		Batches:          repos.Batches,
		Transactions:     repos.Transactions,
		Transfers:        repos.Transfers,
		PurchaseRequests: repos.PurchaseRequests,
		PurchaseOrders:   repos.PurchaseOrders,
		Clock:            clock,
	})
	return dash, appinv.NewTransferUseCase(ledger, tx, repos.Transfers, store.Units(), repos.Items)
}

func TestGetSummary_DemoCatalogue(t *testing.T) {
	dash, _ := newDashboard(t)

	got, err := dash.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, got.TotalItems)
	assert.Equal(t, map[string]int{
		entity.StatusActive:       3,
		entity.StatusLowStock:     1,
		entity.StatusExpiringSoon: 1,
		entity.StatusExpired:      1,
		entity.StatusOutOfStock:   1,
	}, got.ItemsByStatus)
	assert.Equal(t, "Oct 15, 2026", got.DateLabel)

	// Expired stock still counts: the ORS lot comes first in FEFO order.
	require.Len(t, got.ExpiringBatches, 2)
	assert.Equal(t, "ORS-2209", got.ExpiringBatches[0].LotNumber)
	assert.Equal(t, "Oral Rehydration Salts", got.ExpiringBatches[0].ItemName)
	assert.Equal(t, -20, got.ExpiringBatches[0].DaysUntilExpiry)
	assert.Equal(t, "AMX-2312", got.ExpiringBatches[1].LotNumber)
	assert.Equal(t, "2027-01-13", got.ExpiringBatches[1].ExpiryDate)
	assert.Equal(t, 90, got.ExpiringBatches[1].DaysUntilExpiry)

	// Nine opening receipts, newest first.
	require.Len(t, got.RecentActivity, 9)
	assert.Equal(t, entity.TxTypeWarehouseReceiving, got.RecentActivity[0].Type)
	assert.Equal(t, "item-gauze", got.RecentActivity[0].ItemID)

	// The second ORS lot lands on top of the first one's 40 units.
	ors := got.RecentActivity[3]
	assert.Equal(t, "TXN-20261015-000006", ors.Number)
	assert.Equal(t, "item-ors", ors.ItemID)
	assert.Equal(t, int64(300), ors.Quantity)
	assert.Equal(t, int64(40), ors.BeginningQuantity)
	assert.Equal(t, int64(340), ors.EndingQuantity)

	assert.Zero(t, got.PendingPRs)
	assert.Zero(t, got.PendingPOs)
	assert.Zero(t, got.PendingTransfers)
}

func TestGetSummary_CountsDraftAndApprovedTransfers(t *testing.T) {
	dash, transfers := newDashboard(t)
	ctx := context.Background()

	draft := func() string {
		out, err := transfers.Create(ctx, "user-storekeeper", dto.CreateTransferRequest{
			DestinationUnitID: "unit-bhs-tabon",
			Lines:             []dto.TransferLineRequest{{ItemID: "item-paracetamol", Quantity: 50}},
		})
		require.NoError(t, err)
		return out.ID
	}
	draft()
	approved := draft()
	_, err := transfers.Approve(ctx, "user-pharmacist", approved)
	require.NoError(t, err)
	issued := draft()
	_, err = transfers.Approve(ctx, "user-pharmacist", issued)
	require.NoError(t, err)
	_, err = transfers.Issue(ctx, "user-storekeeper", issued)
	require.NoError(t, err)

	got, err := dash.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PendingTransfers)
	assert.Len(t, got.RecentActivity, 10)
	assert.Equal(t, entity.TxTypeTransferOut, got.RecentActivity[0].Type)
}
