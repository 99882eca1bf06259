package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

func TestTransfer_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.newItem(t, "T-200", 0)
	b := f.newItem(t, "T-201", 0)
	a1 := f.receive(t, a, "A1", 30, "2027-01-01", "")
	a2 := f.receive(t, a, "A2", 30, "2027-05-01", "")
	f.receive(t, b, "B1", 10, "2027-01-01", "")

	tr, err := f.transfers.Create(ctx, "user-storekeeper", dto.CreateTransferRequest{
		DestinationUnitID: "unit-bhs-poblacion",
		Lines:             []dto.TransferLineRequest{{ItemID: a, Quantity: 40}, {ItemID: b, Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRF-2026-0001", tr.Number)
	assert.Equal(t, entity.TransferDraft, tr.Status)
	assert.Equal(t, "BHS Poblacion", tr.DestinationName)
	assert.Equal(t, int64(60), f.available(t, a), "drafts do not move stock")

	_, err = f.transfers.Issue(ctx, "user-storekeeper", tr.ID)
	assert.ErrorIs(t, err, domain.ErrValidation, "a draft cannot be issued")

	tr, err = f.transfers.Approve(ctx, "user-admin", tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferApproved, tr.Status)
	assert.Equal(t, "user-admin", tr.ApprovedBy)
	require.NotNil(t, tr.ApprovedAt)

	tr, err = f.transfers.Issue(ctx, "user-storekeeper", tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferIssued, tr.Status)
	require.Len(t, tr.Lines, 2)
	assert.Equal(t, []dto.AllocationResponse{{BatchID: a1.ID, Quantity: 30}, {BatchID: a2.ID, Quantity: 10}}, tr.Lines[0].Allocations)
	assert.Equal(t, int64(20), f.available(t, a))
	assert.Equal(t, int64(0), f.available(t, b))

	out, err := f.ledger.ListTransactions(ctx, dto.TransactionListRequest{Type: entity.TxTypeTransferOut})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)
	for _, e := range out.Transactions {
		assert.Equal(t, "TRF-2026-0001", e.Reference)
		assert.Equal(t, "to BHS Poblacion", e.Remarks)
	}

	tr, err = f.transfers.Receive(ctx, "user-nurse", tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferReceived, tr.Status)
	assert.Equal(t, "user-nurse", tr.ReceivedBy)

	_, err = f.transfers.Approve(ctx, "user-admin", tr.ID)
	assert.ErrorIs(t, err, domain.ErrValidation, "received is terminal")
}

func TestTransferIssue_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.newItem(t, "T-210", 0)
	b := f.newItem(t, "T-211", 0)
	a1 := f.receive(t, a, "A1", 50, "2027-01-01", "")
	f.receive(t, b, "B1", 5, "2027-01-01", "")

	tr, err := f.transfers.Create(ctx, "user-storekeeper", dto.CreateTransferRequest{
		DestinationUnitID: "unit-bhs-tabon",
		Lines:             []dto.TransferLineRequest{{ItemID: a, Quantity: 20}, {ItemID: b, Quantity: 8}},
	})
	require.NoError(t, err)
	_, err = f.transfers.Approve(ctx, "user-admin", tr.ID)
	require.NoError(t, err)

	_, err = f.transfers.Issue(ctx, "user-storekeeper", tr.ID)
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, b, short.ItemID)
	assert.Equal(t, int64(3), short.Shortfall())

	assert.Equal(t, int64(50), f.available(t, a), "the first line is rolled back")
	assert.Equal(t, int64(50), f.batchQty(t, a1.ID))
	got, err := f.transfers.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferApproved, got.Status)
	assert.Empty(t, got.Lines[0].Allocations)

	out, err := f.ledger.ListTransactions(ctx, dto.TransactionListRequest{Type: entity.TxTypeTransferOut})
	require.NoError(t, err)
	assert.Empty(t, out.Transactions)
}

func TestTransferCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.newItem(t, "T-220", 0)

	_, err := f.transfers.Create(ctx, "u", dto.CreateTransferRequest{DestinationUnitID: "unit-bhs-tabon"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.transfers.Create(ctx, "u", dto.CreateTransferRequest{
		DestinationUnitID: "unit-mars",
		Lines:             []dto.TransferLineRequest{{ItemID: a, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.transfers.Create(ctx, "u", dto.CreateTransferRequest{
		DestinationUnitID: "unit-bhs-tabon",
		Lines:             []dto.TransferLineRequest{{ItemID: a, Quantity: 1}, {ItemID: a, Quantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.transfers.Create(ctx, "u", dto.CreateTransferRequest{
		DestinationUnitID: "unit-bhs-tabon",
		Lines:             []dto.TransferLineRequest{{ItemID: a, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	list, err := f.transfers.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Page.Total)
}

func TestTransferIn_CreatesBatchFromSourceUnit(t *testing.T) {
	f := newFixture(t)
	a := f.newItem(t, "T-230", 0)

	out, err := f.transfers.ReceiveIncoming(context.Background(), "user-storekeeper", dto.TransferInRequest{
		SourceUnitID: "unit-bhs-malapit",
		ItemID:       a,
		LotNumber:    "RET-1",
		Quantity:     12,
		ExpiryDate:   "2027-04-30",
		Reference:    "TRF-2026-0042",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeTransferIn, out.Transaction.Type)
	assert.Equal(t, "BHS Malapit", out.Batch.Supplier)
	assert.Equal(t, "TRF-2026-0042", out.Transaction.Reference)
	assert.Equal(t, int64(12), f.available(t, a))
}
