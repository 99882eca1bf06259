package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────────────────────
// Receive
// ─────────────────────────────────────────────────────────────────────────────

func TestReceive_CreatesBatchAndEntry(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-001", 10)

	out, err := f.ledger.Receive(context.Background(), "user-storekeeper", dto.ReceiveRequest{
		ItemID:     id,
		LotNumber:  "L-1",
		Quantity:   100,
		ExpiryDate: "2027-06-30",
		WRRNumber:  "WRR-2026-0009",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), out.Batch.Quantity)
	assert.Equal(t, "2027-06-30", out.Batch.ExpiryDate)
	assert.Equal(t, entity.StatusActive, out.Batch.Status)
	assert.Equal(t, entity.TxTypeWarehouseReceiving, out.Transaction.Type)
	assert.Equal(t, int64(0), out.Transaction.BeginningQuantity)
	assert.Equal(t, int64(100), out.Transaction.EndingQuantity)
	assert.Equal(t, "WRR-2026-0009", out.Transaction.Reference)
	assert.Regexp(t, `^TXN-20261015-\d{6}$`, out.Transaction.Number)
	assert.Equal(t, int64(100), f.available(t, id))
}

func TestReceive_Validation(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-002", 0)

	cases := []struct {
		name string
		in   dto.ReceiveRequest
		want error
	}{
		{"zero quantity", dto.ReceiveRequest{ItemID: id, LotNumber: "L", ExpiryDate: "2027-01-01"}, domain.ErrInvalidQuantity},
		{"missing lot", dto.ReceiveRequest{ItemID: id, Quantity: 5, ExpiryDate: "2027-01-01"}, domain.ErrValidation},
		{"bad expiry", dto.ReceiveRequest{ItemID: id, LotNumber: "L", Quantity: 5, ExpiryDate: "01/01/2027"}, domain.ErrValidation},
		{"unknown item", dto.ReceiveRequest{ItemID: "nope", LotNumber: "L", Quantity: 5, ExpiryDate: "2027-01-01"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Receive(context.Background(), "user-storekeeper", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int64(0), f.available(t, id))
}

// ─────────────────────────────────────────────────────────────────────────────
// Dispense (FEFO)
// ─────────────────────────────────────────────────────────────────────────────

func TestDispense_DrawsEarliestExpiryFirst(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-010", 0)
	late := f.receive(t, id, "B2", 50, "2027-03-31", "2026-01-10")
	early := f.receive(t, id, "B1", 100, "2027-01-31", "2026-02-10")

	out, err := f.ledger.Dispense(context.Background(), "user-pharmacist", dto.DispenseRequest{
		ItemID:    id,
		Quantity:  120,
		PatientID: "patient-1",
	})
	require.NoError(t, err)

	require.Len(t, out.Allocations, 2)
	assert.Equal(t, dto.AllocationResponse{BatchID: early.ID, Quantity: 100}, out.Allocations[0])
	assert.Equal(t, dto.AllocationResponse{BatchID: late.ID, Quantity: 20}, out.Allocations[1])
	assert.Equal(t, int64(0), f.batchQty(t, early.ID))
	assert.Equal(t, int64(30), f.batchQty(t, late.ID))

	assert.Equal(t, int64(-120), out.Transaction.Quantity)
	assert.Equal(t, int64(150), out.Transaction.BeginningQuantity)
	assert.Equal(t, int64(30), out.Transaction.EndingQuantity)
	assert.Equal(t, "PT-2026-0001", out.Transaction.Reference)
	assert.Empty(t, out.Transaction.BatchID, "multi-batch draws carry no single batch")
	assert.Equal(t, int64(30), f.available(t, id))

	detail, err := f.items.Get(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, detail.Batches, 2)
	assert.Equal(t, "B2", detail.Batches[0].LotNumber)
	assert.Equal(t, entity.StatusDepleted, detail.Batches[1].Status)
}

func TestDispense_InsufficientStockLeavesEverythingUnchanged(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-011", 0)
	b1 := f.receive(t, id, "B1", 100, "2027-01-31", "")
	b2 := f.receive(t, id, "B2", 50, "2027-03-31", "")
	_, before, err := f.repos.Transactions.List(context.Background(), txFilter(id))
	require.NoError(t, err)

	_, err = f.ledger.Dispense(context.Background(), "user-pharmacist", dto.DispenseRequest{ItemID: id, Quantity: 500})

	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, int64(500), short.Requested)
	assert.Equal(t, int64(150), short.Available)
	assert.Equal(t, int64(350), short.Shortfall())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(150), f.available(t, id))
	assert.Equal(t, int64(100), f.batchQty(t, b1.ID))
	assert.Equal(t, int64(50), f.batchQty(t, b2.ID))
	_, after, err := f.repos.Transactions.List(context.Background(), txFilter(id))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDispense_RejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-012", 0)
	f.receive(t, id, "B1", 10, "2027-01-31", "")

	for _, q := range []int64{0, -5} {
		_, err := f.ledger.Dispense(context.Background(), "user-pharmacist", dto.DispenseRequest{ItemID: id, Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Equal(t, int64(10), f.available(t, id))
}

func TestDispense_ExpiredBatchesRemainEligible(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-013", 0)
	expired := f.receive(t, id, "OLD", 5, "2026-09-30", "")
	f.receive(t, id, "NEW", 5, "2027-09-30", "")

	out, err := f.ledger.Dispense(context.Background(), "user-pharmacist", dto.DispenseRequest{ItemID: id, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, out.Allocations, 1)
	assert.Equal(t, expired.ID, out.Allocations[0].BatchID)
	assert.Equal(t, expired.ID, out.Transaction.BatchID)
}

func TestDispense_ConcurrentDrawsNeverOversell(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-014", 0)
	f.receive(t, id, "B1", 100, "2027-01-31", "")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Dispense(context.Background(), "user-pharmacist", dto.DispenseRequest{ItemID: id, Quantity: 60})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var ok, short int
	for _, err := range errs {
		var ise *domain.InsufficientStockError
		switch {
		case err == nil:
			ok++
		case errors.As(err, &ise):
			short++
			assert.Equal(t, int64(40), ise.Available)
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)
	assert.Equal(t, int64(40), f.available(t, id))
}

// ─────────────────────────────────────────────────────────────────────────────
// Dispose
// ─────────────────────────────────────────────────────────────────────────────

func TestDispose_RemovesFromTheNamedBatch(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-020", 0)
	b1 := f.receive(t, id, "B1", 40, "2026-09-01", "")
	b2 := f.receive(t, id, "B2", 60, "2027-09-01", "")

	txn, err := f.ledger.Dispose(context.Background(), "user-pharmacist", dto.DisposeRequest{
		BatchID: b2.ID, Quantity: 10, Reason: "vials cracked",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TxTypeDisposal, txn.Type)
	assert.Equal(t, b2.ID, txn.BatchID)
	assert.Equal(t, int64(100), txn.BeginningQuantity)
	assert.Equal(t, int64(90), txn.EndingQuantity)
	assert.Equal(t, "vials cracked", txn.Remarks)
	assert.Equal(t, int64(40), f.batchQty(t, b1.ID), "FEFO does not apply to disposals")
	assert.Equal(t, int64(50), f.batchQty(t, b2.ID))
}

func TestDispose_Rejections(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-021", 0)
	b := f.receive(t, id, "B1", 5, "2027-01-01", "")

	_, err := f.ledger.Dispose(context.Background(), "u", dto.DisposeRequest{BatchID: b.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.ledger.Dispose(context.Background(), "u", dto.DisposeRequest{BatchID: b.ID, Quantity: 6, Reason: "expired"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.ledger.Dispose(context.Background(), "u", dto.DisposeRequest{BatchID: "missing", Quantity: 1, Reason: "expired"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(5), f.batchQty(t, b.ID))
}

// ─────────────────────────────────────────────────────────────────────────────
// Adjust
// ─────────────────────────────────────────────────────────────────────────────

func TestAdjust_DecreaseWithoutBatchDrawsFEFO(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-030", 0)
	early := f.receive(t, id, "B1", 30, "2027-01-01", "")
	late := f.receive(t, id, "B2", 70, "2027-06-01", "")

	adj, err := f.ledger.Adjust(context.Background(), "user-storekeeper", dto.AdjustmentRequest{
		ItemID: id, Type: entity.AdjustmentPhysicalCount, QuantityAfter: 80, Reason: "quarterly count",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), adj.QuantityBefore)
	assert.Equal(t, int64(80), adj.QuantityAfter)
	assert.Equal(t, int64(-20), adj.Difference)
	assert.Equal(t, "Physical Count", adj.TypeLabel)
	assert.Equal(t, "ADJ-2026-0001", adj.Number)
	assert.Equal(t, early.ID, adj.BatchID)
	assert.NotEmpty(t, adj.TransactionID)
	assert.Equal(t, int64(10), f.batchQty(t, early.ID))
	assert.Equal(t, int64(70), f.batchQty(t, late.ID))
	assert.Equal(t, int64(80), f.available(t, id))

	txn, err := f.repos.Transactions.GetByID(context.Background(), adj.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeAdjustment, txn.Type)
	assert.Equal(t, int64(-20), txn.Quantity)
}

func TestAdjust_IncreaseNeedsBatch(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-031", 0)
	b := f.receive(t, id, "B1", 10, "2027-01-01", "")

	_, err := f.ledger.Adjust(context.Background(), "u", dto.AdjustmentRequest{
		ItemID: id, Type: entity.AdjustmentCorrection, QuantityAfter: 12, Reason: "miscount",
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "batch_id", verr.Field)

	adj, err := f.ledger.Adjust(context.Background(), "u", dto.AdjustmentRequest{
		ItemID: id, BatchID: b.ID, Type: entity.AdjustmentCorrection, QuantityAfter: 12, Reason: "miscount",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), adj.Difference)
	assert.Equal(t, int64(12), f.batchQty(t, b.ID))
	assert.Equal(t, int64(12), f.available(t, id))
}

func TestAdjust_Rejections(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-032", 0)
	other := f.newItem(t, "T-033", 0)
	b := f.receive(t, id, "B1", 10, "2027-01-01", "")
	ob := f.receive(t, other, "O1", 10, "2027-01-01", "")

	cases := []struct {
		name string
		in   dto.AdjustmentRequest
		want error
	}{
		{"no change", dto.AdjustmentRequest{ItemID: id, Type: entity.AdjustmentOther, QuantityAfter: 10, Reason: "x"}, domain.ErrValidation},
		{"missing reason", dto.AdjustmentRequest{ItemID: id, Type: entity.AdjustmentOther, QuantityAfter: 9}, domain.ErrValidation},
		{"unknown type", dto.AdjustmentRequest{ItemID: id, Type: "location_transfer", QuantityAfter: 9, Reason: "x"}, domain.ErrValidation},
		{"negative", dto.AdjustmentRequest{ItemID: id, Type: entity.AdjustmentOther, QuantityAfter: -1, Reason: "x"}, domain.ErrInvalidQuantity},
		{"foreign batch", dto.AdjustmentRequest{ItemID: id, BatchID: ob.ID, Type: entity.AdjustmentDamage, QuantityAfter: 9, Reason: "x"}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Adjust(context.Background(), "u", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int64(10), f.batchQty(t, b.ID))

	list, err := f.ledger.ListAdjustments(context.Background(), id, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Adjustments)
}

func TestAdjust_ShortBatchesAreReportedAsRejection(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-034", 0)
	b := f.receive(t, id, "B1", 10, "2027-01-01", "")
	// Los lotes cubren menos que el disponible del item: la baja FEFO no alcanza.
	require.NoError(t, f.repos.Batches.UpdateQuantity(context.Background(), b.ID, 2))

	obs := &rejections{}
	_, err := f.observedLedger(obs).Adjust(context.Background(), "u", dto.AdjustmentRequest{
		ItemID:        id,
		Type:          entity.AdjustmentPhysicalCount,
		QuantityAfter: 5,
		Reason:        "conteo",
	})

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, int64(5), ise.Requested)
	assert.Equal(t, int64(2), ise.Available)
	assert.Equal(t, []string{"adjustment:insufficient_stock"}, obs.seen)
	assert.Equal(t, int64(10), f.available(t, id))
	assert.Equal(t, int64(2), f.batchQty(t, b.ID))
}

// ─────────────────────────────────────────────────────────────────────────────
// Ledger listing
// ─────────────────────────────────────────────────────────────────────────────

func TestListTransactions_NewestFirstWithContinuousBalances(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-040", 0)
	f.receive(t, id, "B1", 100, "2027-01-01", "")
	_, err := f.ledger.Dispense(context.Background(), "u", dto.DispenseRequest{ItemID: id, Quantity: 30})
	require.NoError(t, err)
	f.receive(t, id, "B2", 20, "2027-02-01", "")

	out, err := f.ledger.ListTransactions(context.Background(), dto.TransactionListRequest{ItemID: id})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 3)
	assert.Equal(t, 3, out.Page.Total)

	entries := out.Transactions
	for i := range entries {
		e := entries[i]
		assert.Equal(t, e.BeginningQuantity+e.Quantity, e.EndingQuantity)
		if i+1 < len(entries) {
			assert.Equal(t, entries[i+1].EndingQuantity, e.BeginningQuantity, "each entry starts where the previous ended")
		}
	}
	assert.Equal(t, int64(90), entries[0].EndingQuantity)

	_, err = f.ledger.ListTransactions(context.Background(), dto.TransactionListRequest{Type: "theft"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	day, err := f.ledger.ListTransactions(context.Background(), dto.TransactionListRequest{
		ItemID: id, From: "2026-10-15", To: "2026-10-15",
	})
	require.NoError(t, err)
	assert.Len(t, day.Transactions, 3, "the to-date is inclusive")
}
