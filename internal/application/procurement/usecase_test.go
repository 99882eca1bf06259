package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/application/procurement"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
)

type fixture struct {
	repos ports.TxRepos
	uc    *procurement.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	tx := memory.NewTxRunner(store)
	ledger := appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx:          tx,
		Locker:      lock.NewLocal(),
		Clock:       ports.FixedClock{T: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)},
		Batches:     repos.Batches,
		Ledger:      repos.Transactions,
		Adjustments: repos.Adjustments,
	})
	require.NoError(t, memory.SeedDemo(context.Background(), store, ledger))
	return &fixture{
		repos: repos,
		uc: procurement.NewUseCase(ledger, tx, repos.PurchaseRequests, repos.PurchaseOrders,
			repos.ReceivingReports, repos.Invoices),
	}
}

func (f *fixture) approvedPR(t *testing.T) *dto.PurchaseRequestResponse {
	t.Helper()
	ctx := context.Background()
	pr, err := f.uc.CreatePR(ctx, "user-procurement", dto.CreatePurchaseRequestRequest{
		Department: "Pharmacy",
		Purpose:    "Q2 replenishment",
		Lines: []dto.PRLineRequest{
			{ItemID: "item-syringe", Description: "Disposable Syringe 3mL", Unit: "piece", Quantity: 500, EstimatedUnitCost: decimal.RequireFromString("4.50")},
			{Description: "Zinc sulfate syrup", Unit: "bottle", Quantity: 20, EstimatedUnitCost: decimal.RequireFromString("85")},
		},
	})
	require.NoError(t, err)
	_, err = f.uc.SubmitPR(ctx, "user-procurement", pr.ID)
	require.NoError(t, err)
	pr, err = f.uc.ApprovePR(ctx, "user-admin", pr.ID)
	require.NoError(t, err)
	return pr
}

func (f *fixture) approvedPO(t *testing.T) *dto.PurchaseOrderResponse {
	t.Helper()
	ctx := context.Background()
	pr := f.approvedPR(t)
	po, err := f.uc.CreatePO(ctx, "user-procurement", dto.CreatePurchaseOrderRequest{
		PurchaseRequestID: pr.ID,
		Supplier:          "Medline Philippines",
		Lines: []dto.POLineRequest{
			{ItemID: "item-syringe", Quantity: 500, UnitCost: decimal.RequireFromString("4.25")},
			{ItemID: "item-gauze", Quantity: 10, UnitCost: decimal.RequireFromString("44")},
		},
	})
	require.NoError(t, err)
	po, err = f.uc.ApprovePO(ctx, "user-admin", po.ID)
	require.NoError(t, err)
	return po
}

// ─────────────────────────────────────────────────────────────────────────────
// Purchase requests
// ─────────────────────────────────────────────────────────────────────────────

func TestPR_SubmitApprove(t *testing.T) {
	f := newFixture(t)
	pr := f.approvedPR(t)

	assert.Equal(t, "PR-2026-0001", pr.PRNumber)
	assert.Equal(t, entity.PRApproved, pr.Status)
	assert.Equal(t, "user-admin", pr.ApprovedBy)
	assert.Equal(t, "3950", pr.EstimatedTotal.String())
}

func TestPR_DenyNeedsReasonAndSubmittedState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pr, err := f.uc.CreatePR(ctx, "user-procurement", dto.CreatePurchaseRequestRequest{
		Department: "Pharmacy",
		Lines:      []dto.PRLineRequest{{Description: "Cotton balls", Unit: "pack", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.uc.DenyPR(ctx, "user-admin", pr.ID, "over budget")
	assert.ErrorIs(t, err, domain.ErrValidation, "drafts cannot be denied")

	_, err = f.uc.SubmitPR(ctx, "user-procurement", pr.ID)
	require.NoError(t, err)
	_, err = f.uc.DenyPR(ctx, "user-admin", pr.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	denied, err := f.uc.DenyPR(ctx, "user-admin", pr.ID, "over budget")
	require.NoError(t, err)
	assert.Equal(t, entity.PRDenied, denied.Status)
	assert.Equal(t, "over budget", denied.DenialReason)

	_, err = f.uc.ApprovePR(ctx, "user-admin", pr.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPR_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreatePR(ctx, "u", dto.CreatePurchaseRequestRequest{
		Lines: []dto.PRLineRequest{{Description: "x", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.CreatePR(ctx, "u", dto.CreatePurchaseRequestRequest{Department: "Pharmacy"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.CreatePR(ctx, "u", dto.CreatePurchaseRequestRequest{
		Department: "Pharmacy",
		Lines:      []dto.PRLineRequest{{Description: "x", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ─────────────────────────────────────────────────────────────────────────────
// Purchase orders
// ─────────────────────────────────────────────────────────────────────────────

func TestPO_RequiresApprovedPR(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pr, err := f.uc.CreatePR(ctx, "u", dto.CreatePurchaseRequestRequest{
		Department: "Pharmacy",
		Lines:      []dto.PRLineRequest{{Description: "x", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.CreatePO(ctx, "u", dto.CreatePurchaseOrderRequest{
		PurchaseRequestID: pr.ID,
		Supplier:          "Unilab",
		Lines:             []dto.POLineRequest{{ItemID: "item-paracetamol", Quantity: 10, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := f.uc.ListPOs(ctx, dto.ProcurementListRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Page.Total)
}

func TestPO_CancelOnlyBeforeDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.approvedPO(t)
	assert.Equal(t, "PO-2026-0001", po.PONumber)
	assert.Equal(t, "2565", po.TotalAmount.String())

	cancelled, err := f.uc.CancelPO(ctx, "user-admin", po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POCancelled, cancelled.Status)

	_, err = f.uc.CreateWRR(ctx, "user-storekeeper", dto.CreateReceivingReportRequest{
		PurchaseOrderID: po.ID,
		Lines:           []dto.WRRLineRequest{{ItemID: "item-syringe", LotNumber: "S-1", Quantity: 1, ExpiryDate: "2030-01-01"}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ─────────────────────────────────────────────────────────────────────────────
// Receiving reports and invoices
// ─────────────────────────────────────────────────────────────────────────────

func TestWRR_PostsBatchesThroughTheLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.approvedPO(t)

	wrr, err := f.uc.CreateWRR(ctx, "user-storekeeper", dto.CreateReceivingReportRequest{
		PurchaseOrderID: po.ID,
		ReceivedDate:    "2026-03-01",
		Lines: []dto.WRRLineRequest{
			{ItemID: "item-syringe", LotNumber: "SYR-2603", Quantity: 500, ExpiryDate: "2031-02-28", UnitCost: decimal.RequireFromString("4.25")},
			{ItemID: "item-gauze", LotNumber: "GZ-2603", Quantity: 10, ExpiryDate: "2029-12-31", UnitCost: decimal.RequireFromString("44")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "WRR-2026-0001", wrr.WRRNumber)
	assert.Equal(t, "Medline Philippines", wrr.Supplier)
	assert.Equal(t, "2026-03-01", wrr.ReceivedDate)
	require.Len(t, wrr.Lines, 2)
	assert.NotEmpty(t, wrr.Lines[0].BatchID)

	batch, err := f.repos.Batches.GetByID(ctx, wrr.Lines[0].BatchID)
	require.NoError(t, err)
	assert.Equal(t, "WRR-2026-0001", batch.WRRNumber)
	assert.Equal(t, "Medline Philippines", batch.Supplier)
	assert.Equal(t, int64(500), batch.Quantity)

	syringe, err := f.repos.Items.GetByID(ctx, "item-syringe")
	require.NoError(t, err)
	assert.Equal(t, int64(500), syringe.AvailableQuantity)

	delivered, err := f.uc.GetPO(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PODelivered, delivered.Status)

	_, err = f.uc.CreateWRR(ctx, "user-storekeeper", dto.CreateReceivingReportRequest{
		PurchaseOrderID: po.ID,
		Lines:           []dto.WRRLineRequest{{ItemID: "item-syringe", LotNumber: "X", Quantity: 1, ExpiryDate: "2031-01-01"}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "a delivered order cannot be received twice")

	inv, err := f.uc.CreateInvoice(ctx, "user-procurement", dto.CreateInvoiceRequest{ReceivingReportID: wrr.ID, DueDate: "2026-04-01"})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", inv.InvoiceNumber)
	assert.Equal(t, "2565", inv.Amount.String())
	assert.Equal(t, "₱2,565.00", inv.AmountDisplay)
	assert.Equal(t, entity.InvoiceUnpaid, inv.Status)

	outstanding, err := f.uc.OutstandingTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2565", outstanding.String())

	paid, err := f.uc.PayInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = f.uc.PayInvoice(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	outstanding, err = f.uc.OutstandingTotal(ctx)
	require.NoError(t, err)
	assert.True(t, outstanding.IsZero())
}

func TestWRR_LineNotOnOrderRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.approvedPO(t)

	_, err := f.uc.CreateWRR(ctx, "user-storekeeper", dto.CreateReceivingReportRequest{
		PurchaseOrderID: po.ID,
		Lines: []dto.WRRLineRequest{
			{ItemID: "item-syringe", LotNumber: "SYR-1", Quantity: 500, ExpiryDate: "2031-02-28", UnitCost: decimal.NewFromInt(4)},
			{ItemID: "item-paracetamol", LotNumber: "PCM-X", Quantity: 5, ExpiryDate: "2028-01-01", UnitCost: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	syringe, err := f.repos.Items.GetByID(ctx, "item-syringe")
	require.NoError(t, err)
	assert.Zero(t, syringe.AvailableQuantity)
	got, err := f.uc.GetPO(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POApproved, got.Status)

	list, err := f.uc.ListWRRs(ctx, dto.ProcurementListRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Page.Total)
}

func TestInvoice_DuplicateSupplierNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.approvedPO(t)
	wrr, err := f.uc.CreateWRR(ctx, "user-storekeeper", dto.CreateReceivingReportRequest{
		PurchaseOrderID: po.ID,
		Lines:           []dto.WRRLineRequest{{ItemID: "item-gauze", LotNumber: "G", Quantity: 10, ExpiryDate: "2029-01-01", UnitCost: decimal.NewFromInt(44)}},
	})
	require.NoError(t, err)

	amount := decimal.RequireFromString("430.50")
	inv, err := f.uc.CreateInvoice(ctx, "u", dto.CreateInvoiceRequest{ReceivingReportID: wrr.ID, InvoiceNumber: "SI-88812", Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "SI-88812", inv.InvoiceNumber)
	assert.Equal(t, "₱430.50", inv.AmountDisplay)

	_, err = f.uc.CreateInvoice(ctx, "u", dto.CreateInvoiceRequest{ReceivingReportID: wrr.ID, InvoiceNumber: "SI-88812"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := f.uc.ListInvoices(ctx, dto.ProcurementListRequest{Supplier: "medline"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}
