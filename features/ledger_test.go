package features

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
)

const performer = "user-pharmacist"

type ledgerTestContext struct {
	ctx        context.Context
	repos      ports.TxRepos
	ledger     *appinv.LedgerUseCase
	items      *appinv.ItemUseCase
	itemID     string
	batches    map[string]string // lot -> batch id
	dispense   *dto.DispenseResponse
	adjustment *dto.AdjustmentResponse
	err        error
	results    []error
}

func (c *ledgerTestContext) reset(today time.Time) {
	store := memory.NewStore()
	c.ctx = context.Background()
	c.repos = store.Repositories()
	clock := ports.FixedClock{T: today}
	c.ledger = appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx:          memory.NewTxRunner(store),
		Locker:      lock.NewLocal(),
		Clock:       clock,
		Batches:     c.repos.Batches,
		Ledger:      c.repos.Transactions,
		Adjustments: c.repos.Adjustments,
	})
	c.items = appinv.NewItemUseCase(c.repos.Items, c.repos.Batches, clock)
	c.itemID = ""
	c.batches = make(map[string]string)
	c.dispense = nil
	c.adjustment = nil
	c.err = nil
	c.results = nil
}

func (c *ledgerTestContext) todayIs(day string) error {
	today, err := time.Parse(dto.DateLayout, day)
	if err != nil {
		return err
	}
	c.reset(today.Add(9 * time.Hour))
	return nil
}

func (c *ledgerTestContext) anItemWithReorderLevel(code string, reorder int64) error {
	it, err := c.items.Create(c.ctx, dto.CreateItemRequest{
		Code:         code,
		Name:         "Item " + code,
		Category:     "Medicine",
		SubType:      "supplied",
		Unit:         "tablet",
		ReorderLevel: reorder,
	})
	if err != nil {
		return err
	}
	c.itemID = it.ID
	return nil
}

func (c *ledgerTestContext) aBatchExpiringOn(lot string, qty int64, expiry string) error {
	return c.aBatchExpiringOnReceivedOn(lot, qty, expiry, "")
}

func (c *ledgerTestContext) aBatchExpiringOnReceivedOn(lot string, qty int64, expiry, received string) error {
	out, err := c.ledger.Receive(c.ctx, performer, dto.ReceiveRequest{
		ItemID:       c.itemID,
		LotNumber:    lot,
		Quantity:     qty,
		ExpiryDate:   expiry,
		ReceivedDate: received,
		Supplier:     "DOH",
		UnitCost:     decimal.RequireFromString("1.50"),
	})
	if err != nil {
		return err
	}
	c.batches[lot] = out.Batch.ID
	return nil
}

func (c *ledgerTestContext) iDispenseUnits(qty int64) error {
	c.dispense, c.err = c.ledger.Dispense(c.ctx, performer, dto.DispenseRequest{ItemID: c.itemID, Quantity: qty})
	return nil
}

func (c *ledgerTestContext) unitsAreDispensed(qty int64) error {
	if qty == 0 {
		return nil
	}
	_ = c.iDispenseUnits(qty)
	return c.theDispenseSucceeds()
}

func (c *ledgerTestContext) twoRequestsDispenseConcurrently(qty int64) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	start := make(chan struct{})
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := c.ledger.Dispense(c.ctx, performer, dto.DispenseRequest{ItemID: c.itemID, Quantity: qty})
			mu.Lock()
			c.results = append(c.results, err)
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()
	return nil
}

func (c *ledgerTestContext) iRecordAnAdjustment(adjType string, after int64, reason string) error {
	c.adjustment, c.err = c.ledger.Adjust(c.ctx, performer, dto.AdjustmentRequest{
		ItemID:        c.itemID,
		Type:          adjType,
		QuantityAfter: after,
		Reason:        reason,
	})
	return nil
}

func (c *ledgerTestContext) theDispenseSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected dispense to succeed, got %v", c.err)
	}
	return nil
}

func (c *ledgerTestContext) theDispenseFailsWithInsufficientStock(shortfall int64) error {
	var ise *domain.InsufficientStockError
	if !errors.As(c.err, &ise) {
		return fmt.Errorf("expected insufficient stock, got %v", c.err)
	}
	if ise.Shortfall() != shortfall {
		return fmt.Errorf("expected shortfall %d, got %d", shortfall, ise.Shortfall())
	}
	return nil
}

func (c *ledgerTestContext) unitsWereDrawnFromBatch(qty int64, lot string) error {
	if c.dispense == nil {
		return errors.New("no dispense recorded")
	}
	for _, a := range c.dispense.Allocations {
		if a.BatchID == c.batches[lot] {
			if a.Quantity != qty {
				return fmt.Errorf("batch %s: drew %d, expected %d", lot, a.Quantity, qty)
			}
			return nil
		}
	}
	return fmt.Errorf("nothing drawn from batch %s", lot)
}

func (c *ledgerTestContext) batchHolds(lot string, qty int64) error {
	b, err := c.repos.Batches.GetByID(c.ctx, c.batches[lot])
	if err != nil {
		return err
	}
	if b.Quantity != qty {
		return fmt.Errorf("batch %s holds %d, expected %d", lot, b.Quantity, qty)
	}
	return nil
}

func (c *ledgerTestContext) theItemHasUnitsAvailable(qty int64) error {
	it, err := c.repos.Items.GetByID(c.ctx, c.itemID)
	if err != nil {
		return err
	}
	if it.AvailableQuantity != qty {
		return fmt.Errorf("item has %d available, expected %d", it.AvailableQuantity, qty)
	}
	return nil
}

func (c *ledgerTestContext) theItemStatusIs(status string) error {
	detail, err := c.items.Get(c.ctx, c.itemID)
	if err != nil {
		return err
	}
	if detail.Item.Status != status {
		return fmt.Errorf("item status is %q, expected %q", detail.Item.Status, status)
	}
	return nil
}

func (c *ledgerTestContext) entries() ([]dto.TransactionResponse, error) {
	out, err := c.ledger.ListTransactions(c.ctx, dto.TransactionListRequest{
		ItemID:      c.itemID,
		PageRequest: dto.PageRequest{Limit: 200},
	})
	if err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

func (c *ledgerTestContext) theLedgerHasEntries(n int) error {
	list, err := c.entries()
	if err != nil {
		return err
	}
	if len(list) != n {
		return fmt.Errorf("ledger has %d entries, expected %d", len(list), n)
	}
	return nil
}

func (c *ledgerTestContext) theLastLedgerEntryGoesFromTo(beginning, ending int64) error {
	list, err := c.entries()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return errors.New("ledger is empty")
	}
	last := list[0]
	if last.BeginningQuantity != beginning || last.EndingQuantity != ending {
		return fmt.Errorf("last entry goes from %d to %d, expected %d to %d",
			last.BeginningQuantity, last.EndingQuantity, beginning, ending)
	}
	return nil
}

func (c *ledgerTestContext) theLedgerHasADispenseEntryFromTo(beginning, ending int64) error {
	list, err := c.entries()
	if err != nil {
		return err
	}
	var dispenses int
	for _, e := range list {
		if e.Type != "dispense" {
			continue
		}
		dispenses++
		if e.BeginningQuantity != beginning || e.EndingQuantity != ending {
			return fmt.Errorf("dispense entry goes from %d to %d, expected %d to %d",
				e.BeginningQuantity, e.EndingQuantity, beginning, ending)
		}
	}
	if dispenses != 1 {
		return fmt.Errorf("found %d dispense entries, expected 1", dispenses)
	}
	return nil
}

func (c *ledgerTestContext) everyEntryBalances() error {
	list, err := c.entries()
	if err != nil {
		return err
	}
	for _, e := range list {
		if e.EndingQuantity-e.BeginningQuantity != e.Quantity {
			return fmt.Errorf("entry %s: %d - %d != %d", e.Number, e.EndingQuantity, e.BeginningQuantity, e.Quantity)
		}
	}
	return nil
}

func (c *ledgerTestContext) exactlyOneRequestSucceeds() error {
	if len(c.results) != 2 {
		return fmt.Errorf("expected 2 results, got %d", len(c.results))
	}
	var ok, short int
	for _, err := range c.results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			short++
		default:
			return fmt.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || short != 1 {
		return fmt.Errorf("%d succeeded and %d ran short, expected 1 and 1", ok, short)
	}
	return nil
}

func (c *ledgerTestContext) theAdjustmentDifferenceIs(diff int64) error {
	if c.err != nil {
		return fmt.Errorf("expected adjustment to succeed, got %v", c.err)
	}
	if c.adjustment.Difference != diff {
		return fmt.Errorf("difference is %d, expected %d", c.adjustment.Difference, diff)
	}
	if c.adjustment.QuantityAfter-c.adjustment.QuantityBefore != diff {
		return errors.New("difference does not match after - before")
	}
	return nil
}

func (c *ledgerTestContext) theAdjustmentIsRejectedOnField(field string) error {
	var ve *domain.ValidationError
	if !errors.As(c.err, &ve) {
		return fmt.Errorf("expected a validation error, got %v", c.err)
	}
	if ve.Field != field {
		return fmt.Errorf("rejected on field %q, expected %q", ve.Field, field)
	}
	return nil
}

func (c *ledgerTestContext) anAdjustmentTypeIsDisplayedAs(adjType, label string) error {
	if got := inventory.DisplayAdjustmentType(adjType); got != label {
		return fmt.Errorf("type %q displays as %q, expected %q", adjType, got, label)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset(time.Now())
		return ctx, nil
	})

	// Given
	ctx.Step(`^today is "([^"]*)"$`, tc.todayIs)
	ctx.Step(`^an item "([^"]*)" with reorder level (\d+)$`, tc.anItemWithReorderLevel)
	ctx.Step(`^a batch "([^"]*)" of (\d+) units expiring on "([^"]*)"$`, tc.aBatchExpiringOn)
	ctx.Step(`^a batch "([^"]*)" of (\d+) units expiring on "([^"]*)" received on "([^"]*)"$`, tc.aBatchExpiringOnReceivedOn)

	// When
	ctx.Step(`^I dispense (\d+) units$`, tc.iDispenseUnits)
	ctx.Step(`^(\d+) units are dispensed$`, tc.unitsAreDispensed)
	ctx.Step(`^two requests dispense (\d+) units each at the same time$`, tc.twoRequestsDispenseConcurrently)
	ctx.Step(`^I record a "([^"]*)" adjustment to (\d+) units because "([^"]*)"$`, tc.iRecordAnAdjustment)

	// Then
	ctx.Step(`^the dispense succeeds$`, tc.theDispenseSucceeds)
	ctx.Step(`^the dispense fails with insufficient stock short by (\d+)$`, tc.theDispenseFailsWithInsufficientStock)
	ctx.Step(`^(\d+) units were drawn from batch "([^"]*)"$`, tc.unitsWereDrawnFromBatch)
	ctx.Step(`^batch "([^"]*)" holds (\d+) units$`, tc.batchHolds)
	ctx.Step(`^the item has (\d+) units available$`, tc.theItemHasUnitsAvailable)
	ctx.Step(`^the item status is "([^"]*)"$`, tc.theItemStatusIs)
	ctx.Step(`^the ledger has (\d+) entries$`, tc.theLedgerHasEntries)
	ctx.Step(`^the last ledger entry goes from (\d+) to (\d+)$`, tc.theLastLedgerEntryGoesFromTo)
	ctx.Step(`^the ledger has a dispense entry from (\d+) to (\d+)$`, tc.theLedgerHasADispenseEntryFromTo)
	ctx.Step(`^every ledger entry ends at its beginning plus its quantity$`, tc.everyEntryBalances)
	ctx.Step(`^exactly one request succeeds and the other fails with insufficient stock$`, tc.exactlyOneRequestSucceeds)
	ctx.Step(`^the adjustment difference is (-?\d+)$`, tc.theAdjustmentDifferenceIs)
	ctx.Step(`^the adjustment is rejected on field "([^"]*)"$`, tc.theAdjustmentIsRejectedOnField)
	ctx.Step(`^an adjustment of type "([^"]*)" is displayed as "([^"]*)"$`, tc.anAdjustmentTypeIsDisplayedAs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"ledger.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
