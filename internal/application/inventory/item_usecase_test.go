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

func TestItemCreate_StartsEmptyAndOutOfStock(t *testing.T) {
	f := newFixture(t)

	it, err := f.items.Create(context.Background(), dto.CreateItemRequest{
		Code: " MED-100 ", Name: "Cetirizine 10mg", SubType: entity.SubTypeDonated, Unit: "tablet", ReorderLevel: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "MED-100", it.Code)
	assert.Zero(t, it.TotalQuantity)
	assert.Zero(t, it.AvailableQuantity)
	assert.Equal(t, entity.StatusOutOfStock, it.Status)

	_, err = f.items.Create(context.Background(), dto.CreateItemRequest{
		Code: "med-100", Name: "Other", SubType: entity.SubTypeSupplied, Unit: "tablet",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemCreate_Validation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]dto.CreateItemRequest{
		"code":     {Name: "x", Unit: "u", SubType: entity.SubTypeSupplied},
		"name":     {Code: "x", Unit: "u", SubType: entity.SubTypeSupplied},
		"unit":     {Code: "x", Name: "x", SubType: entity.SubTypeSupplied},
		"sub_type": {Code: "x", Name: "x", Unit: "u", SubType: "bought"},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := f.items.Create(context.Background(), in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestItemUpdate_LeavesQuantitiesAlone(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-100", 10)
	f.receive(t, id, "B1", 40, "2027-08-01", "")

	name, reorder := "Renamed", int64(60)
	it, err := f.items.Update(context.Background(), id, dto.UpdateItemRequest{Name: &name, ReorderLevel: &reorder})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", it.Name)
	assert.Equal(t, int64(40), it.AvailableQuantity)
	assert.Equal(t, entity.StatusLowStock, it.Status, "status follows the new reorder level")

	_, err = f.items.Update(context.Background(), "missing", dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemGet_ValuationAndBatchStatus(t *testing.T) {
	f := newFixture(t)
	id := f.newItem(t, "T-101", 0)
	f.receive(t, id, "SOON", 10, "2026-12-01", "")
	f.receive(t, id, "LATER", 30, "2028-01-01", "")

	detail, err := f.items.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExpiringSoon, detail.Item.Status)
	require.NotNil(t, detail.Item.NearestExpiry)
	assert.Equal(t, "2026-12-01", detail.Item.NearestExpiry.Format(dto.DateLayout))

	require.Len(t, detail.Batches, 2)
	assert.Equal(t, "SOON", detail.Batches[0].LotNumber)
	assert.Equal(t, entity.StatusExpiringSoon, detail.Batches[0].Status)
	assert.Equal(t, 47, detail.Batches[0].DaysUntilExpiry)
	assert.Equal(t, entity.StatusActive, detail.Batches[1].Status)
	assert.Equal(t, "100", detail.StockValue.String())
	assert.Equal(t, "2.5", detail.AverageUnitCost.String())
}

func TestItemList_FiltersByDerivedStatus(t *testing.T) {
	f := newFixture(t)

	cases := map[string]string{
		entity.StatusExpired:      "MED-003",
		entity.StatusExpiringSoon: "MED-002",
		entity.StatusLowStock:     "MED-004",
		entity.StatusOutOfStock:   "SUP-002",
	}
	for status, code := range cases {
		t.Run(status, func(t *testing.T) {
			out, err := f.items.List(context.Background(), dto.ItemListRequest{Status: status})
			require.NoError(t, err)
			require.Len(t, out.Items, 1)
			assert.Equal(t, code, out.Items[0].Code)
			assert.Equal(t, 1, out.Page.Total)
		})
	}

	active, err := f.items.List(context.Background(), dto.ItemListRequest{Status: entity.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, 3, active.Page.Total)

	_, err = f.items.List(context.Background(), dto.ItemListRequest{Status: "recalled"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItemList_SearchAndPaging(t *testing.T) {
	f := newFixture(t)

	out, err := f.items.List(context.Background(), dto.ItemListRequest{Search: "med-00"})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Page.Total)

	page, err := f.items.List(context.Background(), dto.ItemListRequest{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Page.Total)
	assert.Len(t, page.Items, 1)
}
