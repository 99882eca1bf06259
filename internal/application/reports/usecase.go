// Package reports builds the downloadable inventory workbook and item stock cards.
package reports

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// UseCase genera los reportes descargables.
type UseCase struct {
	items        repository.ItemRepository
	batches      repository.BatchRepository
	transactions repository.TransactionRepository
	clock        ports.Clock
	exporter     InventoryExporter
	renderer     StockCardRenderer
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	items repository.ItemRepository,
	batches repository.BatchRepository,
	transactions repository.TransactionRepository,
	clock ports.Clock,
	exporter InventoryExporter,
	renderer StockCardRenderer,
) *UseCase {
	return &UseCase{
		items:        items,
		batches:      batches,
		transactions: transactions,
		clock:        clock,
		exporter:     exporter,
		renderer:     renderer,
	}
}

// InventoryWorkbook exporta el catálogo completo con estado derivado y vencimiento más próximo.
func (uc *UseCase) InventoryWorkbook(ctx context.Context) (data []byte, filename string, err error) {
	now := uc.clock.Now()
	items, _, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("reports: list items: %w", err)
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	batches, err := uc.batches.ListByItems(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("reports: list batches: %w", err)
	}
	rows := make([]InventoryRow, 0, len(items))
	for _, it := range items {
		bs := batches[it.ID]
		rows = append(rows, InventoryRow{
			Code:          it.Code,
			Name:          it.Name,
			Category:      it.Category,
			SubType:       it.SubType,
			Unit:          it.Unit,
			Available:     it.AvailableQuantity,
			Total:         it.TotalQuantity,
			ReorderLevel:  it.ReorderLevel,
			Status:        inventory.DeriveItemStatus(it.AvailableQuantity, it.ReorderLevel, inventory.ExpiriesOf(bs), now),
			NearestExpiry: inventory.NearestExpiry(bs),
			StockValue:    inventory.StockValue(bs),
		})
	}
	data, err = uc.exporter.ExportInventory(ctx, rows, now)
	if err != nil {
		return nil, "", fmt.Errorf("reports: export inventory: %w", err)
	}
	return data, fmt.Sprintf("inventory-%s.xlsx", now.Format("20060102")), nil
}

// StockCardPDF genera la tarjeta de existencias de un item: cada asiento con saldo inicial y final.
func (uc *UseCase) StockCardPDF(ctx context.Context, itemID string) (data []byte, filename string, err error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, "", err
	}
	bs, err := uc.batches.ListByItem(ctx, itemID)
	if err != nil {
		return nil, "", fmt.Errorf("reports: list batches: %w", err)
	}
	entries, _, err := uc.transactions.List(ctx, repository.TransactionFilter{ItemID: itemID})
	if err != nil {
		return nil, "", fmt.Errorf("reports: list ledger: %w", err)
	}
	// List returns newest first; a stock card reads oldest first.
	slices.Reverse(entries)

	now := uc.clock.Now()
	data, err = uc.renderer.RenderStockCard(ctx, StockCard{
		Item:        item,
		Status:      inventory.DeriveItemStatus(item.AvailableQuantity, item.ReorderLevel, inventory.ExpiriesOf(bs), now),
		Entries:     entries,
		StockValue:  inventory.StockValue(bs),
		GeneratedAt: now,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reports: render stock card: %w", err)
	}
	return data, fmt.Sprintf("stock-card-%s.pdf", item.Code), nil
}
