package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// InventoryRow is one line of the inventory export.
type InventoryRow struct {
	Code          string
	Name          string
	Category      string
	SubType       string
	Unit          string
	Available     int64
	Total         int64
	ReorderLevel  int64
	Status        string
	NearestExpiry *time.Time
	StockValue    decimal.Decimal
}

// StockCard is the ledger of one item in chronological order.
type StockCard struct {
	Item        *entity.InventoryItem
	Status      string
	Entries     []*entity.InventoryTransaction
	StockValue  decimal.Decimal
	GeneratedAt time.Time
}

// InventoryExporter renders the inventory listing as a spreadsheet.
type InventoryExporter interface {
	ExportInventory(ctx context.Context, rows []InventoryRow, generatedAt time.Time) ([]byte, error)
}

// StockCardRenderer renders a stock card as a PDF.
type StockCardRenderer interface {
	RenderStockCard(ctx context.Context, card StockCard) ([]byte, error)
}
