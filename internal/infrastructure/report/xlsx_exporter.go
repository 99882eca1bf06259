// Package report renders downloadable reports: the inventory workbook (excelize).
package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/rhu-inventory-api/internal/application/reports"
	"github.com/jhoicas/rhu-inventory-api/pkg/format"
)

// InventorySheet is the name of the data sheet of the workbook.
const InventorySheet = "Inventory"

var inventoryHeader = []interface{}{
	"Code", "Name", "Category", "Type", "Unit",
	"Available", "Total", "Reorder level", "Status", "Nearest expiry", "Stock value",
}

// XLSXExporter implements reports.InventoryExporter with excelize.
type XLSXExporter struct{}

// NewXLSXExporter builds the exporter.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

var _ reports.InventoryExporter = (*XLSXExporter)(nil)

// ExportInventory writes one row per item after a header row; the last row carries the generation date.
func (e *XLSXExporter) ExportInventory(_ context.Context, rows []reports.InventoryRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), InventorySheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(InventorySheet, "A1", &inventoryHeader); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	if err := f.SetCellStyle(InventorySheet, "A1", "K1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: header style: %w", err)
	}

	line := 2
	for _, r := range rows {
		expiry := ""
		if r.NearestExpiry != nil {
			expiry = format.Date(*r.NearestExpiry)
		}
		excelRow := []interface{}{
			r.Code,
			r.Name,
			r.Category,
			r.SubType,
			r.Unit,
			r.Available,
			r.Total,
			r.ReorderLevel,
			r.Status,
			expiry,
			format.Peso(r.StockValue),
		}
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return nil, fmt.Errorf("xlsx: cell: %w", err)
		}
		if err := f.SetSheetRow(InventorySheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", line, err)
		}
		line++
	}

	cell, err := excelize.CoordinatesToCellName(1, line+1)
	if err != nil {
		return nil, fmt.Errorf("xlsx: cell: %w", err)
	}
	if err := f.SetCellValue(InventorySheet, cell, "Generated "+format.Date(generatedAt)); err != nil {
		return nil, fmt.Errorf("xlsx: footer: %w", err)
	}
	if err := f.SetColWidth(InventorySheet, "B", "B", 36); err != nil {
		return nil, fmt.Errorf("xlsx: width: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
