// Package pdf genera la tarjeta de existencias (stock card) de un item con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del item + código │ STOCK CARD + fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: categoría / unidad / reorder / estado / saldo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | N° | Tipo | Ref. | Inicial | Mov. | Final    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Saldo disponible / Valor del stock                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/rhu-inventory-api/internal/application/reports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 62}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockCardGenerator implementa reports.StockCardRenderer usando Maroto v2.
type StockCardGenerator struct {
	unitName string
}

// NewStockCardGenerator construye el generador; unitName encabeza cada tarjeta.
func NewStockCardGenerator(unitName string) *StockCardGenerator {
	return &StockCardGenerator{unitName: unitName}
}

var _ reports.StockCardRenderer = (*StockCardGenerator)(nil)

// RenderStockCard genera el PDF y devuelve sus bytes.
func (g *StockCardGenerator) RenderStockCard(_ context.Context, card reports.StockCard) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Stock Card "+card.Item.Code, true).
		WithAuthor(g.unitName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.unitName, card))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(itemRow(card))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(card.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No ledger entries.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range entryRows(card.Entries) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(card))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: unidad + item (izq) y título + fecha de generación (der).
func headerRow(unitName string, card reports.StockCard) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(unitName, "Rural Health Unit"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(card.Item.Name+" ("+card.Item.Code+")", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("STOCK CARD", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+format.Date(card.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// itemRow: datos del item y estado derivado.
func itemRow(card reports.StockCard) core.Row {
	it := card.Item
	statusColor := colorGray
	if card.Status == entity.StatusExpired || card.Status == entity.StatusOutOfStock {
		statusColor = colorRed
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New("ITEM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Category: %s   |   Unit: %s   |   Type: %s   |   Reorder level: %s",
				nonEmpty(it.Category, "-"),
				nonEmpty(it.Unit, "-"),
				nonEmpty(it.SubType, "-"),
				format.Quantity(it.ReorderLevel),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(strings.ToUpper(strings.ReplaceAll(card.Status, "_", " ")), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 5, Color: statusColor,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Txn No.", 2, align.Left),
		h("Type", 2, align.Left),
		h("Reference", 2, align.Left),
		h("Beginning", 1, align.Right),
		h("Qty", 1, align.Right),
		h("Ending", 2, align.Right),
	)
}

// entryRows: una fila por asiento del libro, en orden cronológico.
func entryRows(entries []*entity.InventoryTransaction) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		qtyColor := colorGray
		if e.Quantity < 0 {
			qtyColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(format.Date(e.CreatedAt), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.Number, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(typeLabel(e.Type), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(e.Reference, "-"), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(format.Quantity(e.BeginningQuantity), props.Text{Size: 7.5, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(signed(e.Quantity), props.Text{Size: 7.5, Align: align.Right, Top: 1, Color: qtyColor})),
			col.New(2).Add(text.New(format.Quantity(e.EndingQuantity), props.Text{
				Style: fontstyle.Bold, Size: 7.5, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: saldo disponible y valor del stock.
func totalsRow(card reports.StockCard) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Available:"),
			label("Stock value:"),
		),
		col.New(3).Add(
			value(format.Quantity(card.Item.AvailableQuantity)+" "+card.Item.Unit),
			value(format.Peso(card.StockValue)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func signed(n int64) string {
	if n > 0 {
		return "+" + format.Quantity(n)
	}
	return format.Quantity(n)
}

func typeLabel(t string) string {
	switch t {
	case entity.TxTypeWarehouseReceiving:
		return "Receiving"
	case entity.TxTypeDispense:
		return "Dispense"
	case entity.TxTypeTransferOut:
		return "Transfer out"
	case entity.TxTypeTransferIn:
		return "Transfer in"
	case entity.TxTypeAdjustment:
		return "Adjustment"
	case entity.TxTypeDisposal:
		return "Disposal"
	}
	return t
}
