package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rhu-inventory-api/internal/application/reports"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler sirve los reportes descargables.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryXLSX godoc
// @Summary      Exportar inventario (XLSX)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *fiber.Ctx) error {
	data, name, err := h.uc.InventoryWorkbook(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, mimeXLSX, name, data)
}

// StockCardPDF godoc
// @Summary      Tarjeta de existencias de un item (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        itemId  path  string  true  "ID del item"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-card/{itemId}.pdf [get]
func (h *ReportHandler) StockCardPDF(c *fiber.Ctx) error {
	data, name, err := h.uc.StockCardPDF(c.Context(), pathID(c, "itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, mimePDF, name, data)
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
