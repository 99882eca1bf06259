package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/procurement"
	"github.com/jhoicas/rhu-inventory-api/pkg/format"
)

// ProcurementHandler maneja PR → PO → WRR → factura (protegido).
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

func (h *ProcurementHandler) listQuery(c *fiber.Ctx) (dto.ProcurementListRequest, error) {
	var in dto.ProcurementListRequest
	err := c.QueryParser(&in)
	return in, err
}

// CreatePR godoc
// @Summary      Crear solicitud de compra (borrador)
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequestRequest  true  "department, purpose, lines"
// @Success      201   {object}  dto.PurchaseRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-requests [post]
func (h *ProcurementHandler) CreatePR(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreatePR(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPR godoc
// @Summary      Obtener solicitud de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la PR"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-requests/{id} [get]
func (h *ProcurementHandler) GetPR(c *fiber.Ctx) error {
	out, err := h.uc.GetPR(c.Context(), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPRs godoc
// @Summary      Listar solicitudes de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Número"
// @Param        status      query  string  false  "draft | submitted | approved | denied"
// @Param        department  query  string  false  "Departamento"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PurchaseRequestListResponse
// @Router       /api/procurement/purchase-requests [get]
func (h *ProcurementHandler) ListPRs(c *fiber.Ctx) error {
	in, err := h.listQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListPRs(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubmitPR godoc
// @Summary      Enviar PR a aprobación
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la PR"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-requests/{id}/submit [post]
func (h *ProcurementHandler) SubmitPR(c *fiber.Ctx) error {
	out, err := h.uc.SubmitPR(c.Context(), GetUserID(c), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApprovePR godoc
// @Summary      Aprobar PR
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la PR"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-requests/{id}/approve [post]
func (h *ProcurementHandler) ApprovePR(c *fiber.Ctx) error {
	out, err := h.uc.ApprovePR(c.Context(), GetUserID(c), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DenyPR godoc
// @Summary      Rechazar PR
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la PR"
// @Param        body  body  dto.DenyRequest  true  "reason"
// @Success      200   {object}  dto.PurchaseRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-requests/{id}/deny [post]
func (h *ProcurementHandler) DenyPR(c *fiber.Ctx) error {
	var in dto.DenyRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.DenyPR(c.Context(), GetUserID(c), pathID(c, "id"), in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePO godoc
// @Summary      Crear orden de compra desde una PR aprobada
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "purchase_request_id, supplier, lines"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-orders [post]
func (h *ProcurementHandler) CreatePO(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreatePO(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPO godoc
// @Summary      Obtener orden de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la PO"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-orders/{id} [get]
func (h *ProcurementHandler) GetPO(c *fiber.Ctx) error {
	out, err := h.uc.GetPO(c.Context(), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPOs godoc
// @Summary      Listar órdenes de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Número"
// @Param        status    query  string  false  "pending | approved | delivered | cancelled"
// @Param        supplier  query  string  false  "Proveedor"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/procurement/purchase-orders [get]
func (h *ProcurementHandler) ListPOs(c *fiber.Ctx) error {
	in, err := h.listQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListPOs(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApprovePO godoc
// @Summary      Aprobar orden de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la PO"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-orders/{id}/approve [post]
func (h *ProcurementHandler) ApprovePO(c *fiber.Ctx) error {
	out, err := h.uc.ApprovePO(c.Context(), GetUserID(c), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelPO godoc
// @Summary      Cancelar orden de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la PO"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/purchase-orders/{id}/cancel [post]
func (h *ProcurementHandler) CancelPO(c *fiber.Ctx) error {
	out, err := h.uc.CancelPO(c.Context(), GetUserID(c), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateWRR godoc
// @Summary      Registrar recepción (WRR)
// @Description  Cada línea crea un lote y su asiento warehouse_receiving en la misma transacción.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceivingReportRequest  true  "purchase_order_id, lines"
// @Success      201   {object}  dto.ReceivingReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/procurement/receiving-reports [post]
func (h *ProcurementHandler) CreateWRR(c *fiber.Ctx) error {
	var in dto.CreateReceivingReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateWRR(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetWRR godoc
// @Summary      Obtener WRR
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del WRR"
// @Success      200  {object}  dto.ReceivingReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/receiving-reports/{id} [get]
func (h *ProcurementHandler) GetWRR(c *fiber.Ctx) error {
	out, err := h.uc.GetWRR(c.Context(), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListWRRs godoc
// @Summary      Listar WRR
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Número"
// @Param        supplier  query  string  false  "Proveedor"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ReceivingReportListResponse
// @Router       /api/procurement/receiving-reports [get]
func (h *ProcurementHandler) ListWRRs(c *fiber.Ctx) error {
	in, err := h.listQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListWRRs(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateInvoice godoc
// @Summary      Registrar factura de proveedor
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "receiving_report_id, invoice_number, amount, due_date"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/procurement/invoices [post]
func (h *ProcurementHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvoices godoc
// @Summary      Listar facturas de proveedor
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Número"
// @Param        status    query  string  false  "unpaid | paid"
// @Param        supplier  query  string  false  "Proveedor"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/procurement/invoices [get]
func (h *ProcurementHandler) ListInvoices(c *fiber.Ctx) error {
	in, err := h.listQuery(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ListInvoices(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PayInvoice godoc
// @Summary      Marcar factura como pagada
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/invoices/{id}/pay [post]
func (h *ProcurementHandler) PayInvoice(c *fiber.Ctx) error {
	out, err := h.uc.PayInvoice(c.Context(), pathID(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Outstanding godoc
// @Summary      Total por pagar a proveedores
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OutstandingResponse
// @Router       /api/procurement/invoices/outstanding [get]
func (h *ProcurementHandler) Outstanding(c *fiber.Ctx) error {
	total, err := h.uc.OutstandingTotal(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OutstandingResponse{Total: total, TotalDisplay: format.Peso(total)})
}
