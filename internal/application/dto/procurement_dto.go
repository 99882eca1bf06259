package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcurementListRequest query común de los listados de compras.
type ProcurementListRequest struct {
	Search     string `query:"search"`
	Status     string `query:"status"`
	Department string `query:"department"`
	Supplier   string `query:"supplier"`
	PageRequest
}

// PRLineRequest one requested line.
type PRLineRequest struct {
	ItemID            string          `json:"item_id,omitempty"`
	Description       string          `json:"description"`
	Unit              string          `json:"unit"`
	Quantity          int64           `json:"quantity"`
	EstimatedUnitCost decimal.Decimal `json:"estimated_unit_cost"`
}

// CreatePurchaseRequestRequest body para POST /api/procurement/purchase-requests.
type CreatePurchaseRequestRequest struct {
	Department string          `json:"department"`
	Purpose    string          `json:"purpose"`
	Lines      []PRLineRequest `json:"lines"`
}

// DenyRequest body para POST .../:id/deny.
type DenyRequest struct {
	Reason string `json:"reason"`
}

// PurchaseRequestResponse salida de una solicitud de compra.
type PurchaseRequestResponse struct {
	ID             string          `json:"id"`
	PRNumber       string          `json:"pr_number"`
	Department     string          `json:"department"`
	Purpose        string          `json:"purpose"`
	Status         string          `json:"status"`
	DenialReason   string          `json:"denial_reason,omitempty"`
	Lines          []PRLineRequest `json:"lines"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`
	RequestedBy    string          `json:"requested_by"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PurchaseRequestListResponse listado paginado.
type PurchaseRequestListResponse struct {
	PurchaseRequests []PurchaseRequestResponse `json:"purchase_requests"`
	Page             PageResponse              `json:"page"`
}

// POLineRequest one ordered line.
type POLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/procurement/purchase-orders.
type CreatePurchaseOrderRequest struct {
	PurchaseRequestID string          `json:"purchase_request_id"`
	Supplier          string          `json:"supplier"`
	Lines             []POLineRequest `json:"lines"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID                string          `json:"id"`
	PONumber          string          `json:"po_number"`
	PurchaseRequestID string          `json:"purchase_request_id"`
	Supplier          string          `json:"supplier"`
	Status            string          `json:"status"`
	Lines             []POLineRequest `json:"lines"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	CreatedBy         string          `json:"created_by"`
	ApprovedBy        string          `json:"approved_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PurchaseOrderListResponse listado paginado.
type PurchaseOrderListResponse struct {
	PurchaseOrders []PurchaseOrderResponse `json:"purchase_orders"`
	Page           PageResponse            `json:"page"`
}

// WRRLineRequest one received line; it becomes a batch.
type WRRLineRequest struct {
	ItemID     string          `json:"item_id"`
	LotNumber  string          `json:"lot_number"`
	Quantity   int64           `json:"quantity"`
	ExpiryDate string          `json:"expiry_date"`
	Location   string          `json:"location,omitempty"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// CreateReceivingReportRequest body para POST /api/procurement/receiving-reports.
type CreateReceivingReportRequest struct {
	PurchaseOrderID string           `json:"purchase_order_id"`
	ReceivedDate    string           `json:"received_date,omitempty"`
	Lines           []WRRLineRequest `json:"lines"`
}

// WRRLineResponse a received line with its batch.
type WRRLineResponse struct {
	WRRLineRequest
	BatchID string `json:"batch_id"`
}

// ReceivingReportResponse salida de un WRR.
type ReceivingReportResponse struct {
	ID              string            `json:"id"`
	WRRNumber       string            `json:"wrr_number"`
	PurchaseOrderID string            `json:"purchase_order_id"`
	Supplier        string            `json:"supplier"`
	ReceivedBy      string            `json:"received_by"`
	ReceivedDate    string            `json:"received_date"`
	Lines           []WRRLineResponse `json:"lines"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ReceivingReportListResponse listado paginado.
type ReceivingReportListResponse struct {
	ReceivingReports []ReceivingReportResponse `json:"receiving_reports"`
	Page             PageResponse              `json:"page"`
}

// CreateInvoiceRequest body para POST /api/procurement/invoices.
type CreateInvoiceRequest struct {
	ReceivingReportID string           `json:"receiving_report_id"`
	InvoiceNumber     string           `json:"invoice_number,omitempty"` // supplier's number; generated when empty
	Amount            *decimal.Decimal `json:"amount,omitempty"`         // defaults to the WRR total
	DueDate           string           `json:"due_date,omitempty"`
}

// InvoiceResponse salida de una factura de proveedor.
type InvoiceResponse struct {
	ID                string          `json:"id"`
	InvoiceNumber     string          `json:"invoice_number"`
	ReceivingReportID string          `json:"receiving_report_id"`
	Supplier          string          `json:"supplier"`
	Amount            decimal.Decimal `json:"amount"`
	AmountDisplay     string          `json:"amount_display"` // ₱1,234.50
	Status            string          `json:"status"`
	DueDate           string          `json:"due_date,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	CreatedBy         string          `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
}

// InvoiceListResponse listado paginado.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Page     PageResponse      `json:"page"`
}

// OutstandingResponse sum of unpaid supplier invoices.
type OutstandingResponse struct {
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
}
