package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
type CreateItemRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SubType      string `json:"sub_type"` // supplied | donated
	Unit         string `json:"unit"`
	Description  string `json:"description,omitempty"`
	ReorderLevel int64  `json:"reorder_level"`
}

// UpdateItemRequest body para PUT /api/inventory/items/:id. Quantities and status are not writable.
type UpdateItemRequest struct {
	Name         *string `json:"name,omitempty"`
	Category     *string `json:"category,omitempty"`
	SubType      *string `json:"sub_type,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	Description  *string `json:"description,omitempty"`
	ReorderLevel *int64  `json:"reorder_level,omitempty"`
}

// ItemListRequest query de GET /api/inventory/items.
type ItemListRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	SubType  string `query:"sub_type"`
	Status   string `query:"status"`
	PageRequest
}

// ItemResponse is an item with its derived status.
type ItemResponse struct {
	ID                string     `json:"id"`
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	SubType           string     `json:"sub_type"`
	Unit              string     `json:"unit"`
	Description       string     `json:"description,omitempty"`
	TotalQuantity     int64      `json:"total_quantity"`
	AvailableQuantity int64      `json:"available_quantity"`
	ReorderLevel      int64      `json:"reorder_level"`
	Status            string     `json:"status"`
	NearestExpiry     *time.Time `json:"nearest_expiry,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// BatchResponse is a batch with its derived status.
type BatchResponse struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"item_id"`
	LotNumber       string          `json:"lot_number"`
	Quantity        int64           `json:"quantity"`
	InitialQuantity int64           `json:"initial_quantity"`
	ExpiryDate      string          `json:"expiry_date"`
	ReceivedDate    string          `json:"received_date"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	Status          string          `json:"status"`
	Supplier        string          `json:"supplier,omitempty"`
	WRRNumber       string          `json:"wrr_number,omitempty"`
	Location        string          `json:"location,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// ItemDetailResponse respuesta de GET /api/inventory/items/:id.
type ItemDetailResponse struct {
	Item            ItemResponse    `json:"item"`
	Batches         []BatchResponse `json:"batches"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
}

// ReceiveRequest body para POST /api/inventory/receipts.
type ReceiveRequest struct {
	ItemID       string          `json:"item_id"`
	LotNumber    string          `json:"lot_number"`
	Quantity     int64           `json:"quantity"`
	ExpiryDate   string          `json:"expiry_date"`
	ReceivedDate string          `json:"received_date,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	WRRNumber    string          `json:"wrr_number,omitempty"`
	Location     string          `json:"location,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Remarks      string          `json:"remarks,omitempty"`
}

// ReceiveResponse is the created batch and its ledger entry.
type ReceiveResponse struct {
	Batch       BatchResponse       `json:"batch"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransferInRequest body para POST /api/inventory/transfers-in.
type TransferInRequest struct {
	SourceUnitID string          `json:"source_unit_id"`
	ItemID       string          `json:"item_id"`
	LotNumber    string          `json:"lot_number"`
	Quantity     int64           `json:"quantity"`
	ExpiryDate   string          `json:"expiry_date"`
	Location     string          `json:"location,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Reference    string          `json:"reference,omitempty"` // sending unit's transfer number
	Remarks      string          `json:"remarks,omitempty"`
}

// DispenseRequest body para POST /api/inventory/dispense.
type DispenseRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int64  `json:"quantity"`
	PatientID string `json:"patient_id,omitempty"`
	Reference string `json:"reference,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
}

// AllocationResponse units drawn from one batch.
type AllocationResponse struct {
	BatchID  string `json:"batch_id"`
	Quantity int64  `json:"quantity"`
}

// DispenseResponse is the ledger entry and the batches drawn, in FEFO order.
type DispenseResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	Allocations []AllocationResponse `json:"allocations"`
}

// DisposeRequest body para POST /api/inventory/disposals.
type DisposeRequest struct {
	BatchID  string `json:"batch_id"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments. The difference is computed server-side.
type AdjustmentRequest struct {
	ItemID        string `json:"item_id"`
	BatchID       string `json:"batch_id,omitempty"`
	Type          string `json:"type"`
	QuantityAfter int64  `json:"quantity_after"`
	Reason        string `json:"reason"`
}

// AdjustmentResponse is an adjustment with its display label.
type AdjustmentResponse struct {
	ID             string    `json:"id"`
	Number         string    `json:"number"`
	ItemID         string    `json:"item_id"`
	BatchID        string    `json:"batch_id,omitempty"`
	Type           string    `json:"type"`
	TypeLabel      string    `json:"type_label"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Difference     int64     `json:"difference"`
	Reason         string    `json:"reason"`
	PerformedBy    string    `json:"performed_by"`
	TransactionID  string    `json:"transaction_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// AdjustmentListResponse listado paginado de ajustes.
type AdjustmentListResponse struct {
	Adjustments []AdjustmentResponse `json:"adjustments"`
	Page        PageResponse         `json:"page"`
}

// TransactionListRequest query de GET /api/inventory/transactions.
type TransactionListRequest struct {
	ItemID string `query:"item_id"`
	Type   string `query:"type"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	ID                string    `json:"id"`
	Number            string    `json:"number"`
	ItemID            string    `json:"item_id"`
	BatchID           string    `json:"batch_id,omitempty"`
	Type              string    `json:"type"`
	Quantity          int64     `json:"quantity"`
	BeginningQuantity int64     `json:"beginning_quantity"`
	EndingQuantity    int64     `json:"ending_quantity"`
	PerformedBy       string    `json:"performed_by"`
	Reference         string    `json:"reference,omitempty"`
	Remarks           string    `json:"remarks,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// TransactionListResponse listado paginado del libro de movimientos.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         PageResponse          `json:"page"`
}

// TransferLineRequest one item of a transfer.
type TransferLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// CreateTransferRequest body para POST /api/inventory/transfers.
type CreateTransferRequest struct {
	DestinationUnitID string                `json:"destination_unit_id"`
	Remarks           string                `json:"remarks,omitempty"`
	Lines             []TransferLineRequest `json:"lines"`
}

// TransferLineResponse a transfer line with the batches drawn once issued.
type TransferLineResponse struct {
	ItemID      string               `json:"item_id"`
	Quantity    int64                `json:"quantity"`
	Allocations []AllocationResponse `json:"allocations,omitempty"`
}

// TransferResponse salida de una transferencia.
type TransferResponse struct {
	ID                string                 `json:"id"`
	Number            string                 `json:"number"`
	DestinationUnitID string                 `json:"destination_unit_id"`
	DestinationName   string                 `json:"destination_name"`
	Status            string                 `json:"status"`
	Remarks           string                 `json:"remarks,omitempty"`
	Lines             []TransferLineResponse `json:"lines"`
	RequestedBy       string                 `json:"requested_by"`
	ApprovedBy        string                 `json:"approved_by,omitempty"`
	IssuedBy          string                 `json:"issued_by,omitempty"`
	ReceivedBy        string                 `json:"received_by,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	ApprovedAt        *time.Time             `json:"approved_at,omitempty"`
	IssuedAt          *time.Time             `json:"issued_at,omitempty"`
	ReceivedAt        *time.Time             `json:"received_at,omitempty"`
}

// TransferListResponse listado paginado de transferencias.
type TransferListResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	Page      PageResponse       `json:"page"`
}

// UnitResponse an administrative unit that can send or receive transfers.
type UnitResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Municipality string `json:"municipality,omitempty"`
	Province     string `json:"province,omitempty"`
}
