package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalItems       int                   `json:"total_items"`
	ItemsByStatus    map[string]int        `json:"items_by_status"`
	ExpiringBatches  []ExpiringBatchDTO    `json:"expiring_batches"`
	RecentActivity   []TransactionResponse `json:"recent_activity"`
	PendingPRs       int                   `json:"pending_purchase_requests"`
	PendingPOs       int                   `json:"pending_purchase_orders"`
	PendingTransfers int                   `json:"pending_transfers"`
	DateLabel        string                `json:"date_label"` // e.g. "Oct 15, 2026"
}

// ExpiringBatchDTO a batch with stock expiring inside the warning window.
type ExpiringBatchDTO struct {
	BatchID         string `json:"batch_id"`
	ItemID          string `json:"item_id"`
	ItemName        string `json:"item_name"`
	LotNumber       string `json:"lot_number"`
	Quantity        int64  `json:"quantity"`
	ExpiryDate      string `json:"expiry_date"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}
