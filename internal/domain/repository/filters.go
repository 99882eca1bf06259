package repository

import "time"

// Page is limit/offset pagination. Limit <= 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}

// ItemFilter narrows item listings. Derived status is filtered by the caller.
type ItemFilter struct {
	Search   string // code, name or category, case-insensitive
	Category string
	SubType  string
	Page
}

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	ItemID string
	Type   string
	From   *time.Time
	To     *time.Time
	Page
}

// AdjustmentFilter narrows adjustment listings.
type AdjustmentFilter struct {
	ItemID string
	Page
}

// TransferFilter narrows transfer listings.
type TransferFilter struct {
	Status string
	Page
}

// PatientFilter narrows patient listings.
type PatientFilter struct {
	Search   string // patient number, first or last name
	Barangay string
	Page
}

// ProcurementFilter narrows PR/PO/WRR/invoice listings.
// Search matches the document number; Department applies to PRs, Supplier to the rest.
type ProcurementFilter struct {
	Search     string
	Status     string
	Department string
	Supplier   string
	Page
}
