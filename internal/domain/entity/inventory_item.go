package entity

import "time"

// Item classification.
const (
	SubTypeSupplied = "supplied" // procured through the PR/PO pipeline
	SubTypeDonated  = "donated"  // received from DOH, NGOs or other LGUs
)

// Derived item/batch statuses. Never stored; see inventory.DeriveItemStatus.
const (
	StatusActive       = "active"
	StatusLowStock     = "low_stock"
	StatusExpiringSoon = "expiring_soon"
	StatusExpired      = "expired"
	StatusOutOfStock   = "out_of_stock"
	StatusDepleted     = "depleted" // batch only
)

// InventoryItem is a medicine or medical supply tracked by the health unit.
// Quantities change only through ledger operations; status is always derived.
type InventoryItem struct {
	ID                string
	Code              string // unique
	Name              string
	Category          string
	SubType           string // supplied, donated
	Unit              string // unit of measure: tablet, bottle, box...
	Description       string
	TotalQuantity     int64
	AvailableQuantity int64 // <= TotalQuantity
	ReorderLevel      int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidSubType reports whether s is a known classification.
func IsValidSubType(s string) bool {
	return s == SubTypeSupplied || s == SubTypeDonated
}
