package entity

import "time"

// Transfer statuses, in lifecycle order.
const (
	TransferDraft    = "draft"
	TransferApproved = "approved"
	TransferIssued   = "issued"
	TransferReceived = "received"
)

// TransferOut ships batch line-items to another administrative unit.
type TransferOut struct {
	ID                string
	Number            string
	DestinationUnitID string
	DestinationName   string
	Status            string
	Remarks           string
	Lines             []TransferLine
	RequestedBy       string
	ApprovedBy        string
	IssuedBy          string
	ReceivedBy        string
	CreatedAt         time.Time
	ApprovedAt        *time.Time
	IssuedAt          *time.Time
	ReceivedAt        *time.Time
	UpdatedAt         time.Time
}

// TransferLine is one item on a transfer. Allocations are filled when the transfer is issued.
type TransferLine struct {
	ItemID      string
	Quantity    int64
	Allocations []BatchAllocation
}

// BatchAllocation is the quantity drawn from one batch.
type BatchAllocation struct {
	BatchID  string
	Quantity int64
}
