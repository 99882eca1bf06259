package inventory

import (
	"fmt"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

var transferNext = map[string]string{
	entity.TransferDraft:    entity.TransferApproved,
	entity.TransferApproved: entity.TransferIssued,
	entity.TransferIssued:   entity.TransferReceived,
}

// CheckTransferTransition allows only draft -> approved -> issued -> received.
func CheckTransferTransition(from, to string) error {
	if next, ok := transferNext[from]; ok && next == to {
		return nil
	}
	return domain.NewValidationError("status", fmt.Sprintf("cannot move transfer from %s to %s", from, to))
}
