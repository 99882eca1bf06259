// Package procurement holds the status rules of purchase requests, orders and invoices.
package procurement

import (
	"fmt"
	"strings"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

var prTransitions = map[string][]string{
	entity.PRDraft:     {entity.PRSubmitted},
	entity.PRSubmitted: {entity.PRApproved, entity.PRDenied},
}

var poTransitions = map[string][]string{
	entity.POPending:  {entity.POApproved, entity.POCancelled},
	entity.POApproved: {entity.PODelivered, entity.POCancelled},
}

func allowed(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckPRTransition allows draft -> submitted -> approved|denied.
func CheckPRTransition(from, to string) error {
	if allowed(prTransitions, from, to) {
		return nil
	}
	return domain.NewValidationError("status", fmt.Sprintf("cannot move purchase request from %s to %s", from, to))
}

// CheckPOTransition allows pending -> approved -> delivered; cancel before delivery.
func CheckPOTransition(from, to string) error {
	if allowed(poTransitions, from, to) {
		return nil
	}
	return domain.NewValidationError("status", fmt.Sprintf("cannot move purchase order from %s to %s", from, to))
}

// Deny moves a submitted request to denied. A reason is mandatory.
func Deny(pr *entity.PurchaseRequest, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.NewValidationError("reason", "is required to deny a purchase request")
	}
	if err := CheckPRTransition(pr.Status, entity.PRDenied); err != nil {
		return err
	}
	pr.Status = entity.PRDenied
	pr.DenialReason = reason
	return nil
}

// ValidatePRLines checks quantities and estimated costs of a purchase request.
func ValidatePRLines(lines []entity.PurchaseRequestLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("lines", "at least one line is required")
	}
	for i, l := range lines {
		if strings.TrimSpace(l.Description) == "" && l.ItemID == "" {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].description", i), "description or item_id is required")
		}
		if l.Quantity <= 0 {
			return domain.NewQuantityError("lines[%d]: quantity must be positive", i)
		}
		if l.EstimatedUnitCost.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].estimated_unit_cost", i), "must not be negative")
		}
	}
	return nil
}

// ValidatePOLines checks quantities and unit costs of a purchase order.
func ValidatePOLines(lines []entity.PurchaseOrderLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("lines", "at least one line is required")
	}
	for i, l := range lines {
		if l.ItemID == "" {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].item_id", i), "is required")
		}
		if l.Quantity <= 0 {
			return domain.NewQuantityError("lines[%d]: quantity must be positive", i)
		}
		if l.UnitCost.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("lines[%d].unit_cost", i), "must not be negative")
		}
	}
	return nil
}
