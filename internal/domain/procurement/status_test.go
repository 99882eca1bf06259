package procurement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/procurement"
)

func TestCheckPRTransition(t *testing.T) {
	assert.NoError(t, procurement.CheckPRTransition(entity.PRDraft, entity.PRSubmitted))
	assert.NoError(t, procurement.CheckPRTransition(entity.PRSubmitted, entity.PRApproved))
	assert.ErrorIs(t, procurement.CheckPRTransition(entity.PRDraft, entity.PRApproved), domain.ErrValidation)
	assert.ErrorIs(t, procurement.CheckPRTransition(entity.PRDenied, entity.PRSubmitted), domain.ErrValidation)
}

func TestCheckPOTransition(t *testing.T) {
	assert.NoError(t, procurement.CheckPOTransition(entity.POPending, entity.POApproved))
	assert.NoError(t, procurement.CheckPOTransition(entity.POApproved, entity.PODelivered))
	assert.NoError(t, procurement.CheckPOTransition(entity.POApproved, entity.POCancelled))
	assert.ErrorIs(t, procurement.CheckPOTransition(entity.POPending, entity.PODelivered), domain.ErrValidation)
	assert.ErrorIs(t, procurement.CheckPOTransition(entity.PODelivered, entity.POCancelled), domain.ErrValidation)
}

func TestDeny_RequiresReason(t *testing.T) {
	pr := &entity.PurchaseRequest{Status: entity.PRSubmitted}
	assert.ErrorIs(t, procurement.Deny(pr, "  "), domain.ErrValidation)
	assert.Equal(t, entity.PRSubmitted, pr.Status)

	require.NoError(t, procurement.Deny(pr, "budget exhausted"))
	assert.Equal(t, entity.PRDenied, pr.Status)
	assert.Equal(t, "budget exhausted", pr.DenialReason)
}

func TestValidatePOLines(t *testing.T) {
	ok := []entity.PurchaseOrderLine{{ItemID: "i1", Quantity: 3, UnitCost: decimal.NewFromInt(10)}}
	assert.NoError(t, procurement.ValidatePOLines(ok))
	assert.ErrorIs(t, procurement.ValidatePOLines(nil), domain.ErrValidation)
	assert.ErrorIs(t, procurement.ValidatePOLines([]entity.PurchaseOrderLine{{ItemID: "i1", Quantity: 0}}), domain.ErrInvalidQuantity)
}
