package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
)

func TestDocumentNumber(t *testing.T) {
	assert.Equal(t, "PO-2026-0012", domain.DocumentNumber("PO", 2026, 12))
	assert.Equal(t, "TRF-2025-12345", domain.DocumentNumber("TRF", 2025, 12345))
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	var err error = &domain.InsufficientStockError{ItemID: "i", Requested: 500, Available: 150}
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(350), err.(*domain.InsufficientStockError).Shortfall())
	assert.Contains(t, err.Error(), "short by 350")

	assert.True(t, errors.Is(domain.NewValidationError("reason", "is required"), domain.ErrValidation))
	assert.Equal(t, "reason: is required", domain.NewValidationError("reason", "is required").Error())
	assert.True(t, errors.Is(domain.NewQuantityError("bad %d", 1), domain.ErrInvalidQuantity))
}
