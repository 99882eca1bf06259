package format_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rhu-inventory-api/pkg/format"
)

func TestPeso(t *testing.T) {
	cases := map[string]string{
		"1234.5":    "₱1,234.50",
		"0":         "₱0.00",
		"0.005":     "₱0.01",
		"1000000":   "₱1,000,000.00",
		"-2500.456": "-₱2,500.46",
		"999.999":   "₱1,000.00",
		"12.07":     "₱12.07",
	}
	for in, want := range cases {
		assert.Equal(t, want, format.Peso(decimal.RequireFromString(in)), in)
	}
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "12,500", format.Quantity(12500))
	assert.Equal(t, "7", format.Quantity(7))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Jan 05, 2026", format.Date(time.Date(2026, 1, 5, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", format.Date(time.Time{}))
}
