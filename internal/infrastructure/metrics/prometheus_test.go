package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the counter value (or histogram count) of the series of name whose labels match.
func sample(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	series:
		for _, s := range f.GetMetric() {
			for _, lp := range s.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue series
				}
			}
			if s.GetCounter() != nil {
				return s.GetCounter().GetValue()
			}
			if s.GetHistogram() != nil {
				return float64(s.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func TestMetrics_LedgerCounters(t *testing.T) {
	m := New()
	m.EntryAppended("dispense", -120)
	m.EntryAppended("dispense", -30)
	m.EntryAppended("warehouse_receiving", 500)
	m.Rejected("dispense", "insufficient_stock")
	m.LockWaited(2 * time.Millisecond)

	assert.Equal(t, 2.0, sample(t, m, "rhu_ledger_entries_total", map[string]string{"type": "dispense"}))
	assert.Equal(t, 150.0, sample(t, m, "rhu_ledger_units_total", map[string]string{"type": "dispense"}))
	assert.Equal(t, 500.0, sample(t, m, "rhu_ledger_units_total", map[string]string{"type": "warehouse_receiving"}))
	assert.Equal(t, 1.0, sample(t, m, "rhu_stock_rejections_total", map[string]string{"operation": "dispense", "reason": "insufficient_stock"}))
	assert.Equal(t, 1.0, sample(t, m, "rhu_item_lock_wait_seconds", nil))
}

func TestMetrics_Middleware(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/items/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 1.0, sample(t, m, "rhu_http_request_duration_seconds",
		map[string]string{"method": "GET", "route": "/items/:id", "status": "204"}))
}
