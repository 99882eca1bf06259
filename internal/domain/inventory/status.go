// Package inventory holds the pure rules of the inventory ledger: status derivation,
// FEFO batch selection, ledger entry construction and stock adjustments.
package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// ExpiryWarningDays is the window in which a batch counts as expiring soon.
const ExpiryWarningDays = 180

// BatchExpiry is the part of a batch the status rules look at.
type BatchExpiry struct {
	Quantity   int64
	ExpiryDate time.Time
}

// ExpiryInstant interprets the calendar date of expiry as midnight in loc.
// Expiry dates are stored as plain dates; this keeps the whole evaluation in one zone.
func ExpiryInstant(expiry time.Time, loc *time.Location) time.Time {
	y, m, d := expiry.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysUntilExpiry = ceil((expiry - now) / 24h), with expiry taken as midnight in now's zone.
// Negative once the batch has expired.
func DaysUntilExpiry(expiry, now time.Time) int {
	diff := ExpiryInstant(expiry, now.Location()).Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// IsExpired reports expiry <= now: a batch is expired from midnight of its expiry date.
func IsExpired(expiry, now time.Time) bool {
	return !now.Before(ExpiryInstant(expiry, now.Location()))
}

// IsExpiringSoon reports 0 < daysUntilExpiry <= ExpiryWarningDays.
func IsExpiringSoon(expiry, now time.Time) bool {
	d := DaysUntilExpiry(expiry, now)
	return d > 0 && d <= ExpiryWarningDays
}

// DeriveItemStatus computes the item status. First match wins:
// out_of_stock, expired, expiring_soon, low_stock, active.
func DeriveItemStatus(available, reorderLevel int64, batches []BatchExpiry, now time.Time) string {
	if available == 0 {
		return entity.StatusOutOfStock
	}
	for _, b := range batches {
		if b.Quantity > 0 && IsExpired(b.ExpiryDate, now) {
			return entity.StatusExpired
		}
	}
	for _, b := range batches {
		if b.Quantity > 0 && IsExpiringSoon(b.ExpiryDate, now) {
			return entity.StatusExpiringSoon
		}
	}
	if available <= reorderLevel {
		return entity.StatusLowStock
	}
	return entity.StatusActive
}

// DeriveBatchStatus computes the status shown next to a single batch.
func DeriveBatchStatus(b *entity.Batch, now time.Time) string {
	switch {
	case b.Quantity <= 0:
		return entity.StatusDepleted
	case IsExpired(b.ExpiryDate, now):
		return entity.StatusExpired
	case IsExpiringSoon(b.ExpiryDate, now):
		return entity.StatusExpiringSoon
	default:
		return entity.StatusActive
	}
}

// ExpiriesOf adapts batches for DeriveItemStatus.
func ExpiriesOf(batches []*entity.Batch) []BatchExpiry {
	out := make([]BatchExpiry, 0, len(batches))
	for _, b := range batches {
		out = append(out, BatchExpiry{Quantity: b.Quantity, ExpiryDate: b.ExpiryDate})
	}
	return out
}

// NearestExpiry returns the earliest expiry among batches with stock, or nil.
func NearestExpiry(batches []*entity.Batch) *time.Time {
	var nearest *time.Time
	for _, b := range batches {
		if b.Quantity <= 0 {
			continue
		}
		if nearest == nil || b.ExpiryDate.Before(*nearest) {
			e := b.ExpiryDate
			nearest = &e
		}
	}
	return nearest
}
