package domain

import "fmt"

// DocumentNumber formats sequential document numbers, e.g. PR-2026-0007.
func DocumentNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
