// Package lock implements ports.ItemLocker: an in-process keyed mutex and a Redis lease
// for deployments with more than one API instance.
package lock

import "sort"

// normalize sorts and de-duplicates ids so every caller acquires in the same order.
func normalize(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
