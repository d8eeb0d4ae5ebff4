// Package algo has ranking helpers for aggregate rows.
package algo

import (
	"cmp"
	"slices"
)

// RankDescending sorts items by score in descending order. Equal scores are
// ordered by tie, which keeps the ranking deterministic.
func RankDescending[T any](items []T, score func(T) float64, tie func(a, b T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := cmp.Compare(score(b), score(a)); c != 0 {
			return c
		}
		return tie(a, b)
	})
}

// LeaderOffset is the number of leading entries TopAfterLeader skips.
const LeaderOffset = 1

// TopAfterLeader returns the entries at ranks 2..k+1 of an already ranked slice.
// The top-ranked entry is always skipped. Fewer than k entries are returned
// when the slice is short; nil when it holds only the leader.
func TopAfterLeader[T any](ranked []T, k int) []T {
	if k <= 0 || len(ranked) <= LeaderOffset {
		return nil
	}
	end := min(LeaderOffset+k, len(ranked))
	return ranked[LeaderOffset:end]
}
