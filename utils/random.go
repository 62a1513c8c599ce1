package utils

import "math/rand/v2"

// Shuffle returns a shuffled copy of items.
func Shuffle[T any](items []T) []T {
	out := append([]T(nil), items...)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// GetMultipleRandom picks up to n distinct elements of items in random order.
func GetMultipleRandom[T any](items []T, n int) []T {
	shuffled := Shuffle(items)
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// RandomOffset returns an offset in [0, total), or 0 for an empty table.
func RandomOffset(total int64) int {
	if total <= 0 {
		return 0
	}
	return int(rand.Int64N(total))
}

// RandomBetween returns an int in [lo, hi].
func RandomBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}
