package lists

import (
	"sort"

	"github.com/crema-dev/crema/internal/model"
)

// SortShots returns the shots ordered by shot number ascending,
// regardless of fetch order.
func SortShots(shots []model.Shot) []model.Shot {
	out := make([]model.Shot, len(shots))
	copy(out, shots)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ShotNumber < out[j].ShotNumber
	})
	return out
}

// NextShotNumber returns the lowest positive integer not already used by
// the session's shots, filling gaps before extending the sequence.
func NextShotNumber(shots []model.Shot) int {
	taken := make(map[int]bool, len(shots))
	for _, s := range shots {
		taken[s.ShotNumber] = true
	}
	n := 1
	for taken[n] {
		n++
	}
	return n
}

// ShotNumberTaken reports whether a shot in the session already uses
// the given number. Only new shots pick a number; editing never
// changes one.
func ShotNumberTaken(shots []model.Shot, number int) bool {
	for _, s := range shots {
		if s.ShotNumber == number {
			return true
		}
	}
	return false
}
