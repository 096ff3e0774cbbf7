package tasks

import (
	"sort"

	"github.com/openchord/rotx/internal/models"
)

// SortByUsage orders songs ascending by aggregate usage count, in place.
//
// The sort is stable: equal-count songs keep their relative input order, so
// rotation output is deterministic for callers planning least-used-first.
func SortByUsage(songs []models.EnrichedSong) {
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Schedules.TotalCount < songs[j].Schedules.TotalCount
	})
}
