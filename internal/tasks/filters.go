package tasks

import (
	"regexp"
	"strings"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/shared"
)

// SeasonalPattern compiles a case-insensitive alternation over the given
// keywords for seasonal exclusion matching.
func SeasonalPattern(keywords []string) *regexp.Regexp {
	escaped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		escaped = append(escaped, regexp.QuoteMeta(kw))
	}
	return regexp.MustCompile("(?i)" + strings.Join(escaped, "|"))
}

// FilterCatalog applies the pre-enrichment filter stage to the raw catalog,
// preserving input order. It runs before the per-song network round trips so
// excluded songs are never fetched.
//
// A song survives when its title is not seasonal, its last scheduled date is
// strictly after the cutoff (absent dates fail), and it is the first
// occurrence of its normalized title in the input collection.
func FilterCatalog(songs []models.Song, cutoff time.Time, seasonal *regexp.Regexp) []models.Song {
	firstIndex := make(map[string]int, len(songs))
	for i, song := range songs {
		key := shared.NormalizeTitle(song.Title)
		if _, seen := firstIndex[key]; !seen {
			firstIndex[key] = i
		}
	}

	var kept []models.Song
	for i, song := range songs {
		if seasonal.MatchString(song.Title) {
			continue
		}
		if song.LastScheduledAt == nil || !song.LastScheduledAt.After(cutoff) {
			continue
		}
		if firstIndex[shared.NormalizeTitle(song.Title)] != i {
			continue
		}
		kept = append(kept, song)
	}
	return kept
}

// FilterEnriched applies the post-enrichment filter stage.
//
// A song survives when its aggregate usage count exceeds one and none of its
// schedule items carries a seasonal service type. When the venue filter is
// enabled, at least one item's service type must also contain the venue
// keyword.
func FilterEnriched(songs []models.EnrichedSong, seasonal *regexp.Regexp, venueKeyword string, venueEnabled bool) []models.EnrichedSong {
	var kept []models.EnrichedSong

outer:
	for _, song := range songs {
		if song.Schedules.TotalCount <= 1 {
			continue
		}

		for _, item := range song.Schedules.Items {
			if seasonal.MatchString(item.ServiceTypeName) {
				continue outer
			}
		}

		if venueEnabled && !anyServiceTypeContains(song.Schedules.Items, venueKeyword) {
			continue
		}

		kept = append(kept, song)
	}
	return kept
}

func anyServiceTypeContains(items []models.ScheduleRecord, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ServiceTypeName), keyword) {
			return true
		}
	}
	return false
}
