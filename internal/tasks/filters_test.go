package tasks

import (
	"testing"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/shared"
)

func TestFilterCatalog(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	cutoff := shared.AddMonths(now, -6)
	seasonal := SeasonalPattern(DefaultSeasonalKeywords)

	t.Run("seasonal titles are excluded case-insensitively", func(t *testing.T) {
		songs := []models.Song{
			testSong("1", "O Come All Ye Faithful (CHRISTMAS)", recentDate(now, 10)),
			testSong("2", "Little Drummer Boy", recentDate(now, 10)),
			testSong("3", "Oceans", recentDate(now, 10)),
		}

		kept := FilterCatalog(songs, cutoff, seasonal)
		if len(kept) != 1 || kept[0].ID != "3" {
			t.Errorf("expected only song 3, got %+v", kept)
		}
	})

	t.Run("recency comparison is strictly after the cutoff", func(t *testing.T) {
		atCutoff := cutoff
		justAfter := cutoff.AddDate(0, 0, 1)

		songs := []models.Song{
			testSong("1", "At Cutoff", &atCutoff),
			testSong("2", "After Cutoff", &justAfter),
			testSong("3", "Never Scheduled", nil),
		}

		kept := FilterCatalog(songs, cutoff, seasonal)
		if len(kept) != 1 || kept[0].ID != "2" {
			t.Errorf("expected only the song strictly after the cutoff, got %+v", kept)
		}
	})

	t.Run("duplicate titles keep only the first occurrence", func(t *testing.T) {
		songs := []models.Song{
			testSong("1", "Song A", recentDate(now, 10)),
			testSong("2", "song a ", recentDate(now, 5)),
			testSong("3", "Song B", recentDate(now, 3)),
		}

		kept := FilterCatalog(songs, cutoff, seasonal)
		if len(kept) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(kept))
		}
		if kept[0].ID != "1" || kept[1].ID != "3" {
			t.Errorf("expected songs 1 and 3, got %+v", kept)
		}
	})

	t.Run("input order is preserved", func(t *testing.T) {
		songs := []models.Song{
			testSong("1", "Zulu", recentDate(now, 1)),
			testSong("2", "Alpha", recentDate(now, 2)),
			testSong("3", "Mike", recentDate(now, 3)),
		}

		kept := FilterCatalog(songs, cutoff, seasonal)
		for i, want := range []string{"1", "2", "3"} {
			if kept[i].ID != want {
				t.Fatalf("expected input order preserved, got %+v", kept)
			}
		}
	})
}

func TestFilterEnriched(t *testing.T) {
	seasonal := SeasonalPattern(DefaultSeasonalKeywords)

	enriched := func(id string, summary models.ScheduleSummary) models.EnrichedSong {
		return models.EnrichedSong{Song: models.Song{ID: id, Title: "Song " + id}, Schedules: summary}
	}

	t.Run("usage threshold requires more than one", func(t *testing.T) {
		songs := []models.EnrichedSong{
			enriched("1", usedSummary(1, "Sunday AM")),
			enriched("2", usedSummary(2, "Sunday AM")),
			enriched("3", usedSummary(0)),
		}

		kept := FilterEnriched(songs, seasonal, "", false)
		if len(kept) != 1 || kept[0].ID != "2" {
			t.Errorf("expected only song 2, got %+v", kept)
		}
	})

	t.Run("any seasonal service type excludes the song", func(t *testing.T) {
		songs := []models.EnrichedSong{
			enriched("1", usedSummary(5, "Sunday AM", "Christmas Eve")),
			enriched("2", usedSummary(5, "Sunday AM", "Sunday PM")),
		}

		kept := FilterEnriched(songs, seasonal, "", false)
		if len(kept) != 1 || kept[0].ID != "2" {
			t.Errorf("expected only song 2, got %+v", kept)
		}
	})

	t.Run("sentinel summary passes the threshold", func(t *testing.T) {
		songs := []models.EnrichedSong{
			enriched("1", models.ScheduleSummary{TotalCount: 2}),
		}

		kept := FilterEnriched(songs, seasonal, "", false)
		if len(kept) != 1 {
			t.Error("expected sentinel-enriched song to survive")
		}
	})

	t.Run("venue filter disabled ignores keyword", func(t *testing.T) {
		songs := []models.EnrichedSong{
			enriched("1", usedSummary(5, "Sunday AM")),
		}

		kept := FilterEnriched(songs, seasonal, "downtown", false)
		if len(kept) != 1 {
			t.Error("expected song to survive with venue filter off")
		}
	})

	t.Run("venue filter enabled requires a matching service type", func(t *testing.T) {
		songs := []models.EnrichedSong{
			enriched("1", usedSummary(5, "Downtown Evening", "Sunday AM")),
			enriched("2", usedSummary(5, "Sunday AM")),
		}

		kept := FilterEnriched(songs, seasonal, "downtown", true)
		if len(kept) != 1 || kept[0].ID != "1" {
			t.Errorf("expected only the downtown song, got %+v", kept)
		}
	})
}

func TestSeasonalPattern(t *testing.T) {
	pattern := SeasonalPattern([]string{"christmas", "little drummer boy"})

	tc := []struct {
		input string
		want  bool
	}{
		{"Christmas Time", true},
		{"CHRISTMAS", true},
		{"The Little Drummer Boy", true},
		{"Oceans", false},
		{"", false},
	}

	for _, tt := range tc {
		if got := pattern.MatchString(tt.input); got != tt.want {
			t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
