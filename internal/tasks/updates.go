package tasks

import (
	"fmt"

	"github.com/openchord/rotx/internal/models"
)

// ProgressUpdate represents a progress event during a planning run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	FilterCatalogPhase
	EnrichSongs
	FilterSchedules
	PlanReady
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case FilterCatalogPhase:
		return "filter_catalog"
	case EnrichSongs:
		return "enrich_songs"
	case FilterSchedules:
		return "filter_schedules"
	case PlanReady:
		return "plan_ready"
	default:
		return ""
	}
}

func fetchCatalogUpdate(serviceName string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching song catalog from %s...", serviceName),
	}
}

func catalogFilteredUpdate(kept, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FilterCatalogPhase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("%d of %d songs pass catalog filters", kept, total),
	}
}

func enrichSongUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, song.Title),
	}
}

func enrichFailedUpdate(step, total int, song models.Song, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnrichSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, song.Title, err),
	}
}

func filterSchedulesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FilterSchedules,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Applying schedule criteria to %d songs...", total),
	}
}

func planReadyUpdate(result *PlanResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PlanReady,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Rotation plan ready: %d songs", result.PlannedCount),
		Data:    result,
	}
}
