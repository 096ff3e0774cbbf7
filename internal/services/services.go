// package services defines interface Service for interacting with the scheduling HTTP API
package services

import (
	"context"

	"github.com/openchord/rotx/internal/models"
)

// Service defines the interface for a song scheduling provider that can list
// the song catalog and report per-song usage history.
type Service interface {
	// Songs retrieves the song catalog, visible songs only, in catalog order.
	Songs(ctx context.Context, opts SongsOptions) ([]models.Song, error)

	// SongSchedules retrieves a song's recent schedule history, capped at
	// five records, most recent first. The raw response body is returned
	// alongside the parsed summary so callers can cache it verbatim.
	SongSchedules(ctx context.Context, songID string) (*ScheduleResult, error)

	// Name returns the name of the service (e.g., "Planning Center Services")
	Name() string
}

// SongsOptions controls catalog fetching.
type SongsOptions struct {
	Order    string // Sort order, defaults to "-last_scheduled_at"
	PerPage  int    // Page size, defaults to 100
	AllPages bool   // Follow pagination links until the catalog is exhausted
}

// ScheduleResult pairs a parsed schedule summary with the raw response text
// it was decoded from.
type ScheduleResult struct {
	Raw     []byte
	Summary models.ScheduleSummary
}
