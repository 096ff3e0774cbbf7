package tasks

import (
	"context"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/shared"
)

// cacheKeyPrefix namespaces session store entries by endpoint.
const cacheKeyPrefix = "songSchedules."

// timeoutSummary is substituted when a schedule fetch exceeds its budget.
//
// Downstream filtering requires TotalCount > 1, so the value 2 keeps a
// slow-to-answer song in the rotation instead of silently dropping it. The
// exact values are load-bearing; do not change them.
var timeoutSummary = models.ScheduleSummary{TotalCount: 2}

// Enricher attaches schedule history to catalog songs with cache-or-fetch
// semantics under a fixed time budget.
type Enricher struct {
	service services.Service
	cache   ScheduleCache
	timeout time.Duration
}

// NewEnricher creates a new Enricher. The cache may be nil.
func NewEnricher(service services.Service, cache ScheduleCache, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Enricher{
		service: service,
		cache:   cache,
		timeout: timeout,
	}
}

// Enrich obtains the song's recent schedule summary and returns the song with
// it attached.
//
// The session cache is consulted first; a hit short-circuits the network
// entirely. Otherwise the fetch races the configured budget: on timeout the
// in-flight request is cancelled and the sentinel summary is substituted. A
// successful response body is written back to the cache before returning.
// Non-timeout fetch errors are returned to the caller, which decides whether
// the song is excluded.
func (en *Enricher) Enrich(ctx context.Context, song models.Song) (models.EnrichedSong, error) {
	key := cacheKeyPrefix + song.ID

	if en.cache != nil {
		if body, ok, err := en.cache.Get(key); err == nil && ok {
			if summary, err := services.ParseSchedules([]byte(body)); err == nil {
				return models.EnrichedSong{Song: song, Schedules: summary}, nil
			}
			// An unreadable entry falls through to a fresh fetch.
		}
	}

	result, timedOut, err := shared.RunWithTimeout(ctx, en.timeout, (*services.ScheduleResult)(nil), func(ctx context.Context) (*services.ScheduleResult, error) {
		return en.service.SongSchedules(ctx, song.ID)
	})
	if timedOut {
		return models.EnrichedSong{Song: song, Schedules: timeoutSummary}, nil
	}
	if err != nil {
		return models.EnrichedSong{}, err
	}

	if en.cache != nil {
		// Cache write failures are ignored; the next call simply fetches again.
		_ = en.cache.Set(key, string(result.Raw))
	}

	return models.EnrichedSong{Song: song, Schedules: result.Summary}, nil
}
