// package tasks implements the rotation planning pipeline over the scheduling service.
//
// The core abstraction is RotationEngine, which fetches the catalog, filters it,
// enriches the survivors with schedule history, and orders them for rotation.
// Operations emit progress updates via channels for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ScheduleCache defines the session store consumed by the enricher.
//
// Implementations must treat a missing key as a miss, not an error.
// repositories.ScheduleCacheRepository is the production implementation.
type ScheduleCache interface {
	Get(key string) (string, bool, error)
	Set(key, body string) error
}

// SongFailure records a song dropped from the run because its schedule fetch
// failed with a genuine error (not a timeout).
type SongFailure struct {
	Song models.Song
	Err  error
}

// PlanResult contains all data from one rotation planning run.
type PlanResult struct {
	RunID          string               // Unique identifier for this run
	Songs          []models.EnrichedSong // Final ordered rotation candidates
	Failures       []SongFailure        // Songs excluded by per-song fetch failures
	CatalogCount   int                  // Songs fetched from the catalog
	CandidateCount int                  // Songs surviving the pre-enrichment filter
	PlannedCount   int                  // Songs in the final output
}

// PlanOpts contains configuration for a rotation planning run.
type PlanOpts struct {
	Catalog            services.SongsOptions // Catalog fetch options
	RecencyMonths      int                   // Recency window in months (default: 6)
	Timeout            time.Duration         // Per-song schedule fetch budget (default: 999ms)
	SeasonalKeywords   []string              // Seasonal exclusion keywords (default: christmas, little drummer boy)
	VenueKeyword       string                // Venue keyword for the optional post-filter
	VenueFilterEnabled bool                  // Whether the venue post-filter runs (default: off)
	MaxConcurrent      int                   // Enrichment fan-out cap (0 = one goroutine per song)
	RateLimit          float64               // Schedule requests per second (0 = unlimited)
}

// DefaultTimeout is the per-song schedule fetch budget when none is configured.
const DefaultTimeout = 999 * time.Millisecond

// DefaultSeasonalKeywords are the canonical seasonal exclusions.
var DefaultSeasonalKeywords = []string{"christmas", "little drummer boy"}

// RotationEngine orchestrates the enrich/filter/sort pipeline.
// Contains dependencies on the scheduling service and the session cache.
type RotationEngine struct {
	service services.Service
	cache   ScheduleCache
	now     func() time.Time
}

// NewRotationEngine creates a new RotationEngine with the provided service and cache.
// The cache may be nil, in which case every enrichment fetches.
func NewRotationEngine(service services.Service, cache ScheduleCache) *RotationEngine {
	return &RotationEngine{
		service: service,
		cache:   cache,
		now:     time.Now,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *RotationEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Plan runs the full pipeline: catalog fetch, pre-enrichment filter,
// concurrent enrichment, post-enrichment filter, stable usage sort.
//
// A catalog fetch failure fails the whole run. A per-song schedule failure
// excludes only that song and is recorded in the result's Failures.
func (e *RotationEngine) Plan(ctx context.Context, progress chan<- ProgressUpdate, opts PlanOpts) (*PlanResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: scheduling service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.RecencyMonths <= 0 {
		opts.RecencyMonths = 6
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.SeasonalKeywords) == 0 {
		opts.SeasonalKeywords = DefaultSeasonalKeywords
	}

	result := &PlanResult{RunID: shared.GenerateID()}

	e.sendProgress(progress, fetchCatalogUpdate(e.service.Name()))

	songs, err := e.service.Songs(ctx, opts.Catalog)
	if err != nil {
		return nil, err
	}
	result.CatalogCount = len(songs)

	seasonal := SeasonalPattern(opts.SeasonalKeywords)
	cutoff := shared.AddMonths(e.now(), -opts.RecencyMonths)

	candidates := FilterCatalog(songs, cutoff, seasonal)
	result.CandidateCount = len(candidates)
	e.sendProgress(progress, catalogFilteredUpdate(len(candidates), len(songs)))

	enriched, failures, err := e.enrichAll(ctx, progress, candidates, opts)
	if err != nil {
		return nil, err
	}
	result.Failures = failures

	e.sendProgress(progress, filterSchedulesUpdate(len(enriched)))
	kept := FilterEnriched(enriched, seasonal, opts.VenueKeyword, opts.VenueFilterEnabled)

	SortByUsage(kept)
	result.Songs = kept
	result.PlannedCount = len(kept)

	e.sendProgress(progress, planReadyUpdate(result))
	return result, nil
}

// enrichAll fans enrichment out across the candidate songs.
//
// Results are slotted by candidate index so the output preserves catalog
// order regardless of completion order. Per-song failures never cancel the
// group; only parent context cancellation aborts the fan-out.
func (e *RotationEngine) enrichAll(ctx context.Context, progress chan<- ProgressUpdate, candidates []models.Song, opts PlanOpts) ([]models.EnrichedSong, []SongFailure, error) {
	enricher := NewEnricher(e.service, e.cache, opts.Timeout)

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	slots := make([]*models.EnrichedSong, len(candidates))

	var mu sync.Mutex
	var failures []SongFailure
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxConcurrent > 0 {
		g.SetLimit(opts.MaxConcurrent)
	}

	total := len(candidates)
	for i, song := range candidates {
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
			}

			enriched, err := enricher.Enrich(gctx, song)

			mu.Lock()
			defer mu.Unlock()
			completed++
			if err != nil {
				failures = append(failures, SongFailure{Song: song, Err: err})
				e.sendProgress(progress, enrichFailedUpdate(completed, total, song, err))
				return nil
			}
			slots[i] = &enriched
			e.sendProgress(progress, enrichSongUpdate(completed, total, song))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	enriched := make([]models.EnrichedSong, 0, len(candidates))
	for _, slot := range slots {
		if slot != nil {
			enriched = append(enriched, *slot)
		}
	}
	return enriched, failures, nil
}
