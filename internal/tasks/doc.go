// Package tasks orchestrates rotation planning over the scheduling service with real-time progress reporting.
//
// # Pipeline
//
// [RotationEngine.Plan] runs five stages in order:
//
//  1. Catalog fetch via [services.Service] — a failure here fails the run
//  2. Pre-enrichment filter: seasonal titles, recency cutoff, title de-dupe
//     (runs before enrichment so excluded songs cost no network round trip)
//  3. Concurrent enrichment: each surviving song's schedule history is
//     fetched independently, cache-first, raced against a fixed budget
//  4. Post-enrichment filter: usage threshold, seasonal service types, and
//     the optional venue keyword criterion
//  5. Stable ascending sort by aggregate usage count
//
// # Enrichment
//
// [Enricher.Enrich] consults the [ScheduleCache] before fetching and writes
// the raw response back after a successful fetch. A fetch that exceeds its
// budget is cancelled and replaced by a fixed sentinel summary whose usage
// count clears the downstream threshold, so slow answers are never silently
// excluded. A genuine fetch error excludes only that song; the engine records
// it in [PlanResult.Failures].
//
// Enrichment results are correlated back to songs by index, never by
// completion order, so downstream stages see the catalog order.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data. Updates use select with default to prevent blocking.
package tasks
