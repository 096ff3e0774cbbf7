package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/shared"
)

// mockService is a test double for services.Service with per-song schedules,
// injectable errors, and artificial latency.
type mockService struct {
	mu           sync.Mutex
	songs        []models.Song
	songsErr     error
	schedules    map[string]models.ScheduleSummary
	scheduleErrs map[string]error
	delays       map[string]time.Duration
	calls        map[string]int
	cancellations map[string]int
}

func newMockService(songs []models.Song) *mockService {
	return &mockService{
		songs:         songs,
		schedules:     make(map[string]models.ScheduleSummary),
		scheduleErrs:  make(map[string]error),
		delays:        make(map[string]time.Duration),
		calls:         make(map[string]int),
		cancellations: make(map[string]int),
	}
}

func (m *mockService) Name() string { return "mock" }

func (m *mockService) Songs(ctx context.Context, opts services.SongsOptions) ([]models.Song, error) {
	if m.songsErr != nil {
		return nil, m.songsErr
	}
	return m.songs, nil
}

func (m *mockService) SongSchedules(ctx context.Context, songID string) (*services.ScheduleResult, error) {
	m.mu.Lock()
	m.calls[songID]++
	delay := m.delays[songID]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			m.mu.Lock()
			m.cancellations[songID]++
			m.mu.Unlock()
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.scheduleErrs[songID]; err != nil {
		return nil, err
	}

	summary := m.schedules[songID]
	raw := rawScheduleBody(summary)
	return &services.ScheduleResult{Raw: raw, Summary: summary}, nil
}

func (m *mockService) callCount(songID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[songID]
}

func (m *mockService) cancelCount(songID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancellations[songID]
}

// rawScheduleBody builds a wire-shaped body that parses back to the summary.
func rawScheduleBody(summary models.ScheduleSummary) []byte {
	resp := models.SchedulesResponse{
		Meta: models.PageMeta{TotalCount: summary.TotalCount, Count: len(summary.Items)},
	}
	for i, item := range summary.Items {
		resp.Data = append(resp.Data, models.ScheduleResource{
			Type: "SongSchedule",
			ID:   fmt.Sprintf("%d", i),
			Attributes: models.ScheduleAttributes{
				ServiceTypeName: item.ServiceTypeName,
				PlanSortDate:    item.PlanSortDate,
			},
		})
	}
	raw, _ := json.Marshal(resp)
	return raw
}

// memoryCache is an in-memory ScheduleCache double.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[key]
	return body, ok, nil
}

func (c *memoryCache) Set(key, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
	return nil
}

func recentDate(now time.Time, daysAgo int) *time.Time {
	d := now.AddDate(0, 0, -daysAgo)
	return &d
}

func testSong(id, title string, lastScheduled *time.Time) models.Song {
	return models.Song{ID: id, Title: title, LastScheduledAt: lastScheduled}
}

func usedSummary(count int, serviceTypes ...string) models.ScheduleSummary {
	summary := models.ScheduleSummary{TotalCount: count}
	for i, st := range serviceTypes {
		summary.Items = append(summary.Items, models.ScheduleRecord{
			ServiceTypeName: st,
			PlanSortDate:    time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
		})
	}
	return summary
}

func TestRotationEngine_Plan(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full pipeline filters, enriches and sorts", func(t *testing.T) {
		svc := newMockService([]models.Song{
			testSong("1", "Oceans", recentDate(now, 30)),
			testSong("2", "Christmas Medley", recentDate(now, 10)),
			testSong("3", "Oceans ", recentDate(now, 20)), // duplicate title
			testSong("4", "Build My Life", recentDate(now, 5)),
			testSong("5", "Way Maker", recentDate(now, 15)),
			testSong("6", "Dusty Hymn", nil), // never scheduled
		})
		svc.schedules["1"] = usedSummary(8, "Sunday AM")
		svc.schedules["4"] = usedSummary(3, "Sunday AM", "Youth Night")
		svc.schedules["5"] = usedSummary(3, "Sunday PM")

		engine := NewRotationEngine(svc, newMemoryCache())
		engine.now = func() time.Time { return now }

		result, err := engine.Plan(context.Background(), nil, PlanOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.CatalogCount != 6 {
			t.Errorf("expected catalog count 6, got %d", result.CatalogCount)
		}
		if result.CandidateCount != 3 {
			t.Errorf("expected 3 candidates, got %d", result.CandidateCount)
		}
		if result.PlannedCount != 3 {
			t.Errorf("expected 3 planned songs, got %d", result.PlannedCount)
		}

		// Ascending by usage; equal counts keep catalog order (4 before 5).
		gotIDs := make([]string, 0, len(result.Songs))
		for _, s := range result.Songs {
			gotIDs = append(gotIDs, s.ID)
		}
		wantIDs := []string{"4", "5", "1"}
		for i, want := range wantIDs {
			if gotIDs[i] != want {
				t.Fatalf("expected order %v, got %v", wantIDs, gotIDs)
			}
		}

		if result.RunID == "" {
			t.Error("expected run ID to be assigned")
		}
	})

	t.Run("catalog failure is fatal", func(t *testing.T) {
		svc := newMockService(nil)
		svc.songsErr = fmt.Errorf("%w: status 500", shared.ErrCatalogFetch)

		engine := NewRotationEngine(svc, nil)

		_, err := engine.Plan(context.Background(), nil, PlanOpts{})
		if !errors.Is(err, shared.ErrCatalogFetch) {
			t.Errorf("expected ErrCatalogFetch, got %v", err)
		}
	})

	t.Run("fetch error excludes song without aborting run", func(t *testing.T) {
		svc := newMockService([]models.Song{
			testSong("1", "Oceans", recentDate(now, 30)),
			testSong("2", "Build My Life", recentDate(now, 5)),
		})
		svc.schedules["1"] = usedSummary(4, "Sunday AM")
		svc.scheduleErrs["2"] = fmt.Errorf("%w: status 502", shared.ErrAPIRequest)

		engine := NewRotationEngine(svc, newMemoryCache())
		engine.now = func() time.Time { return now }

		result, err := engine.Plan(context.Background(), nil, PlanOpts{})
		if err != nil {
			t.Fatalf("expected run to survive per-song failure, got %v", err)
		}

		if len(result.Failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(result.Failures))
		}
		if result.Failures[0].Song.ID != "2" {
			t.Errorf("expected song 2 to fail, got %s", result.Failures[0].Song.ID)
		}
		if !errors.Is(result.Failures[0].Err, shared.ErrAPIRequest) {
			t.Errorf("expected wrapped API error, got %v", result.Failures[0].Err)
		}

		if len(result.Songs) != 1 || result.Songs[0].ID != "1" {
			t.Errorf("expected only song 1 in plan, got %+v", result.Songs)
		}
	})

	t.Run("timeout substitutes sentinel and keeps song", func(t *testing.T) {
		svc := newMockService([]models.Song{
			testSong("1", "Slow Song", recentDate(now, 30)),
		})
		svc.delays["1"] = time.Second

		engine := NewRotationEngine(svc, newMemoryCache())
		engine.now = func() time.Time { return now }

		result, err := engine.Plan(context.Background(), nil, PlanOpts{Timeout: 20 * time.Millisecond})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Songs) != 1 {
			t.Fatalf("expected the slow song to survive, got %d songs", len(result.Songs))
		}
		got := result.Songs[0].Schedules
		if got.TotalCount != 2 || len(got.Items) != 0 {
			t.Errorf("expected sentinel summary {2, []}, got %+v", got)
		}
	})

	t.Run("results correlate by song identity under concurrency", func(t *testing.T) {
		var songs []models.Song
		svc := newMockService(nil)
		for i := 1; i <= 8; i++ {
			id := fmt.Sprintf("%d", i)
			songs = append(songs, testSong(id, "Song "+id, recentDate(now, i)))
			svc.schedules[id] = usedSummary(5, "Sunday AM")
			// Later songs answer faster, inverting completion order.
			svc.delays[id] = time.Duration(9-i) * 5 * time.Millisecond
		}
		svc.songs = songs

		engine := NewRotationEngine(svc, newMemoryCache())
		engine.now = func() time.Time { return now }

		result, err := engine.Plan(context.Background(), nil, PlanOpts{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Songs) != 8 {
			t.Fatalf("expected 8 songs, got %d", len(result.Songs))
		}
		// Equal counts throughout, so stable sort preserves catalog order.
		for i, s := range result.Songs {
			want := fmt.Sprintf("%d", i+1)
			if s.ID != want {
				t.Fatalf("expected catalog order at %d, got ID %s", i, s.ID)
			}
		}
	})

	t.Run("bounded fan-out still completes", func(t *testing.T) {
		var songs []models.Song
		svc := newMockService(nil)
		for i := 1; i <= 5; i++ {
			id := fmt.Sprintf("%d", i)
			songs = append(songs, testSong(id, "Song "+id, recentDate(now, i)))
			svc.schedules[id] = usedSummary(2, "Sunday AM")
		}
		svc.songs = songs

		engine := NewRotationEngine(svc, newMemoryCache())
		engine.now = func() time.Time { return now }

		result, err := engine.Plan(context.Background(), nil, PlanOpts{MaxConcurrent: 2, RateLimit: 1000})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(result.Songs) != 5 {
			t.Errorf("expected 5 songs, got %d", len(result.Songs))
		}
	})

	t.Run("progress updates arrive without blocking", func(t *testing.T) {
		svc := newMockService([]models.Song{
			testSong("1", "Oceans", recentDate(now, 30)),
		})
		svc.schedules["1"] = usedSummary(4, "Sunday AM")

		engine := NewRotationEngine(svc, newMemoryCache())
		engine.now = func() time.Time { return now }

		progress := make(chan ProgressUpdate, 32)
		if _, err := engine.Plan(context.Background(), progress, PlanOpts{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) == 0 {
			t.Fatal("expected progress updates")
		}
		if phases[0] != FetchCatalog {
			t.Errorf("expected first phase fetch_catalog, got %s", phases[0])
		}
		if phases[len(phases)-1] != PlanReady {
			t.Errorf("expected final phase plan_ready, got %s", phases[len(phases)-1])
		}
	})

	t.Run("nil service is rejected", func(t *testing.T) {
		engine := NewRotationEngine(nil, nil)
		_, err := engine.Plan(context.Background(), nil, PlanOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
