// Planning Center Services API implementation of [Service]
//
// Response types based on https://developer.planning.center/docs/#/apps/services
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/shared"
)

const (
	planningCenterBaseURL = "https://api.planningcenteronline.com/services/v2"

	// The API caps song_schedules usefully at five records per song.
	schedulePageSize = 5
)

// PlanningCenterService implements the Service interface for the Planning
// Center Services v2 API. Authenticates with a personal access token pair
// sent as HTTP Basic credentials on every request.
type PlanningCenterService struct {
	baseURL    string
	appID      string
	secret     string
	httpClient *http.Client
	now        func() time.Time
}

// NewPlanningCenterService creates a new Planning Center service with the given credentials.
// Expects "app_id" and "secret"; "base_url" is optional.
func NewPlanningCenterService(credentials map[string]string, client *http.Client) (*PlanningCenterService, error) {
	appID, ok := credentials["app_id"]
	if !ok || appID == "" {
		return nil, fmt.Errorf("%w: missing app_id", shared.ErrMissingCredentials)
	}

	secret, ok := credentials["secret"]
	if !ok || secret == "" {
		return nil, fmt.Errorf("%w: missing secret", shared.ErrMissingCredentials)
	}

	baseURL := credentials["base_url"]
	if baseURL == "" {
		baseURL = planningCenterBaseURL
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &PlanningCenterService{
		baseURL:    baseURL,
		appID:      appID,
		secret:     secret,
		httpClient: client,
		now:        time.Now,
	}, nil
}

func (s *PlanningCenterService) Name() string {
	return "Planning Center Services"
}

// get performs an authenticated GET against a fully-built URL and returns the
// raw response body, decoding it into result when result is non-nil.
func (s *PlanningCenterService) get(ctx context.Context, requestURL string, result any) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(s.appID, s.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return body, nil
}

// endpointURL builds a request URL for an endpoint relative to the API base.
func (s *PlanningCenterService) endpointURL(endpoint string, query url.Values) string {
	requestURL := s.baseURL + "/" + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	return requestURL
}

// Songs retrieves the song catalog, excluding hidden songs.
// When opts.AllPages is set, pagination links are followed until exhausted.
func (s *PlanningCenterService) Songs(ctx context.Context, opts SongsOptions) ([]models.Song, error) {
	if opts.Order == "" {
		opts.Order = "-last_scheduled_at"
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 100
	}

	query := url.Values{}
	query.Set("order", opts.Order)
	query.Set("per_page", fmt.Sprintf("%d", opts.PerPage))
	query.Set("where[hidden]", "false")

	requestURL := s.endpointURL("songs", query)

	var songs []models.Song
	for {
		var response models.SongsResponse
		if _, err := s.get(ctx, requestURL, &response); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrCatalogFetch, err)
		}

		for _, resource := range response.Data {
			songs = append(songs, resource.ToSong())
		}

		if !opts.AllPages || response.Links.Next == nil || *response.Links.Next == "" {
			break
		}
		requestURL = *response.Links.Next
	}

	return songs, nil
}

// SongSchedules retrieves a song's schedule records before the current time,
// most recent first.
func (s *PlanningCenterService) SongSchedules(ctx context.Context, songID string) (*ScheduleResult, error) {
	if songID == "" {
		return nil, fmt.Errorf("%w: missing song ID", shared.ErrInvalidArgument)
	}

	query := url.Values{}
	query.Set("filter", "before")
	query.Set("before", s.now().UTC().Format(time.RFC3339))
	query.Set("per_page", fmt.Sprintf("%d", schedulePageSize))
	query.Set("order", "-plan_sort_date")

	endpoint := fmt.Sprintf("songs/%s/song_schedules", url.PathEscape(songID))

	raw, err := s.get(ctx, s.endpointURL(endpoint, query), nil)
	if err != nil {
		return nil, err
	}

	summary, err := ParseSchedules(raw)
	if err != nil {
		return nil, err
	}

	return &ScheduleResult{Raw: raw, Summary: summary}, nil
}

// ParseSchedules decodes a raw song_schedules response body into a summary.
// Used both for live responses and for bodies replayed from the session cache.
func ParseSchedules(raw []byte) (models.ScheduleSummary, error) {
	var response models.SchedulesResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return models.ScheduleSummary{}, fmt.Errorf("failed to decode schedules: %w", err)
	}
	return response.ToSummary(), nil
}
