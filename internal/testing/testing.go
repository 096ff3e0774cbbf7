// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/openchord/rotx/internal/models"
	"github.com/openchord/rotx/internal/services"
)

// MockService is a configurable test double for [services.Service]
type MockService struct {
	SongsFn         func(ctx context.Context, opts services.SongsOptions) ([]models.Song, error)
	SongSchedulesFn func(ctx context.Context, songID string) (*services.ScheduleResult, error)
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) Songs(ctx context.Context, opts services.SongsOptions) ([]models.Song, error) {
	if m.SongsFn == nil {
		return []models.Song{}, nil
	}
	return m.SongsFn(ctx, opts)
}

func (m *MockService) SongSchedules(ctx context.Context, songID string) (*services.ScheduleResult, error) {
	if m.SongSchedulesFn == nil {
		return &services.ScheduleResult{}, nil
	}
	return m.SongSchedulesFn(ctx, songID)
}

// MockRoundTripper returns a canned response or error for every request
type MockRoundTripper struct {
	resp *http.Response
	err  error
}

// NewMockRoundTripper creates a MockRoundTripper with the given response and error
func NewMockRoundTripper(resp *http.Response, err error) *MockRoundTripper {
	return &MockRoundTripper{resp: resp, err: err}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

// NewJSONResponse builds an [*http.Response] with the given status code and JSON body
func NewJSONResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

// NewLimitedWriter creates a LimitedWriter that delegates to target until maxWrites is reached
func NewLimitedWriter(target io.Writer, maxWrites int) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func (w *LimitedWriter) Write(p []byte) (n int, err error) {
	if w.written >= w.maxWrites {
		return 0, errors.New("write limit reached")
	}
	w.written++
	return w.target.Write(p)
}
