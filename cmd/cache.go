package main

import (
	"context"
	"fmt"

	"github.com/openchord/rotx/internal/repositories"
	"github.com/openchord/rotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// sessionStore returns the cache as its repository type, which carries the
// management operations the ScheduleCache interface does not.
func (r *Runner) sessionStore() (*repositories.ScheduleCacheRepository, error) {
	repo, ok := r.cache.(*repositories.ScheduleCacheRepository)
	if !ok || repo == nil {
		return nil, fmt.Errorf("%w: session cache not initialized", shared.ErrServiceUnavailable)
	}
	return repo, nil
}

// CacheStats prints entry counts and the last write time for the session cache.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.sessionStore()
	if err != nil {
		return err
	}

	stats, err := repo.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	r.writePlain("Cached schedule responses: %d\n", stats.Entries)
	if stats.LastWrite != nil {
		r.writePlain("Last write: %s\n", stats.LastWrite.Format("2006-01-02 15:04:05"))
	}

	return nil
}

// CacheClear removes every cached schedule response.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.sessionStore()
	if err != nil {
		return err
	}

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("session cache cleared")
	r.writePlain("✓ Session cache cleared\n")
	return nil
}
