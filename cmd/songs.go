package main

import (
	"context"
	"fmt"

	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongsList fetches and prints the song catalog.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.requireService()
	if err != nil {
		return err
	}

	opts := services.SongsOptions{
		Order:    r.config.Catalog.Order,
		PerPage:  r.config.Catalog.PerPage,
		AllPages: r.config.Catalog.AllPages,
	}
	if cmd.IsSet("order") {
		opts.Order = cmd.String("order")
	}
	if cmd.IsSet("per-page") {
		opts.PerPage = cmd.Int("per-page")
	}
	if cmd.IsSet("all-pages") {
		opts.AllPages = cmd.Bool("all-pages")
	}

	r.logger.Info("fetching song catalog", "service", svc.Name())

	songs, err := svc.Songs(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Song Catalog (%d songs)", len(songs)))
	for i, song := range songs {
		r.writePlain("%d. %s", i+1, song.Title)
		if song.Author != "" {
			r.writePlain(" - %s", song.Author)
		}
		if song.LastScheduledAt != nil {
			r.writePlain(" (last scheduled %s)", song.LastScheduledAt.Format("2006-01-02"))
		}
		r.writePlain("\n")
	}

	return nil
}

// SongSchedules prints recent schedule history for a single song.
func (r *Runner) SongSchedules(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.requireService()
	if err != nil {
		return err
	}

	songID := cmd.StringArg("id")
	if songID == "" {
		return fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching song schedules", "song", songID)

	result, err := svc.SongSchedules(ctx, songID)
	if err != nil {
		return fmt.Errorf("failed to fetch schedules: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Summary, cmd.Bool("pretty"))
	}

	r.writePlain("Song %s: %d past schedules\n", songID, result.Summary.TotalCount)
	for _, item := range result.Summary.Items {
		r.writePlain("  - %s (%s)\n", item.ServiceTypeName, item.PlanSortDate.Format("2006-01-02"))
	}

	return nil
}
