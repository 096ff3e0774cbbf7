package main

import (
	"context"
	"time"

	"github.com/openchord/rotx/internal/formatter"
	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// planOpts builds engine options from the loaded config, then applies flag overrides.
func (r *Runner) planOpts(cmd *cli.Command) tasks.PlanOpts {
	cfg := r.config
	opts := tasks.PlanOpts{
		Catalog: services.SongsOptions{
			Order:    cfg.Catalog.Order,
			PerPage:  cfg.Catalog.PerPage,
			AllPages: cfg.Catalog.AllPages,
		},
		RecencyMonths:      cfg.Rotation.RecencyMonths,
		Timeout:            cfg.Rotation.Timeout(),
		SeasonalKeywords:   cfg.Rotation.SeasonalKeywords,
		VenueKeyword:       cfg.Rotation.VenueKeyword,
		VenueFilterEnabled: cfg.Rotation.VenueFilterEnabled,
		MaxConcurrent:      cfg.Rotation.MaxConcurrent,
		RateLimit:          cfg.Rotation.RateLimit,
	}

	if cmd.IsSet("recency-months") {
		opts.RecencyMonths = cmd.Int("recency-months")
	}
	if cmd.IsSet("timeout-ms") {
		opts.Timeout = time.Duration(cmd.Int("timeout-ms")) * time.Millisecond
	}
	if cmd.IsSet("venue") {
		opts.VenueFilterEnabled = cmd.Bool("venue")
	}
	if cmd.IsSet("venue-keyword") {
		opts.VenueKeyword = cmd.String("venue-keyword")
		opts.VenueFilterEnabled = true
	}
	if cmd.IsSet("max-concurrent") {
		opts.MaxConcurrent = cmd.Int("max-concurrent")
	}
	if cmd.IsSet("rate-limit") {
		opts.RateLimit = cmd.Float("rate-limit")
	}
	if cmd.IsSet("all-pages") {
		opts.Catalog.AllPages = cmd.Bool("all-pages")
	}

	return opts
}

// Plan runs the full rotation planning pipeline and prints the ordered plan.
func (r *Runner) Plan(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireService(); err != nil {
		return err
	}

	opts := r.planOpts(cmd)

	r.logger.Info("starting rotation plan", "service", r.service.Name())
	r.writePlain("Planning song rotation...\n\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchCatalog:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FilterCatalogPhase:
				r.writePlain("🔎 %s\n", update.Message)
			case tasks.EnrichSongs:
				r.writePlain("   %s\n", update.Message)
			case tasks.FilterSchedules:
				r.writePlain("\n🔎 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Plan(ctx, progressCh, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(result, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else {
		r.writePlain("\n")
		r.writePlainHeader("Rotation Plan")
		r.writePlain("Catalog: %d songs, %d candidates after filters\n", result.CatalogCount, result.CandidateCount)
		r.writePlain("Planned: %d songs (least used first)\n\n", result.PlannedCount)

		for i, song := range result.Songs {
			r.writePlain("%s\n", formatter.SongLine(i+1, song))
		}

		if len(result.Failures) > 0 {
			r.writePlain("\nExcluded %d songs after fetch failures:\n", len(result.Failures))
			for _, failure := range result.Failures {
				r.writePlain("  - %s: %v\n", failure.Song.Title, failure.Err)
			}
		}
	}

	if exportPath := cmd.String("export"); exportPath != "" {
		format := cmd.String("format")
		if err := formatter.WritePlanExport(result, format, exportPath); err != nil {
			return err
		}
		r.logger.Info("plan exported", "path", exportPath, "format", format)
		r.writePlain("\n✓ Plan written to %s\n", exportPath)
	}

	return nil
}
