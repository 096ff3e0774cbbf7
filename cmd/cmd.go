// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// planCommand runs the full rotation planning pipeline
func planCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"rotation"},
		Usage:   "Build a rotation plan from the song catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:  "recency-months",
				Usage: "Exclude songs scheduled within this many months",
			},
			&cli.IntFlag{
				Name:  "timeout-ms",
				Usage: "Per-song schedule fetch budget in milliseconds",
			},
			&cli.BoolFlag{
				Name:  "venue",
				Usage: "Keep only songs previously scheduled at the configured venue",
			},
			&cli.StringFlag{
				Name:  "venue-keyword",
				Usage: "Venue keyword for the --venue filter",
			},
			&cli.IntFlag{
				Name:  "max-concurrent",
				Usage: "Cap on concurrent schedule fetches (0 = unlimited)",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Schedule requests per second (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:  "all-pages",
				Usage: "Fetch every catalog page, not just the first",
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"o"},
				Usage:   "Write the plan to a file",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (csv, markdown, txt, json)",
				Value: "txt",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Plan,
	}
}

// songsCommand handles catalog operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"catalog"},
		Usage:   "Song catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs in the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "order",
						Usage: "Catalog sort order (API field, prefix with - for descending)",
					},
					&cli.IntFlag{
						Name:  "per-page",
						Usage: "Songs per page",
					},
					&cli.BoolFlag{
						Name:  "all-pages",
						Usage: "Fetch every catalog page",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "schedules",
				Usage: "Show recent schedule history for one song",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongSchedules,
			},
		},
	}
}

// queryCommand builds artist-qualified search queries from song credits
func queryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Build an artist search query from a title and author credit",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "title",
			},
			&cli.StringArg{
				Name: "author",
			},
		},
		Action: r.Query,
	}
}

// cacheCommand manages the session schedule cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the session schedule cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count and last write time",
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove every cached schedule response",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
