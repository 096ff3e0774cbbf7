package main

import (
	"context"
	"fmt"

	"github.com/openchord/rotx/internal/services"
	"github.com/openchord/rotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Query prints the artist-qualified search query for a title and author credit.
func (r *Runner) Query(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	author := cmd.StringArg("author")

	if title == "" {
		return fmt.Errorf("%w: song title is required", shared.ErrMissingArgument)
	}

	query := services.MapAuthorsToArtistQuery(title, author)
	return r.writePlain("%s\n", query)
}
