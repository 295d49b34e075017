package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/services"
	"github.com/desertthunder/playdl/internal/shared"
	"github.com/urfave/cli/v3"
)

type locateResult struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
}

// Locate prints the video id the search page returns first for a track descriptor.
func (r *Runner) Locate(ctx context.Context, cmd *cli.Command) error {
	descriptor := cmd.StringArg("track")
	if descriptor == "" {
		return fmt.Errorf("%w: track descriptor", shared.ErrMissingArgument)
	}

	track, err := models.ParseTrack(descriptor)
	if err != nil {
		return err
	}

	id, err := r.locator().Locate(ctx, track)
	if err != nil {
		return err
	}

	result := locateResult{
		Title:   track.Title,
		Artist:  track.Artist,
		VideoID: id,
		URL:     fmt.Sprintf(services.VideoURLTemplate, id),
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	return r.writePlain("%s\t%s\n", result.VideoID, result.URL)
}
