package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/playdl/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Tracks resolves a playlist and prints its tracks without downloading anything.
//
// The same count check as a full run applies, so a mismatch is reported here too.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	ref, err := playlistRef(cmd)
	if err != nil {
		return err
	}

	spotify, err := r.spotify()
	if err != nil {
		return err
	}

	token, err := spotify.Authorize(ctx)
	if err != nil {
		return err
	}

	playlist, err := spotify.ResolvePlaylist(ctx, token, ref)
	if err != nil {
		return err
	}
	r.logger.Debug("playlist resolved", "name", playlist.Name, "tracks", playlist.TotalTracks)

	format := cmd.String("format")
	if path := cmd.String("save"); path != "" {
		if err := formatter.WriteExport(playlist, format, path); err != nil {
			return err
		}
		r.writePlain("✓ Wrote %d tracks to %s\n", len(playlist.Tracks), path)
		return nil
	}

	data, err := formatter.Export(playlist, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
