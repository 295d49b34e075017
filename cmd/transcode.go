package main

import (
	"context"
	"path/filepath"

	"github.com/desertthunder/playdl/internal/audio"
	"github.com/urfave/cli/v3"
)

// Transcode converts the raw downloads in an existing playlist directory.
func (r *Runner) Transcode(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")

	results, err := r.transcoder().TranscodeDir(ctx, dir)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		r.writePlain("No raw files in %s\n", dir)
		return nil
	}

	failed := 0
	for _, res := range results {
		name := filepath.Base(res.Input)
		switch res.Status {
		case audio.Converted:
			r.writePlain("%s %s\n", r.palette.OK("✓"), name)
		case audio.Skipped:
			r.writePlain("%s %s (mp3 exists)\n", r.palette.Help("-"), name)
		case audio.Failed:
			failed++
			r.writePlain("%s %s\n", r.palette.Err("✗"), name)
			r.logger.Error("transcode failed", "file", name, "error", res.Err)
		}
	}

	r.writePlain("\n%s\n", r.palette.Count("Failed", failed, true))
	return nil
}
