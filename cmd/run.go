package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/playdl/internal/shared"
	"github.com/desertthunder/playdl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// playlistRef returns the --url flag, falling back to the first positional argument.
func playlistRef(cmd *cli.Command) (string, error) {
	ref := cmd.String("url")
	if ref == "" {
		ref = cmd.Args().First()
	}
	if ref == "" {
		return "", fmt.Errorf("%w: playlist url (pass --url or a positional argument)", shared.ErrMissingArgument)
	}
	return ref, nil
}

// Run downloads a playlist: resolve, locate, fetch, transcode, tag.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	ref, err := playlistRef(cmd)
	if err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Output.Directory
	}

	pipeline, err := r.pipeline(outputDir)
	if err != nil {
		return err
	}

	r.logger.Info("starting run", "playlist", ref, "output", outputDir)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ResolvePlaylist:
				if update.Step > 0 {
					r.writePlain("📥 %s\n", update.Message)
				}
			case tasks.DownloadTracks:
				r.writePlain("   %s\n", update.Message)
			case tasks.TranscodeFiles:
				if update.Step == 1 {
					r.writePlain("\n🎵 Converting to MP3...\n")
				}
				r.writePlain("   %s\n", update.Message)
			case tasks.WritePlaylist:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := pipeline.Run(ctx, ref, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Run Complete!")
	r.writePlain("Playlist: %s (%d tracks)\n", result.Playlist.Name, result.Playlist.TotalTracks)
	r.writePlain("Directory: %s\n", result.Directory)
	r.writePlain("%s\n", r.palette.Count("Downloaded", result.Downloaded, false))
	r.writePlain("%s\n", r.palette.Count("Already present", result.Skipped, false))
	r.writePlain("%s\n", r.palette.Count("Not found", result.NotFound, true))
	r.writePlain("%s\n", r.palette.Count("Failed", result.Failed, true))
	r.writePlain("%s\n", r.palette.Count("Converted", result.Converted, false))
	if n := result.TranscodeFailures(); n > 0 {
		r.writePlain("%s\n", r.palette.Count("Conversion failures", n, true))
	}
	r.writePlain("Elapsed: %s\n", result.Elapsed.Round(time.Millisecond))

	if n := result.NotFound + result.Failed; n > 0 {
		r.writePlain("\n%s\n", r.palette.Warn(fmt.Sprintf("%d tracks were not downloaded:", n)))
		for _, tr := range result.Tracks {
			if tr.Status == tasks.TrackNotFound || tr.Status == tasks.TrackFailed {
				r.writePlain("  - %s (%s)\n", tr.Track, tr.Status)
			}
		}
	}

	return nil
}
