package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdl/internal/audio"
	"github.com/desertthunder/playdl/internal/models"
	"github.com/desertthunder/playdl/internal/shared"
)

// Authorizer obtains a bearer token for the playlist API.
type Authorizer interface {
	Authorize(ctx context.Context) (string, error)
}

// Resolver turns a playlist reference into a sorted, sanitized [models.Playlist].
type Resolver interface {
	ResolvePlaylist(ctx context.Context, token, ref string) (*models.Playlist, error)
}

// Locator finds the video id for a track.
type Locator interface {
	Locate(ctx context.Context, track models.Track) (string, error)
}

// Fetcher downloads the progressive stream of a video into dir as <title>.mp4.
type Fetcher interface {
	Fetch(ctx context.Context, videoID, dir, title string) (string, error)
}

// DirTranscoder converts every raw file in a directory.
type DirTranscoder interface {
	TranscodeDir(ctx context.Context, dir string) ([]audio.TranscodeResult, error)
}

// Tagger writes metadata into a transcoded file.
type Tagger interface {
	Tag(path string, track models.Track, album string) error
}

// TrackStatus is the outcome of the download stage for one track.
type TrackStatus int

const (
	TrackDownloaded TrackStatus = iota
	TrackSkipped
	TrackNotFound
	TrackFailed
)

func (s TrackStatus) String() string {
	switch s {
	case TrackDownloaded:
		return "downloaded"
	case TrackSkipped:
		return "skipped"
	case TrackNotFound:
		return "not found"
	case TrackFailed:
		return "failed"
	default:
		return ""
	}
}

// TrackResult records what the download stage did for one track.
type TrackResult struct {
	Track   models.Track
	VideoID string
	Path    string
	Status  TrackStatus
	Err     error
}

// RunResult contains everything a run did.
type RunResult struct {
	RunID      string
	Playlist   *models.Playlist
	Directory  string
	Tracks     []TrackResult
	Transcodes []audio.TranscodeResult
	Downloaded int
	Skipped    int
	NotFound   int
	Failed     int
	Converted  int
	Tagged     int
	M3U        string
	Elapsed    time.Duration
}

// TranscodeFailures counts conversions that did not produce an MP3.
func (r *RunResult) TranscodeFailures() int {
	n := 0
	for _, t := range r.Transcodes {
		if t.Status == audio.Failed {
			n++
		}
	}
	return n
}

// Pipeline runs one playlist through every stage. All work happens on the calling goroutine.
type Pipeline struct {
	auth       Authorizer
	resolver   Resolver
	locator    Locator
	fetcher    Fetcher
	transcoder DirTranscoder
	tagger     Tagger
	root       string
	writeM3U   bool
	logger     *log.Logger
}

// PipelineOpts contains the stage implementations and output settings for a [Pipeline].
//
// Tagger may be nil to leave files untagged.
type PipelineOpts struct {
	Auth       Authorizer
	Resolver   Resolver
	Locator    Locator
	Fetcher    Fetcher
	Transcoder DirTranscoder
	Tagger     Tagger
	OutputDir  string
	WriteM3U   bool
	Logger     *log.Logger
}

// NewPipeline creates a Pipeline. OutputDir defaults to the working directory.
func NewPipeline(opts PipelineOpts) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	return &Pipeline{
		auth:       opts.Auth,
		resolver:   opts.Resolver,
		locator:    opts.Locator,
		fetcher:    opts.Fetcher,
		transcoder: opts.Transcoder,
		tagger:     opts.Tagger,
		root:       opts.OutputDir,
		writeM3U:   opts.WriteM3U,
		logger:     opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (p *Pipeline) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run downloads and converts every track of the playlist referenced by ref.
//
// The returned error is non-nil only for failures that end the run; the result is
// returned alongside it with whatever was done up to that point.
func (p *Pipeline) Run(ctx context.Context, ref string, progress chan<- ProgressUpdate) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{RunID: shared.GenerateID()}
	logger := shared.WithLogger(p.logger, "run", result.RunID)

	defer func() {
		result.Elapsed = time.Since(start)
		logger.Info("run finished", "elapsed", result.Elapsed.Round(time.Millisecond))
	}()

	p.sendProgress(progress, authorizeUpdate())
	token, err := p.auth.Authorize(ctx)
	if err != nil {
		return result, err
	}
	logger.Debug("access token acquired")

	p.sendProgress(progress, resolvingUpdate(ref))
	playlist, err := p.resolver.ResolvePlaylist(ctx, token, ref)
	if err != nil {
		return result, err
	}
	result.Playlist = playlist
	p.sendProgress(progress, resolvedUpdate(playlist))

	logger = shared.WithLogger(logger, "playlist", playlist.Name)
	logger.Info("playlist resolved", "tracks", playlist.TotalTracks)

	dir := filepath.Join(p.root, playlist.DirName())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, fmt.Errorf("failed to create playlist directory: %w", err)
	}
	result.Directory = dir

	if err := p.download(ctx, logger, result, progress); err != nil {
		return result, err
	}

	transcodes, err := p.transcoder.TranscodeDir(ctx, dir)
	result.Transcodes = transcodes
	for i, t := range transcodes {
		p.sendProgress(progress, transcodeUpdate(i+1, len(transcodes), t))
		switch t.Status {
		case audio.Converted:
			result.Converted++
			logger.Debug("converted", "file", filepath.Base(t.Output))
		case audio.Failed:
			logger.Error("transcode failed", "file", filepath.Base(t.Input), "error", t.Err)
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			return result, err
		}
		logger.Error("transcode stage failed", "error", err)
	}

	if p.tagger != nil {
		p.tag(logger, result)
		p.sendProgress(progress, tagUpdate(result.Tagged))
	}

	if p.writeM3U {
		path, entries, err := audio.WritePlaylist(playlist, dir)
		if err != nil {
			logger.Error("failed to write playlist file", "error", err)
		} else {
			result.M3U = path
			p.sendProgress(progress, m3uUpdate(path, entries))
		}
	}

	logger.Info("run summary",
		"downloaded", result.Downloaded,
		"skipped", result.Skipped,
		"not_found", result.NotFound,
		"failed", result.Failed,
		"converted", result.Converted,
	)
	return result, nil
}

// download walks the tracks in resolved order. Only cancellation stops it early.
func (p *Pipeline) download(ctx context.Context, logger *log.Logger, result *RunResult, progress chan<- ProgressUpdate) error {
	tracks := result.Playlist.Tracks
	total := len(tracks)
	result.Tracks = make([]TrackResult, 0, total)

	for i, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}

		tr := p.downloadTrack(ctx, result.Directory, track)
		result.Tracks = append(result.Tracks, tr)
		p.sendProgress(progress, trackUpdate(i+1, total, track, tr.Status.String()))

		l := shared.WithLogger(logger, "track", track.String())
		switch tr.Status {
		case TrackDownloaded:
			result.Downloaded++
			l.Info("downloaded", "video", tr.VideoID)
		case TrackSkipped:
			result.Skipped++
			l.Info("already downloaded")
		case TrackNotFound:
			result.NotFound++
			l.Warn("no video found", "error", tr.Err)
		case TrackFailed:
			result.Failed++
			l.Error("download failed", "video", tr.VideoID, "error", tr.Err)
		}
	}
	return nil
}

func (p *Pipeline) downloadTrack(ctx context.Context, dir string, track models.Track) TrackResult {
	tr := TrackResult{Track: track}

	if track.Title == "" {
		tr.Status = TrackNotFound
		tr.Err = fmt.Errorf("%w: track has no title", shared.ErrNoMatch)
		return tr
	}

	if shared.IsStaged(dir, track.Title) {
		tr.Status = TrackSkipped
		return tr
	}

	id, err := p.locator.Locate(ctx, track)
	if err != nil {
		tr.Err = err
		if errors.Is(err, shared.ErrNoMatch) {
			tr.Status = TrackNotFound
		} else {
			tr.Status = TrackFailed
		}
		return tr
	}
	tr.VideoID = id

	path, err := p.fetcher.Fetch(ctx, id, dir, track.Title)
	switch {
	case errors.Is(err, shared.ErrAlreadyStaged):
		tr.Status = TrackSkipped
	case errors.Is(err, shared.ErrNoStream):
		tr.Status = TrackNotFound
		tr.Err = err
	case err != nil:
		tr.Status = TrackFailed
		tr.Err = err
	default:
		tr.Status = TrackDownloaded
		tr.Path = path
	}
	return tr
}

// tag writes metadata to files converted in this run, matching them to tracks by title.
func (p *Pipeline) tag(logger *log.Logger, result *RunResult) {
	for _, t := range result.Transcodes {
		if t.Status != audio.Converted {
			continue
		}

		track, ok := result.Playlist.TrackByTitle(t.Title())
		if !ok {
			logger.Debug("no track for file, not tagging", "file", filepath.Base(t.Output))
			continue
		}

		if err := p.tagger.Tag(t.Output, track, result.Playlist.Name); err != nil {
			logger.Warn("failed to tag file", "file", filepath.Base(t.Output), "error", err)
			continue
		}
		result.Tagged++
	}
}
