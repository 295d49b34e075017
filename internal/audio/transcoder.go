package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/desertthunder/playdl/internal/shared"
)

// ffmpeg output parameters
const (
	FFmpegCommand = "ffmpeg"
	SampleRate    = "44100"
	Channels      = "2"
	Bitrate       = "192k"
	OutputFormat  = "mp3"
)

// CommandRunner runs an external process and returns an error for a failed start or a non-zero exit.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// execRunner runs the command with [exec.CommandContext], attaching its combined output to the error.
func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d: %s", name, exitErr.ExitCode(), lastLine(out))
		}
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}

// TranscodeStatus describes what happened to one raw file.
type TranscodeStatus int

const (
	Converted TranscodeStatus = iota
	Skipped
	Failed
)

func (s TranscodeStatus) String() string {
	switch s {
	case Converted:
		return "converted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// TranscodeResult records the outcome for one raw file.
type TranscodeResult struct {
	Input  string
	Output string
	Status TranscodeStatus
	Err    error
}

// Title is the base name of the input without its extension.
func (r TranscodeResult) Title() string {
	return strings.TrimSuffix(filepath.Base(r.Input), filepath.Ext(r.Input))
}

// Transcoder converts raw downloads to MP3 with an external ffmpeg binary.
type Transcoder struct {
	ffmpeg string
	run    CommandRunner
}

// NewTranscoder creates a Transcoder for the ffmpeg binary at path (empty means "ffmpeg" on PATH).
func NewTranscoder(path string) *Transcoder {
	if path == "" {
		path = FFmpegCommand
	}
	return &Transcoder{ffmpeg: path, run: execRunner}
}

// WithRunner replaces the process runner.
func (t *Transcoder) WithRunner(run CommandRunner) *Transcoder {
	if run != nil {
		t.run = run
	}
	return t
}

// Args returns the ffmpeg argument list converting input to output.
func Args(input, output string) []string {
	return []string{"-i", input, "-vn", "-ar", SampleRate, "-ac", Channels, "-ab", Bitrate, "-f", OutputFormat, output}
}

// Transcode converts one raw file to its .mp3 sibling and removes the raw file on success.
//
// If the sibling already exists nothing runs and the raw file is left untouched.
func (t *Transcoder) Transcode(ctx context.Context, input string) TranscodeResult {
	output := shared.SwapExt(input, shared.AudioExt)
	result := TranscodeResult{Input: input, Output: output}

	if shared.FileExists(output) {
		result.Status = Skipped
		return result
	}

	if err := t.run(ctx, t.ffmpeg, Args(input, output)...); err != nil {
		os.Remove(output)
		result.Status = Failed
		result.Err = fmt.Errorf("%w: %s: %v", shared.ErrTranscodeFailed, filepath.Base(input), err)
		return result
	}

	if !shared.FileExists(output) {
		result.Status = Failed
		result.Err = fmt.Errorf("%w: %s: no output written", shared.ErrTranscodeFailed, filepath.Base(input))
		return result
	}

	if err := os.Remove(input); err != nil {
		result.Status = Failed
		result.Err = fmt.Errorf("%w: failed to remove %s: %v", shared.ErrTranscodeFailed, input, err)
		return result
	}

	result.Status = Converted
	return result
}

// TranscodeDir transcodes every raw file in dir, in name order. One failure does not stop the batch.
func (t *Transcoder) TranscodeDir(ctx context.Context, dir string) ([]TranscodeResult, error) {
	inputs, err := RawFiles(dir)
	if err != nil {
		return nil, err
	}

	results := make([]TranscodeResult, 0, len(inputs))
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, t.Transcode(ctx, input))
	}

	return results, nil
}

// RawFiles lists the .mp4 files directly inside dir, in directory order (sorted by name).
func RawFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != shared.VideoExt {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}
