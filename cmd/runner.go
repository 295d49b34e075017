package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdl/internal/audio"
	"github.com/desertthunder/playdl/internal/services"
	"github.com/desertthunder/playdl/internal/shared"
	"github.com/desertthunder/playdl/internal/tasks"
	"github.com/desertthunder/playdl/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    ui.Default,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, tracksCommand, locateCommand, transcodeCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the config file named by --config (when it exists), applies environment
// overrides and sets the log level.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" && shared.FileExists(r.configPath) {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("config loaded", "path", r.configPath)
	}
	r.config.ApplyEnv()

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

func (r *Runner) spotify() (*services.SpotifyService, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	svc, err := services.NewSpotifyService(r.config.SpotifyMap())
	if err != nil {
		return nil, fmt.Errorf("failed to create Spotify service: %w", err)
	}
	return svc.WithHTTPClient(r.httpClient), nil
}

func (r *Runner) locator() *services.SearchLocator {
	return services.NewSearchLocator(r.config.YouTube.SearchURL, r.config.YouTube.SearchRate).WithHTTPClient(r.httpClient)
}

func (r *Runner) transcoder() *audio.Transcoder {
	return audio.NewTranscoder(r.config.FFmpeg.Path)
}

func (r *Runner) pipeline(outputDir string) (*tasks.Pipeline, error) {
	spotify, err := r.spotify()
	if err != nil {
		return nil, err
	}

	opts := tasks.PipelineOpts{
		Auth:       spotify,
		Resolver:   spotify,
		Locator:    r.locator(),
		Fetcher:    services.NewStreamFetcher(r.httpClient),
		Transcoder: r.transcoder(),
		OutputDir:  outputDir,
		WriteM3U:   r.config.Output.WriteM3U,
		Logger:     r.logger,
	}
	if r.config.Output.TagAudio {
		opts.Tagger = audio.NewTagger()
	}

	return tasks.NewPipeline(opts), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", r.palette.Title(title))
	r.writePlain("═══════════════════════════════════════\n")
}
