package main

import (
	"context"

	"github.com/desertthunder/playdl/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Wrote %s\n", path)
	r.writePlain("%s\n", r.palette.Help("Fill in [credentials.spotify] or set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET."))
	return nil
}
