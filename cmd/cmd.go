// submodule cmd contains command definitions
package main

import (
	"fmt"
	"strings"

	"github.com/desertthunder/playdl/internal/formatter"
	"github.com/urfave/cli/v3"
)

// rootCommand builds the application. With no subcommand it behaves like "run".
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playdl",
		Usage:     "Download a Spotify playlist as MP3 files by way of YouTube",
		Version:   "0.1.0",
		ArgsUsage: "<playlist url>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		}, runFlags(true)...),
		Before:   r.Before,
		Action:   r.Run,
		Commands: r.register(),
	}
}

// runFlags are shared by the root command and "run". On the root they are local so they
// do not clash with the subcommand's own copies.
func runFlags(local bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Spotify playlist URL or ID",
			Local:   local,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Directory in which the playlist directory is created (overrides output.directory)",
			Local:   local,
		},
	}
}

// runCommand runs the whole download pipeline for one playlist
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Download every track of a playlist and convert it to MP3",
		ArgsUsage: "<playlist url>",
		Flags:     runFlags(false),
		Action:    r.Run,
	}
}

// tracksCommand resolves a playlist without downloading anything
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tracks",
		Aliases:   []string{"ls"},
		Usage:     "List the resolved tracks of a playlist",
		ArgsUsage: "<playlist url>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Spotify playlist URL or ID",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Output format (%s)", strings.Join(formatter.Formats, ", ")),
				Value:   formatter.FormatText,
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Write the listing to this file instead of stdout",
			},
		},
		Action: r.Tracks,
	}
}

// locateCommand looks up the video for a single track descriptor
func locateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "locate",
		Aliases:   []string{"search"},
		Usage:     `Find the video for a "title --- artist" descriptor`,
		ArgsUsage: `"<title> --- <artist>"`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "track",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Locate,
	}
}

// transcodeCommand converts raw downloads already on disk
func transcodeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transcode",
		Usage: "Convert every .mp4 in a directory to .mp3",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Directory containing raw downloads",
				Required: true,
			},
		},
		Action: r.Transcode,
	}
}

// configCommand handles configuration file operations
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write an example config.toml",
				Action: r.ConfigInit,
			},
		},
	}
}
