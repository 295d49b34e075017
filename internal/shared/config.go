package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override the configured Spotify credentials.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Spotify     SpotifyConfig     `toml:"spotify"`
	YouTube     YouTubeConfig     `toml:"youtube"`
	Output      OutputConfig      `toml:"output"`
	FFmpeg      FFmpegConfig      `toml:"ffmpeg"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyCredentials `toml:"spotify"`
}

// SpotifyCredentials contains the client-credentials pair for the Spotify Web API.
type SpotifyCredentials struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SpotifyConfig contains Spotify endpoints and request parameters.
type SpotifyConfig struct {
	TokenURL string `toml:"token_url"`
	APIURL   string `toml:"api_url"`
	Market   string `toml:"market"`
}

// YouTubeConfig contains search page settings.
type YouTubeConfig struct {
	SearchURL  string  `toml:"search_url"`
	SearchRate float64 `toml:"search_rate"`
}

// OutputConfig controls where playlist directories are created and what is written to them.
type OutputConfig struct {
	Directory string `toml:"directory"`
	TagAudio  bool   `toml:"tag_audio"`
	WriteM3U  bool   `toml:"write_m3u"`
}

// FFmpegConfig locates the transcoder binary.
type FFmpegConfig struct {
	Path string `toml:"path"`
}

// SpotifyMap returns the credential and endpoint settings in the form accepted by services.NewSpotifyService.
func (c *Config) SpotifyMap() map[string]string {
	return map[string]string{
		"client_id":     c.Credentials.Spotify.ClientID,
		"client_secret": c.Credentials.Spotify.ClientSecret,
		"token_url":     c.Spotify.TokenURL,
		"api_url":       c.Spotify.APIURL,
		"market":        c.Spotify.Market,
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values absent from the file keep their defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads a dotenv file into the process environment. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides the Spotify credentials with [EnvClientID] and [EnvClientSecret] when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
}

// Validate checks that everything needed before the first network call is present.
func (c *Config) Validate() error {
	if c.Credentials.Spotify.ClientID == "" || c.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: set %s and %s or fill [credentials.spotify]", ErrMissingCredentials, EnvClientID, EnvClientSecret)
	}
	if c.Spotify.TokenURL == "" || c.Spotify.APIURL == "" {
		return fmt.Errorf("%w: spotify endpoints must not be empty", ErrInvalidConfig)
	}
	if c.YouTube.SearchURL == "" {
		return fmt.Errorf("%w: youtube search_url must not be empty", ErrInvalidConfig)
	}
	if c.YouTube.SearchRate < 0 {
		return fmt.Errorf("%w: youtube search_rate must not be negative", ErrInvalidConfig)
	}
	return nil
}
