// Package config provides configuration management for evset.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// A .env file in the working directory is loaded before environment
// variables are read, so EVSET_* values can be kept there.
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - General: labels_file, output_dir, jobs_number
//   - Rebalance: seed, strict
//   - Download: sample_rate, channels, normalize, cookies_file, min_delay,
//     max_delay, persist_mode, auth_retries, refresh_command, auth_markers,
//     ban_markers, install_ytdlp, format
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use EVSET_ prefix with underscores for nesting:
//
//	EVSET_LABELS_FILE=./class_labels_indices.csv
//	EVSET_DOWNLOAD_SAMPLE_RATE=32000
//	EVSET_DOWNLOAD_CHANNELS=mono_reduce
//	EVSET_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// Config represents the complete evset configuration.
type Config struct {
	// LabelsFile is the path to the AudioSet class labels CSV
	// (columns mid/code and display_name).
	LabelsFile string `mapstructure:"labels_file" yaml:"labels_file"`

	// OutputDir is where curated tables and download folders are created.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Rebalance contains settings of the negative-class rebalancing.
	Rebalance RebalanceConfig `mapstructure:"rebalance" yaml:"rebalance"`

	// Download contains settings of the download and transcode loop.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber limits how many input tables are read concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// RebalanceConfig contains settings of the rebalancing filter.
type RebalanceConfig struct {
	// Seed initializes the random source used to shuffle buckets.
	// The same seed and input give the same output.
	Seed int64 `mapstructure:"seed" yaml:"seed"`

	// Strict makes rebalancing fail when any focus label has no rows.
	// When false such labels are reported and skipped.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// DownloadConfig contains settings of the downloader.
type DownloadConfig struct {
	// SampleRate is the target sampling rate of written audio.
	SampleRate int `mapstructure:"sample_rate" yaml:"sample_rate"`

	// Channels selects channel processing.
	// Valid values: "stereo", "mono_split", "mono_reduce".
	Channels string `mapstructure:"channels" yaml:"channels"`

	// Normalize scales every clip to a peak amplitude of 1.0.
	Normalize bool `mapstructure:"normalize" yaml:"normalize"`

	// CookiesFile is a Netscape cookies file passed to yt-dlp.
	CookiesFile string `mapstructure:"cookies_file" yaml:"cookies_file"`

	// MinDelay and MaxDelay bound the random pause between rows.
	MinDelay time.Duration `mapstructure:"min_delay" yaml:"min_delay"`
	MaxDelay time.Duration `mapstructure:"max_delay" yaml:"max_delay"`

	// PersistMode selects how download state is saved.
	// "table" rewrites the CSV after every row, "journal" appends
	// completed rows to a SQLite journal and rewrites the CSV at the end.
	PersistMode string `mapstructure:"persist_mode" yaml:"persist_mode"`

	// AuthRetries is how many credential refreshes a single row may trigger.
	AuthRetries int `mapstructure:"auth_retries" yaml:"auth_retries"`

	// RefreshCommand is run (and awaited) when the provider asks for
	// authentication. The first element is the executable.
	RefreshCommand []string `mapstructure:"refresh_command" yaml:"refresh_command"`

	// AuthMarkers are error substrings that mean credentials expired.
	AuthMarkers []string `mapstructure:"auth_markers" yaml:"auth_markers"`

	// BanMarkers are error substrings that mean the provider blocks us.
	// Any of them stops the whole run.
	BanMarkers []string `mapstructure:"ban_markers" yaml:"ban_markers"`

	// InstallYtdlp downloads a yt-dlp binary into the cache if none is found.
	InstallYtdlp bool `mapstructure:"install_ytdlp" yaml:"install_ytdlp"`

	// Format is the yt-dlp format selector.
	Format string `mapstructure:"format" yaml:"format"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		LabelsFile: "class_labels_indices.csv",
		OutputDir:  ".",
		Rebalance: RebalanceConfig{
			Seed: 42,
		},
		Download: DownloadConfig{
			SampleRate:     44_100,
			Channels:       "stereo",
			MinDelay:       5 * time.Second,
			MaxDelay:       20 * time.Second,
			PersistMode:    "table",
			AuthRetries:    1,
			RefreshCommand: []string{"firefox"},
			AuthMarkers:    DefaultAuthMarkers(),
			BanMarkers:     DefaultBanMarkers(),
			InstallYtdlp:   true,
			Format:         "bestaudio/best",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// DefaultAuthMarkers returns the error substrings YouTube uses when it wants
// a signed-in session.
func DefaultAuthMarkers() []string {
	return []string{"Sign in to confirm you"}
}

// DefaultBanMarkers returns the error substrings YouTube uses for a
// shadow-ban of the client.
func DefaultBanMarkers() []string {
	return []string{
		"This content isn't available, try again later.",
		"Video unavailable. This content isn’t available.",
		"The following content is not available on this app.",
	}
}
