package config

import (
	"slices"
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLabelsFile sets the path to the class labels CSV.
func OptLabelsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Labels File", s) {
			c.LabelsFile = s
		}
	}
}

// OptOutputDir sets the directory for curated tables and downloads.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.OutputDir = s
		}
	}
}

// OptRebalanceSeed sets the seed of the rebalancing random source.
// Any value is accepted, including zero and negative numbers.
func OptRebalanceSeed(i int64) Option {
	return func(c *Config) {
		c.Rebalance.Seed = i
	}
}

// OptRebalanceStrict makes rebalancing fail on empty focus buckets.
func OptRebalanceStrict(b bool) Option {
	return func(c *Config) {
		c.Rebalance.Strict = b
	}
}

// OptDownloadSampleRate sets the target sampling rate in Hz.
func OptDownloadSampleRate(i int) Option {
	return func(c *Config) {
		if isValidInt("Download Sample Rate", i) {
			c.Download.SampleRate = i
		}
	}
}

// OptDownloadChannels sets channel processing.
// Valid values: "stereo", "mono_split", "mono_reduce" ("mono_red" is
// accepted as an alias of "mono_reduce").
func OptDownloadChannels(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	if s == "mono_red" {
		s = "mono_reduce"
	}
	return func(c *Config) {
		if isValidEnum("Download.Channels", s) {
			c.Download.Channels = s
		}
	}
}

// OptDownloadNormalize enables peak normalization.
func OptDownloadNormalize(b bool) Option {
	return func(c *Config) {
		c.Download.Normalize = b
	}
}

// OptDownloadCookiesFile sets the cookies file given to yt-dlp.
func OptDownloadCookiesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Cookies File", s) {
			c.Download.CookiesFile = s
		}
	}
}

// OptDownloadDelay sets the bounds of the random pause between rows.
// Zero bounds disable throttling, which is only useful in tests.
func OptDownloadDelay(minDelay, maxDelay time.Duration) Option {
	return func(c *Config) {
		if isValidDelay(minDelay, maxDelay) {
			c.Download.MinDelay = minDelay
			c.Download.MaxDelay = maxDelay
		}
	}
}

// OptDownloadPersistMode sets how download state is persisted.
// Valid values: "table", "journal".
func OptDownloadPersistMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Download.PersistMode", s) {
			c.Download.PersistMode = s
		}
	}
}

// OptDownloadAuthRetries sets how many credential refreshes a row may
// trigger before it is reported as failed.
func OptDownloadAuthRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Download Auth Retries", i) {
			c.Download.AuthRetries = i
		}
	}
}

// OptDownloadRefreshCommand sets the command awaited on credential refresh.
func OptDownloadRefreshCommand(ss []string) Option {
	ss = cleanStrings(ss)
	return func(c *Config) {
		if isValidSlice("Download Refresh Command", ss) {
			c.Download.RefreshCommand = ss
		}
	}
}

// OptDownloadAuthMarkers sets error substrings that mean
// credentials have to be refreshed.
func OptDownloadAuthMarkers(ss []string) Option {
	ss = cleanStrings(ss)
	return func(c *Config) {
		if isValidSlice("Download Auth Markers", ss) {
			c.Download.AuthMarkers = ss
		}
	}
}

// OptDownloadBanMarkers sets error substrings that stop the run.
func OptDownloadBanMarkers(ss []string) Option {
	ss = cleanStrings(ss)
	return func(c *Config) {
		if isValidSlice("Download Ban Markers", ss) {
			c.Download.BanMarkers = ss
		}
	}
}

// OptDownloadInstallYtdlp toggles automatic yt-dlp installation.
func OptDownloadInstallYtdlp(b bool) Option {
	return func(c *Config) {
		c.Download.InstallYtdlp = b
	}
}

// OptDownloadFormat sets the yt-dlp format selector.
func OptDownloadFormat(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Download Format", s) {
			c.Download.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets how many input files are read concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func cleanStrings(ss []string) []string {
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return slices.Clip(res)
}
