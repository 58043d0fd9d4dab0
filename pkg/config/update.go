package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var ss []string

	s = c.LabelsFile
	if s != "" {
		res = append(res, OptLabelsFile(s))
	}
	s = c.OutputDir
	if s != "" {
		res = append(res, OptOutputDir(s))
	}

	res = append(res,
		OptRebalanceSeed(c.Rebalance.Seed),
		OptRebalanceStrict(c.Rebalance.Strict),
	)

	i = c.Download.SampleRate
	if i > 0 {
		res = append(res, OptDownloadSampleRate(i))
	}
	s = c.Download.Channels
	if s != "" {
		res = append(res, OptDownloadChannels(s))
	}
	res = append(res, OptDownloadNormalize(c.Download.Normalize))
	s = c.Download.CookiesFile
	if s != "" {
		res = append(res, OptDownloadCookiesFile(s))
	}
	if c.Download.MaxDelay > 0 {
		res = append(res,
			OptDownloadDelay(c.Download.MinDelay, c.Download.MaxDelay))
	}
	s = c.Download.PersistMode
	if s != "" {
		res = append(res, OptDownloadPersistMode(s))
	}
	i = c.Download.AuthRetries
	if i > 0 {
		res = append(res, OptDownloadAuthRetries(i))
	}
	ss = c.Download.RefreshCommand
	if len(ss) > 0 {
		res = append(res, OptDownloadRefreshCommand(ss))
	}
	ss = c.Download.AuthMarkers
	if len(ss) > 0 {
		res = append(res, OptDownloadAuthMarkers(ss))
	}
	ss = c.Download.BanMarkers
	if len(ss) > 0 {
		res = append(res, OptDownloadBanMarkers(ss))
	}
	res = append(res, OptDownloadInstallYtdlp(c.Download.InstallYtdlp))
	s = c.Download.Format
	if s != "" {
		res = append(res, OptDownloadFormat(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidSlice(name string, ss []string) bool {
	res := len(ss) > 0
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidDelay(minDelay, maxDelay time.Duration) bool {
	res := minDelay >= 0 && maxDelay >= minDelay
	if !res {
		gn.Warn(
			"<em>Download Delay</em> needs 0 <= min <= max, ignoring %s..%s",
			minDelay, maxDelay,
		)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Download.Channels": {"stereo": s, "mono_split": s,
			"mono_reduce": s},
		"Download.PersistMode": {"table": s, "journal": s},
		"Log.Level":            {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":           {"json": s, "text": s, "tint": s},
		"Log.Destination":      {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
