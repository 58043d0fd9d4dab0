// Package iotesting provides shared fixtures for evset tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/evsiren/evset/pkg/audio"
	"github.com/evsiren/evset/pkg/config"
)

// TestSampleRate keeps generated audio small.
const TestSampleRate = 16_000

// Config returns a configuration that keeps every file of a test inside
// temporary directories and never sleeps between downloads.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.Config(t)
//	    // cfg.HomeDir and cfg.OutputDir are removed after the test
//	}
func Config(t *testing.T, opts ...config.Option) *config.Config {
	t.Helper()

	res := config.New()
	res.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptOutputDir(t.TempDir()),
		config.OptDownloadSampleRate(TestSampleRate),
		config.OptDownloadDelay(0, 0),
		config.OptDownloadInstallYtdlp(false),
	})
	res.Update(opts)
	return res
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Tone returns a clip with a sine wave in every channel. Channels differ
// in phase so that split channels can be told apart.
func Tone(rate, channels int, seconds float64) *audio.Clip {
	frames := int(seconds * float64(rate))
	res := &audio.Clip{Rate: rate, Channels: make([][]float64, channels)}
	for c := range res.Channels {
		res.Channels[c] = make([]float64, frames)
		for i := range frames {
			res.Channels[c][i] = 0.5 * math.Sin(float64(i+c)/10)
		}
	}
	return res
}

// WriteWAV encodes a clip to path.
func WriteWAV(t *testing.T, path string, clip *audio.Clip) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err = audio.EncodeWAV(f, clip); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}
