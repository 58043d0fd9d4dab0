package iodownload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evsiren/evset/pkg/audio"
)

// resampleMargin is the audio in seconds kept on both sides of a segment
// while it is resampled.
const resampleMargin = 0.25

// processor applies the DSP chain to a fetched file and writes results.
type processor struct {
	rate      int
	mode      audio.Mode
	normalize bool
}

// process reads src, resamples, trims to [start, end) seconds, optionally
// normalizes, applies the channel mode and writes <id>_<Suffix>.wav files
// to dir. It returns paths of the written files.
func (p processor) process(
	src, id string,
	start, end float64,
	dir string,
) ([]string, error) {
	clip, err := readWAV(src)
	if err != nil {
		return nil, err
	}

	if clip.Rate != p.rate {
		from := clip.Rate
		var offset float64
		clip, offset = audio.Window(clip, start, end, resampleMargin)
		if clip.Frames() == 0 {
			return nil, fmt.Errorf("segment [%g, %g) is outside of audio: %w",
				start, end, audio.ErrEmpty)
		}
		if clip, err = audio.Resample(clip, p.rate); err != nil {
			return nil, fmt.Errorf("resample: %w", err)
		}
		start, end = start-offset, end-offset
		slog.Debug("Resampled", "id", id, "from", from, "to", p.rate)
	}

	clip = audio.Trim(clip, start, end)
	if clip.Frames() == 0 {
		return nil, fmt.Errorf("segment [%g, %g) is outside of audio: %w",
			start, end, audio.ErrEmpty)
	}

	if p.normalize {
		audio.Normalize(clip)
	}

	var res []string
	for _, out := range audio.ProcessChannels(clip, p.mode) {
		path := filepath.Join(dir, id+"_"+out.Suffix+".wav")
		if err = writeWAV(path, out.Clip); err != nil {
			return nil, err
		}
		res = append(res, path)
	}
	return res, nil
}

func readWAV(path string) (*audio.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := audio.DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return res, nil
}

func writeWAV(path string, clip *audio.Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = audio.EncodeWAV(f, clip); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
