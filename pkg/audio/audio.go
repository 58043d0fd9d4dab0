// Package audio holds the signal processing applied to fetched samples:
// resampling, trimming, peak normalization and channel handling.
package audio

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// ErrEmpty means a clip has no frames.
var ErrEmpty = errors.New("audio clip is empty")

// Clip is planar audio: one slice of samples in [-1, 1] per channel.
// All channels have the same length.
type Clip struct {
	Rate     int
	Channels [][]float64
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.Rate == 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.Rate)
}

// Resample converts the clip to a new sampling rate. It is band-limited:
// the spectrum of every channel is truncated or zero-padded and
// transformed back. A clip already at the rate is returned unchanged.
func Resample(c *Clip, rate int) (*Clip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", rate)
	}
	if c.Rate == rate {
		return c, nil
	}
	if c.Rate <= 0 {
		return nil, fmt.Errorf("invalid source sample rate %d", c.Rate)
	}
	n := c.Frames()
	if n == 0 {
		return nil, ErrEmpty
	}

	out := resampledLen(n, c.Rate, rate)
	// FFT sizes with large prime factors are slow, so the signal is
	// zero-padded to a size made of 2, 3 and 5.
	padded := fastLen(n)
	paddedOut := resampledLen(padded, c.Rate, rate)

	src := fourier.NewFFT(padded)
	dst := fourier.NewFFT(paddedOut)
	seq := make([]float64, padded)
	coeff := make([]complex128, paddedOut/2+1)

	res := &Clip{Rate: rate, Channels: make([][]float64, len(c.Channels))}
	for i, ch := range c.Channels {
		clear(seq)
		copy(seq, ch)
		spec := src.Coefficients(nil, seq)

		clear(coeff)
		copy(coeff, spec)
		if paddedOut%2 == 0 && paddedOut < padded {
			// Nyquist bin of an even-length real signal is real.
			last := len(coeff) - 1
			coeff[last] = complex(real(coeff[last]), 0)
		}

		y := dst.Sequence(nil, coeff)
		floats.Scale(1/float64(padded), y)
		res.Channels[i] = y[:out]
	}
	return res, nil
}

func resampledLen(n, from, to int) int {
	return int(math.Round(float64(n) * float64(to) / float64(from)))
}

func fastLen(n int) int {
	for m := n; ; m++ {
		k := m
		for _, p := range []int{2, 3, 5} {
			for k%p == 0 {
				k /= p
			}
		}
		if k == 1 {
			return m
		}
	}
}

// Trim keeps frames with index in [int(start*rate), int(end*rate)).
// Bounds are clamped to the clip, so a segment running past the end of the
// audio is shortened rather than rejected.
func Trim(c *Clip, start, end float64) *Clip {
	n := c.Frames()
	from := clamp(int(start*float64(c.Rate)), 0, n)
	to := clamp(int(end*float64(c.Rate)), from, n)
	return cut(c, from, to)
}

// Window keeps [start-margin, end+margin) seconds of the clip, clamped to
// its bounds, and returns the time in seconds of the first kept frame.
func Window(c *Clip, start, end, margin float64) (*Clip, float64) {
	n := c.Frames()
	from := clamp(int(max(0, start-margin)*float64(c.Rate)), 0, n)
	to := clamp(int(math.Ceil((end+margin)*float64(c.Rate))), from, n)
	return cut(c, from, to), float64(from) / float64(c.Rate)
}

func cut(c *Clip, from, to int) *Clip {
	res := &Clip{Rate: c.Rate, Channels: make([][]float64, len(c.Channels))}
	for i, ch := range c.Channels {
		res.Channels[i] = append([]float64(nil), ch[from:to]...)
	}
	return res
}

func clamp(i, lo, hi int) int {
	return max(lo, min(i, hi))
}

// Peak returns the largest absolute sample value over all channels.
func Peak(c *Clip) float64 {
	var res float64
	for _, ch := range c.Channels {
		if len(ch) == 0 {
			continue
		}
		res = max(res, math.Abs(floats.Max(ch)), math.Abs(floats.Min(ch)))
	}
	return res
}

// Normalize scales the clip in place so its peak amplitude is 1.
// A silent clip is left as is.
func Normalize(c *Clip) {
	peak := Peak(c)
	if peak == 0 {
		return
	}
	for _, ch := range c.Channels {
		floats.Scale(1/peak, ch)
	}
}
