package audio

import (
	"errors"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// BitDepth of written WAV files.
const BitDepth = 16

// ErrInvalidWAV means the data is not a readable WAV stream.
var ErrInvalidWAV = errors.New("not a valid WAV file")

// DecodeWAV reads a PCM WAV stream into a clip.
func DecodeWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	nch := buf.Format.NumChannels
	if nch <= 0 {
		return nil, ErrInvalidWAV
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	scale := math.Pow(2, float64(depth-1))

	frames := len(buf.Data) / nch
	res := &Clip{
		Rate:     buf.Format.SampleRate,
		Channels: make([][]float64, nch),
	}
	for c := range res.Channels {
		res.Channels[c] = make([]float64, frames)
	}
	for i := range frames {
		for c := range nch {
			res.Channels[c][i] = float64(buf.Data[i*nch+c]) / scale
		}
	}
	return res, nil
}

// EncodeWAV writes a clip as 16-bit PCM WAV. Samples outside [-1, 1] are
// clipped.
func EncodeWAV(w io.WriteSeeker, c *Clip) error {
	nch := len(c.Channels)
	frames := c.Frames()
	data := make([]int, frames*nch)
	top := float64(int(1)<<(BitDepth-1) - 1)
	for i := range frames {
		for ch := range nch {
			v := max(-1, min(1, c.Channels[ch][i]))
			data[i*nch+ch] = int(math.Round(v * top))
		}
	}

	enc := wav.NewEncoder(w, c.Rate, BitDepth, nch, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: nch, SampleRate: c.Rate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
