package audio

import "fmt"

// Mode tells how channels of a clip are written out.
type Mode string

const (
	// Stereo keeps all channels in one file.
	Stereo Mode = "stereo"
	// MonoSplit writes the left and right channels to separate files.
	MonoSplit Mode = "mono_split"
	// MonoReduce averages channels into one file.
	MonoReduce Mode = "mono_reduce"
)

// NewMode parses a mode name. "mono_red" is accepted for MonoReduce.
func NewMode(s string) (Mode, error) {
	switch s {
	case string(Stereo):
		return Stereo, nil
	case string(MonoSplit):
		return MonoSplit, nil
	case string(MonoReduce), "mono_red":
		return MonoReduce, nil
	}
	return "", fmt.Errorf("unknown channel mode %q", s)
}

// File name suffixes of written channels.
const (
	SuffixOriginal = "Original"
	SuffixLeft     = "Left"
	SuffixRight    = "Right"
	SuffixReduced  = "Reduced"
)

// Suffixes lists every suffix ProcessChannels may produce.
func Suffixes() []string {
	return []string{SuffixOriginal, SuffixLeft, SuffixRight, SuffixReduced}
}

// Output is one file to write: the suffix goes after the sample id,
// as in "<id>_Left.wav".
type Output struct {
	Suffix string
	Clip   *Clip
}

// ProcessChannels applies a channel mode. Clips that are not
// multichannel are always written as "Original", whatever the mode.
func ProcessChannels(c *Clip, mode Mode) []Output {
	if len(c.Channels) < 2 {
		return []Output{{Suffix: SuffixOriginal, Clip: c}}
	}
	switch mode {
	case MonoSplit:
		return []Output{
			{Suffix: SuffixLeft, Clip: mono(c, c.Channels[0])},
			{Suffix: SuffixRight, Clip: mono(c, c.Channels[1])},
		}
	case MonoReduce:
		return []Output{{Suffix: SuffixReduced, Clip: Reduce(c)}}
	default:
		return []Output{{Suffix: SuffixOriginal, Clip: c}}
	}
}

// Reduce averages the first two channels into a mono clip.
func Reduce(c *Clip) *Clip {
	left, right := c.Channels[0], c.Channels[1]
	res := make([]float64, len(left))
	for i := range left {
		res[i] = (left[i] + right[i]) / 2
	}
	return mono(c, res)
}

func mono(c *Clip, ch []float64) *Clip {
	return &Clip{Rate: c.Rate, Channels: [][]float64{ch}}
}
