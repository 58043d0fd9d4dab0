package iodownload

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// newProgressBar creates a progress bar over table rows. Output goes to w,
// io.Discard hides the bar.
func newProgressBar(
	total int,
	prefix string,
	w io.Writer,
) *pb.ProgressBar {
	bar := pb.Full.New(total)
	bar.SetWriter(w)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar.Start()
}
