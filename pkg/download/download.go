// Package download describes the download-and-process run over a segment
// table: row states, the collaborators a run depends on, the error
// signals that steer it, and the report it produces.
package download

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/evsiren/evset/pkg/table"
)

var (
	// ErrAuthRequired means the provider asks for fresh credentials.
	// The row is retried after a credential refresh.
	ErrAuthRequired = errors.New("provider requires authentication")
	// ErrProviderBan means the provider stopped serving content.
	// The run halts.
	ErrProviderBan = errors.New("provider refuses to serve content")
)

// Fetcher downloads the audio of a video id into dir and returns the path
// of the fetched WAV file.
type Fetcher interface {
	Fetch(ctx context.Context, id, dir string) (string, error)
}

// CredentialRefresher obtains fresh provider credentials. Refresh blocks
// until the new credentials are in place.
type CredentialRefresher interface {
	Refresh(ctx context.Context) error
}

// Persister keeps download flags between runs.
type Persister interface {
	// Restore flags rows completed by earlier runs and returns
	// how many rows it changed.
	Restore(t *table.Table) (int, error)
	// Save records the state of row i right after it was attempted.
	Save(t *table.Table, i int) error
	// Close writes pending state and releases resources.
	Close(t *table.Table) error
}

// Sleeper pauses between rows. It returns early with the context error
// when the context is canceled.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Classifier maps fetch errors to the control signals of a run by
// looking for known substrings in error messages.
type Classifier struct {
	AuthMarkers []string
	BanMarkers  []string
}

// Classify wraps err with ErrProviderBan or ErrAuthRequired when its
// message has a matching marker. Other errors are returned unchanged.
// Ban markers are checked first.
func (c Classifier) Classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if containsAny(msg, c.BanMarkers) {
		return errors.Join(ErrProviderBan, err)
	}
	if containsAny(msg, c.AuthMarkers) {
		return errors.Join(ErrAuthRequired, err)
	}
	return err
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}
