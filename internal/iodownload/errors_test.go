package iodownload_test

import (
	"errors"
	"testing"

	"github.com/evsiren/evset/internal/iodownload"
	"github.com/evsiren/evset/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("boom")

	tests := []struct {
		msg  string
		fn   func(string, error) error
		code gn.ErrorCode
	}{
		{"setup", iodownload.SetupError, errcode.DownloadSetupError},
		{"auth refresh", iodownload.AuthRefreshError,
			errcode.DownloadAuthRefreshError},
		{"ban", iodownload.ProviderBanError, errcode.DownloadProviderBanError},
		{"journal", iodownload.JournalError, errcode.DownloadJournalError},
		{"report", iodownload.ReportError, errcode.DownloadReportError},
	}

	for _, v := range tests {
		err := v.fn("abc", orig)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.Equal(t, []any{"abc"}, gnErr.Vars, v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
	}
}

func TestVideoURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=-abc",
		iodownload.VideoURL("-abc"))
}
