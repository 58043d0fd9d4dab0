package iodownload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/evsiren/evset/pkg/config"
	"github.com/lrstanley/go-ytdlp"
)

// YtdlpFetcher downloads audio with yt-dlp and converts it to WAV.
type YtdlpFetcher struct {
	format  string
	cookies string
}

// NewYtdlpFetcher creates a fetcher. When install is true, missing yt-dlp,
// ffmpeg and ffprobe binaries are downloaded into the user cache. Otherwise
// ffmpeg has to be on PATH, yt-dlp needs it to extract WAV audio.
func NewYtdlpFetcher(
	ctx context.Context,
	cfg config.DownloadConfig,
) (*YtdlpFetcher, error) {
	if cfg.InstallYtdlp {
		if _, err := ytdlp.InstallAll(ctx); err != nil {
			return nil, SetupError("yt-dlp", err)
		}
	} else if _, err := lookPath("ffmpeg"); err != nil {
		return nil, SetupError("ffmpeg", err)
	}
	res := &YtdlpFetcher{
		format:  cfg.Format,
		cookies: cfg.CookiesFile,
	}
	return res, nil
}

var lookPath = exec.LookPath

// VideoURL returns the watch URL of a YouTube id. A full URL keeps ids
// starting with '-' from being read as command line flags.
func VideoURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Fetch downloads the audio of id into dir as <id>.wav. The cookies file
// is read by yt-dlp on every call, so refreshed credentials take effect
// without restarting.
func (f *YtdlpFetcher) Fetch(ctx context.Context, id, dir string) (string, error) {
	dl := ytdlp.New().
		Format(f.format).
		ExtractAudio().
		AudioFormat("wav").
		NoPlaylist().
		ForceOverwrites().
		Quiet().
		NoWarnings().
		Output(filepath.Join(dir, id+".%(ext)s"))
	if f.cookies != "" {
		dl = dl.Cookies(f.cookies)
	}

	res, err := dl.Run(ctx, VideoURL(id))
	if err != nil {
		// markers of auth and ban errors live in stderr
		var stderr string
		if res != nil {
			stderr = strings.TrimSpace(res.Stderr)
		}
		slog.Debug("yt-dlp failed", "id", id, "error", err, "stderr", stderr)
		if stderr != "" {
			return "", fmt.Errorf("yt-dlp: %w: %s", err, stderr)
		}
		return "", fmt.Errorf("yt-dlp: %w", err)
	}

	path := filepath.Join(dir, id+".wav")
	if _, err = os.Stat(path); err != nil {
		return "", fmt.Errorf("yt-dlp finished without %s: %w", path, err)
	}
	return path, nil
}
