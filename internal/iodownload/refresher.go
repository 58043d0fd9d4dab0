package iodownload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/gnames/gn"
)

// CommandRefresher renews credentials by running a command, usually a
// browser, and waiting until it exits. After that the cookies file must
// exist.
type CommandRefresher struct {
	Command     []string
	CookiesFile string
}

// Refresh runs the command and checks the cookies file.
func (r *CommandRefresher) Refresh(ctx context.Context) error {
	if len(r.Command) == 0 {
		return errors.New("refresh command is empty")
	}

	gn.Info(
		"Sign in with <em>%s</em>, export cookies and close it to continue",
		r.Command[0],
	)
	slog.Info("Waiting for credential refresh", "command", r.Command)
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("refresh command %s: %w", r.Command[0], err)
	}

	if r.CookiesFile == "" {
		return errors.New("cookies file is not configured")
	}
	if _, err := os.Stat(r.CookiesFile); err != nil {
		return fmt.Errorf("cookies file %s: %w", r.CookiesFile, err)
	}
	slog.Info("Credentials refreshed", "cookies", r.CookiesFile)
	return nil
}
