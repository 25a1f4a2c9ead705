//go:build windows

package mediasession

import (
	"context"

	"github.com/nowplaying-org/media-session/api/config"
	"github.com/nowplaying-org/media-session/api/media"
	"github.com/nowplaying-org/media-session/windows"
)

// connect establishes the SMTC backend.
func connect(ctx context.Context, cfg config.Configuration) (media.Session, error) {
	return windows.NewSession(ctx, cfg)
}
