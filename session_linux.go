//go:build linux

package mediasession

import (
	"context"

	"github.com/nowplaying-org/media-session/api/config"
	"github.com/nowplaying-org/media-session/api/media"
	"github.com/nowplaying-org/media-session/linux"
)

// connect establishes the MPRIS backend over the session bus.
func connect(ctx context.Context, cfg config.Configuration) (media.Session, error) {
	return linux.NewSession(ctx, cfg)
}
