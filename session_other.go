//go:build !linux && !windows

package mediasession

import (
	"context"

	"github.com/nowplaying-org/media-session/api/config"
	"github.com/nowplaying-org/media-session/api/errorkinds"
	"github.com/nowplaying-org/media-session/api/media"
)

// connect reports that no backend exists for this platform.
func connect(_ context.Context, _ config.Configuration) (media.Session, error) {
	return nil, errorkinds.ErrNotSupported
}
