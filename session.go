// Package mediasession exposes a unified, platform-independent view of the
// media currently playing on the host machine.
//
// A MediaSession binds exactly one platform backend, selected at compile
// time: the system media transport controls (SMTC) facility on Windows, or
// the MPRIS interface on the session bus on Linux. Queries return a
// normalized MediaInfo snapshot with all time values in microseconds.
package mediasession

import (
	"context"

	"github.com/rs/xid"

	"github.com/nowplaying-org/media-session/api/config"
	"github.com/nowplaying-org/media-session/api/helpers/mediaconv"
	"github.com/nowplaying-org/media-session/api/media"
)

// MediaSession describes a bound media session.
//
// A MediaSession exclusively owns its backend's OS handle or bus
// connection, and is not safe for unsynchronized concurrent use; callers
// that query from multiple goroutines must serialize the calls.
type MediaSession struct {
	id      xid.ID
	backend media.Session
}

// New binds a session to the platform's media-control facility. The
// context (ctx) bounds the OS/bus handshake, which can take some time to
// complete. When no media player is registered with the facility, the
// returned error matches errorkinds.ErrNoActiveSession.
func New(ctx context.Context, cfg config.Configuration) (*MediaSession, error) {
	backend, err := connect(ctx, cfg.WithDefaults())
	if err != nil {
		return nil, err
	}

	return newMediaSession(backend), nil
}

func newMediaSession(backend media.Session) *MediaSession {
	return &MediaSession{
		id:      xid.New(),
		backend: backend,
	}
}

// ID returns the session's unique identifier, usable as a log field to
// correlate queries from multiple sessions.
func (s *MediaSession) ID() string {
	return s.id.String()
}

// Info returns a normalized snapshot of the currently playing media.
// Missing metadata fields degrade to zero values and are never errors.
func (s *MediaSession) Info() (media.MediaInfo, error) {
	info, err := s.backend.Info()
	if err != nil {
		return media.MediaInfo{}, err
	}

	return normalize(info), nil
}

// Controls returns a function call interface to invoke transport control
// related functions on the bound player.
func (s *MediaSession) Controls() media.Controls {
	return s.backend.Controls()
}

// Close releases the backend's OS handle or bus connection.
func (s *MediaSession) Close() error {
	return s.backend.Close()
}

// normalize applies the output contract to a backend snapshot: the status
// is always one of the four enumerated values, time values are never
// negative, the position never exceeds a known duration, and CoverB64 is
// always the base64 encoding of CoverRaw.
func normalize(info media.MediaInfo) media.MediaInfo {
	if info.Status == "" {
		info.Status = media.StatusUnknown
	}

	if info.Duration < 0 {
		info.Duration = 0
	}
	if info.Position < 0 {
		info.Position = 0
	}
	if info.Duration > 0 && info.Position > info.Duration {
		info.Position = info.Duration
	}

	info.CoverB64 = mediaconv.EncodeCover(info.CoverRaw)

	return info
}
