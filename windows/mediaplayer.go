//go:build windows

package windows

import (
	"context"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/saltosystems/winrt-go/windows/foundation"

	"github.com/nowplaying-org/media-session/api/errorkinds"
	"github.com/nowplaying-org/media-session/api/media"
	wrh "github.com/nowplaying-org/media-session/windows/internal/winrthelper"
)

// mediaPlayer implements transport controls via the SMTC TryXxx calls on
// the bound session.
type mediaPlayer struct {
	session *Session
}

var _ media.Controls = (*mediaPlayer)(nil)

// Play starts or resumes playback.
func (m *mediaPlayer) Play() error {
	return m.invoke("play", m.session.current.TryPlayAsync)
}

// Pause pauses playback.
func (m *mediaPlayer) Pause() error {
	return m.invoke("pause", m.session.current.TryPauseAsync)
}

// TogglePlayPause toggles between playing and paused.
func (m *mediaPlayer) TogglePlayPause() error {
	return m.invoke("toggle", m.session.current.TryTogglePlayPauseAsync)
}

// Next skips to the next track.
func (m *mediaPlayer) Next() error {
	return m.invoke("next", m.session.current.TrySkipNextAsync)
}

// Previous skips to the previous track.
func (m *mediaPlayer) Previous() error {
	return m.invoke("previous", m.session.current.TrySkipPreviousAsync)
}

// Stop stops playback.
func (m *mediaPlayer) Stop() error {
	return m.invoke("stop", m.session.current.TryStopAsync)
}

// Seek moves the playback position by the provided offset in microseconds.
// SMTC seeks to absolute positions, so the current timeline position is
// read first and the offset applied to it.
func (m *mediaPlayer) Seek(offsetMicros int64) error {
	timeline, err := m.session.current.GetTimelineProperties()
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "smtc-seek-timeline"),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot read the current timeline position"),
		)
	}

	position, err := timeline.GetPosition()
	timeline.Release()
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "smtc-seek-position"),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot read the current timeline position"),
		)
	}

	target := position.Duration + offsetMicros*10
	if target < 0 {
		target = 0
	}

	return m.invoke("seek", func() (*foundation.IAsyncOperation, error) {
		return m.session.current.TryChangePlaybackPositionAsync(target)
	})
}

// invoke awaits an SMTC TryXxx call and surfaces a rejected command as an
// error.
func (m *mediaPlayer) invoke(name string, call func() (*foundation.IAsyncOperation, error)) error {
	if m.session.closed.Load() {
		return errorkinds.ErrSessionNotExist
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.session.timeout)
	defer cancel()

	op, err := call()
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "smtc-control-"+name),
			ftag.With(ftag.Internal),
			fmsg.With("The player control call failed"),
		)
	}

	res, err := wrh.Await(ctx, op, wrh.SignatureBoolean)
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "smtc-control-"+name+"-await"),
			ftag.With(ftag.Internal),
			fmsg.With("The player control call did not complete"),
		)
	}

	if uintptr(res) == 0 {
		return fault.Wrap(errorkinds.ErrNotSupported,
			fctx.With(context.Background(), "error_at", "smtc-control-"+name+"-rejected"),
			ftag.With(ftag.Internal),
			fmsg.With("The player rejected the control command"),
		)
	}

	return nil
}
