//go:build linux

package linux

import (
	"context"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"github.com/nowplaying-org/media-session/api/media"
	dbh "github.com/nowplaying-org/media-session/linux/internal/dbushelper"
)

// mediaPlayer implements transport controls via MPRIS method calls on the
// bound player.
type mediaPlayer struct {
	session *Session
}

var _ media.Controls = (*mediaPlayer)(nil)

// Play starts or resumes playback.
func (m *mediaPlayer) Play() error {
	return m.call("Play")
}

// Pause pauses playback.
func (m *mediaPlayer) Pause() error {
	return m.call("Pause")
}

// TogglePlayPause toggles between playing and paused.
func (m *mediaPlayer) TogglePlayPause() error {
	return m.call("PlayPause")
}

// Next skips to the next track.
func (m *mediaPlayer) Next() error {
	return m.call("Next")
}

// Previous skips to the previous track.
func (m *mediaPlayer) Previous() error {
	return m.call("Previous")
}

// Stop stops playback.
func (m *mediaPlayer) Stop() error {
	return m.call("Stop")
}

// Seek moves the playback position by the provided offset in microseconds.
func (m *mediaPlayer) Seek(offsetMicros int64) error {
	return m.call("Seek", offsetMicros)
}

// call invokes a method on the MPRIS player interface.
func (m *mediaPlayer) call(method string, args ...any) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.session.timeout)
	defer cancel()

	err := m.session.player.
		CallWithContext(ctx, dbh.MprisPlayerIface+"."+method, 0, args...).
		Store()
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(),
				"error_at", "mpris-control-"+method,
				"player", m.session.playerName,
			),
			ftag.With(ftag.Internal),
			fmsg.With("The player control call failed"),
		)
	}

	return nil
}
