//go:build windows

package windows

import (
	"github.com/saltosystems/winrt-go/windows/media/control"

	"github.com/nowplaying-org/media-session/api/media"
)

// statusFromPlayback maps the SMTC playback status enumeration to a
// MediaStatus. Closed, Opened and Changing carry no playback meaning and
// map to StatusUnknown.
func statusFromPlayback(status control.GlobalSystemMediaTransportControlsSessionPlaybackStatus) media.MediaStatus {
	switch status {
	case control.GlobalSystemMediaTransportControlsSessionPlaybackStatusPlaying:
		return media.StatusPlaying
	case control.GlobalSystemMediaTransportControlsSessionPlaybackStatusPaused:
		return media.StatusPaused
	case control.GlobalSystemMediaTransportControlsSessionPlaybackStatusStopped:
		return media.StatusStopped
	}

	return media.StatusUnknown
}

// positionAt derives the playback position at wall-clock time now (Unix
// microseconds). SMTC timeline updates are sparse while a track plays, so
// the delta since the last timeline update is added to the raw position and
// clamped to the track duration.
func positionAt(status media.MediaStatus, rawPos, lastUpdate, duration, now int64) int64 {
	switch status {
	case media.StatusPlaying:
		position := rawPos
		if lastUpdate > 0 && now > lastUpdate {
			position += now - lastUpdate
		}
		if duration > 0 && position > duration {
			position = duration
		}

		return position

	case media.StatusStopped:
		return 0
	}

	return rawPos
}
