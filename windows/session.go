//go:build windows

// Package windows provides the media session backend over the system media
// transport controls (SMTC) facility.
package windows

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/go-ole/go-ole"
	"github.com/rs/zerolog"
	"github.com/saltosystems/winrt-go/windows/media/control"

	"github.com/nowplaying-org/media-session/api/config"
	"github.com/nowplaying-org/media-session/api/errorkinds"
	"github.com/nowplaying-org/media-session/api/helpers/mediaconv"
	"github.com/nowplaying-org/media-session/api/media"
	wrh "github.com/nowplaying-org/media-session/windows/internal/winrthelper"
)

// Session describes a bound SMTC media session.
//
// The session owns the system session manager handle and the session the
// system currently reports as active. Queries fetch live data; nothing is
// cached between calls except the cover art payload.
type Session struct {
	manager *control.GlobalSystemMediaTransportControlsSessionManager
	current *control.GlobalSystemMediaTransportControlsSession

	timeout time.Duration
	logger  zerolog.Logger

	closed atomic.Bool
}

var _ media.Session = (*Session)(nil)

// NewSession requests the system media session manager and binds the
// session the system reports as currently active. The context (ctx) bounds
// the manager handshake.
func NewSession(ctx context.Context, cfg config.Configuration) (*Session, error) {
	cfg = cfg.WithDefaults()

	// Multithreaded apartment; re-initialization by the host application
	// beforehand is not an error.
	if err := ole.RoInitialize(1); err != nil {
		return nil, fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "smtc-ro-initialize", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot initialize the WinRT apartment"),
		)
	}

	op, err := control.GlobalSystemMediaTransportControlsSessionManagerRequestAsync()
	if err != nil {
		return nil, fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "smtc-manager-request", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot request the media session manager"),
		)
	}

	res, err := wrh.Await(ctx, op, control.SignatureGlobalSystemMediaTransportControlsSessionManager)
	if err != nil {
		return nil, fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "smtc-manager-await", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("The media session manager request did not complete"),
		)
	}

	session := &Session{
		manager: (*control.GlobalSystemMediaTransportControlsSessionManager)(res),
		timeout: cfg.CallTimeout,
		logger:  cfg.Logger,
	}

	if err := session.bindCurrentSession(); err != nil {
		session.manager.Release()

		return nil, err
	}

	return session, nil
}

// bindCurrentSession rebinds to whatever session the system currently
// reports as active.
func (s *Session) bindCurrentSession() error {
	current, err := s.manager.GetCurrentSession()
	if err != nil || current == nil {
		return fault.Wrap(errorkinds.ErrNoActiveSession,
			fctx.With(context.Background(), "error_at", "smtc-current-session"),
			ftag.With(ftag.NotFound),
			fmsg.With("The system reports no active media session"),
		)
	}

	if s.current != nil {
		s.current.Release()
	}
	s.current = current

	return nil
}

// Info returns a snapshot of the currently playing media.
// A failed fetch rebinds the active session once before the failure is
// surfaced, since the bound session dies with its player process.
func (s *Session) Info() (media.MediaInfo, error) {
	if s.closed.Load() {
		return media.MediaInfo{}, errorkinds.ErrSessionNotExist
	}

	info, err := s.query()
	if err != nil {
		s.logger.Debug().Err(err).Msg("Session fetch failed, rebinding")

		if rerr := s.bindCurrentSession(); rerr != nil {
			return media.MediaInfo{}, rerr
		}

		info, err = s.query()
	}

	return info, err
}

// query performs one property fetch round trip against the bound session.
func (s *Session) query() (media.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var info media.MediaInfo

	op, err := s.current.TryGetMediaPropertiesAsync()
	if err != nil {
		return info, fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "smtc-media-properties"),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot fetch media properties"),
		)
	}

	res, err := wrh.Await(ctx, op, control.SignatureGlobalSystemMediaTransportControlsSessionMediaProperties)
	if err != nil {
		return info, fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "smtc-media-properties-await"),
			ftag.With(ftag.Internal),
			fmsg.With("The media properties fetch did not complete"),
		)
	}

	props := (*control.GlobalSystemMediaTransportControlsSessionMediaProperties)(res)
	defer props.Release()

	// Individual property reads degrade to zero values.
	info.Title, _ = props.GetTitle()
	info.Artist, _ = props.GetArtist()
	info.AlbumTitle, _ = props.GetAlbumTitle()
	info.AlbumArtist, _ = props.GetAlbumArtist()

	if thumbnail, err := props.GetThumbnail(); err == nil && thumbnail != nil {
		if cover, err := s.readThumbnail(ctx, thumbnail); err == nil {
			info.CoverRaw = cover
		} else {
			s.logger.Debug().Err(err).Msg("Cannot read thumbnail stream")
		}
		thumbnail.Release()
	}

	info.Status = s.playbackStatus()

	rawPos, lastUpdate := s.timeline(&info)
	info.Position = positionAt(info.Status, rawPos, lastUpdate, info.Duration, mediaconv.MicrosSinceEpoch())

	return info, nil
}

// playbackStatus reads the playback status of the bound session.
func (s *Session) playbackStatus() media.MediaStatus {
	playback, err := s.current.GetPlaybackInfo()
	if err != nil {
		return media.StatusUnknown
	}
	defer playback.Release()

	status, err := playback.GetPlaybackStatus()
	if err != nil {
		return media.StatusUnknown
	}

	return statusFromPlayback(status)
}

// timeline reads the timeline properties of the bound session, filling the
// duration and returning the raw position and its last update time, all in
// microseconds. SMTC reports timeline values in 100 ns ticks.
func (s *Session) timeline(info *media.MediaInfo) (rawPos, lastUpdate int64) {
	timeline, err := s.current.GetTimelineProperties()
	if err != nil {
		return 0, 0
	}
	defer timeline.Release()

	if endTime, err := timeline.GetEndTime(); err == nil {
		info.Duration = mediaconv.TicksToMicros(endTime.Duration)
	}

	if position, err := timeline.GetPosition(); err == nil {
		rawPos = mediaconv.TicksToMicros(position.Duration)
	}

	if updated, err := timeline.GetLastUpdatedTime(); err == nil {
		lastUpdate = mediaconv.NtTicksToUnixMicros(updated.UniversalTime)
	}

	return rawPos, lastUpdate
}

// Controls returns a function call interface to invoke transport control
// related functions on the bound session.
func (s *Session) Controls() media.Controls {
	return &mediaPlayer{session: s}
}

// Close releases the session and manager handles.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return errorkinds.ErrSessionNotExist
	}

	if s.current != nil {
		s.current.Release()
		s.current = nil
	}
	s.manager.Release()

	return nil
}
