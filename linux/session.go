//go:build linux

// Package linux provides the MPRIS media session backend over the DBus
// session bus.
package linux

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/nowplaying-org/media-session/api/config"
	"github.com/nowplaying-org/media-session/api/errorkinds"
	"github.com/nowplaying-org/media-session/api/helpers/artcache"
	"github.com/nowplaying-org/media-session/api/media"
	dbh "github.com/nowplaying-org/media-session/linux/internal/dbushelper"
)

// busConn is the subset of the session bus connection used by a Session.
// *dbus.Conn implements it.
type busConn interface {
	BusObject() dbus.BusObject
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

// Session describes a bound MPRIS media player session.
//
// The session owns a private connection to the session bus, and a resolved
// bus name for the active player. The bus name can go stale if the player
// process exits; queries re-resolve it once before reporting a failure.
type Session struct {
	sessionBus busConn
	playerName string
	preferred  string
	player     dbus.BusObject

	covers  *artcache.Cache
	timeout time.Duration
	logger  zerolog.Logger

	closed atomic.Bool
}

var _ media.Session = (*Session)(nil)

// NewSession connects to the session bus and binds the active MPRIS player.
// The context (ctx) bounds the bus handshake and player resolution.
func NewSession(ctx context.Context, cfg config.Configuration) (*Session, error) {
	cfg = cfg.WithDefaults()

	sessionBus, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "mpris-bus-connect", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot connect to the session bus"),
		)
	}

	var initialized bool
	defer func() {
		if !initialized {
			sessionBus.Close()
		}
	}()

	if err := sessionBus.Auth(nil); err != nil {
		return nil, fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "mpris-bus-auth", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot authenticate with the session bus"),
		)
	}

	if err := sessionBus.Hello(); err != nil {
		return nil, fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "mpris-bus-hello", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot register with the session bus"),
		)
	}

	session := &Session{
		sessionBus: sessionBus,
		preferred:  cfg.PlayerName,
		covers:     artcache.NewCache(),
		timeout:    cfg.CallTimeout,
		logger:     cfg.Logger,
	}

	if err := session.resolvePlayer(ctx, cfg.PlayerName); err != nil {
		return nil, err
	}

	initialized = true

	return session, nil
}

// resolvePlayer enumerates the registered bus names and binds the first
// MPRIS player found, preferring a name that matches preferred (if any).
func (s *Session) resolvePlayer(ctx context.Context, preferred string) error {
	var names []string

	err := s.sessionBus.BusObject().
		CallWithContext(ctx, dbh.DbusListNamesMethod, 0).
		Store(&names)
	if err != nil {
		return fault.Wrap(errorkinds.ErrBackendUnavailable,
			fctx.With(context.Background(), "error_at", "mpris-list-names", "cause", err.Error()),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot enumerate bus names"),
		)
	}

	players := make([]string, 0, 1)
	for _, name := range names {
		if strings.HasPrefix(name, dbh.MprisBusPrefix) {
			players = append(players, name)
		}
	}

	if len(players) == 0 {
		return fault.Wrap(errorkinds.ErrNoActiveSession,
			fctx.With(context.Background(), "error_at", "mpris-select-player"),
			ftag.With(ftag.NotFound),
			fmsg.With("No media players are registered on the session bus"),
		)
	}

	selected := players[0]
	if preferred != "" {
		for _, player := range players {
			if strings.TrimPrefix(player, dbh.MprisBusPrefix) == preferred {
				selected = player
				break
			}
		}
	}

	s.logger.Debug().
		Strs("players", players).
		Str("selected", selected).
		Msg("Resolved MPRIS players")

	s.playerName = selected
	s.player = s.sessionBus.Object(selected, dbh.MprisObjectPath)

	return nil
}

// Info returns a snapshot of the currently playing media.
// A stale player name is re-resolved once before the failure is surfaced.
func (s *Session) Info() (media.MediaInfo, error) {
	if s.closed.Load() {
		return media.MediaInfo{}, errorkinds.ErrSessionNotExist
	}

	info, err := s.query()
	if err != nil && errors.Is(err, errorkinds.ErrSessionStale) {
		s.logger.Debug().
			Str("player", s.playerName).
			Msg("Bound player disappeared, re-resolving")

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if rerr := s.resolvePlayer(ctx, s.preferred); rerr != nil {
			return media.MediaInfo{}, rerr
		}

		info, err = s.query()
	}

	return info, err
}

// query performs one property round trip against the bound player.
func (s *Session) query() (media.MediaInfo, error) {
	var metadata map[string]dbus.Variant

	if err := s.getProperty(dbh.MprisMetadataProp, &metadata); err != nil {
		if isStaleCall(err) {
			return media.MediaInfo{}, fault.Wrap(errorkinds.ErrSessionStale,
				fctx.With(context.Background(),
					"error_at", "mpris-get-metadata",
					"player", s.playerName,
				),
				ftag.With(ftag.NotFound),
				fmsg.With("The bound media player is no longer present"),
			)
		}

		return media.MediaInfo{}, fault.Wrap(err,
			fctx.With(context.Background(),
				"error_at", "mpris-get-metadata",
				"player", s.playerName,
			),
			ftag.With(ftag.Internal),
			fmsg.With("Cannot read player metadata"),
		)
	}

	// Position and PlaybackStatus are optional on some players; failures
	// here degrade to zero values.
	var position int64
	if err := s.getProperty(dbh.MprisPositionProp, &position); err != nil {
		position = 0
	}

	var status string
	if err := s.getProperty(dbh.MprisPlaybackStatusProp, &status); err != nil {
		status = ""
	}

	info := infoFromProperties(metadata, position, status)
	info.CoverRaw = s.cover(metadata)

	return info, nil
}

// getProperty reads a single property of the bound player into value.
func (s *Session) getProperty(property string, value any) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var variant dbus.Variant

	err := s.player.
		CallWithContext(ctx, dbh.DbusGetPropertiesIface, 0, dbh.MprisPlayerIface, property).
		Store(&variant)
	if err != nil {
		return err
	}

	if err := variant.Store(value); err != nil {
		return errorkinds.ErrPropertyDataParse
	}

	return nil
}

// cover resolves the cover art payload referenced by the metadata map.
// Any resolution failure degrades to no artwork.
func (s *Session) cover(metadata map[string]dbus.Variant) []byte {
	artURL := dbh.MapString(metadata, dbh.MetadataArtURL)
	if artURL == "" {
		return nil
	}

	cover, err := s.covers.Cover(artURL, readArtURL)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("art_url", artURL).
			Msg("Cannot read cover art")

		return nil
	}

	return cover
}

// Controls returns a function call interface to invoke transport control
// related functions on the bound player.
func (s *Session) Controls() media.Controls {
	return &mediaPlayer{session: s}
}

// Close releases the session bus connection.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return errorkinds.ErrSessionNotExist
	}

	return s.sessionBus.Close()
}

// isStaleCall reports whether a property or method call failed because the
// bound bus name no longer has an owner.
func isStaleCall(err error) bool {
	var dbusErr dbus.Error
	if !errors.As(err, &dbusErr) {
		return false
	}

	switch dbusErr.Name {
	case dbh.DbusErrServiceUnknown, dbh.DbusErrNameHasNoOwner:
		return true
	}

	return false
}
