//go:build linux

package linux

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/nowplaying-org/media-session/api/errorkinds"
	"github.com/nowplaying-org/media-session/api/helpers/artcache"
	"github.com/nowplaying-org/media-session/api/media"
	dbh "github.com/nowplaying-org/media-session/linux/internal/dbushelper"
)

// stubObject serves canned replies for bus calls, keyed by method name or,
// for property gets, by the property name.
type stubObject struct {
	dbus.BusObject
	replies map[string]*dbus.Call
}

func (s *stubObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	key := method
	if method == dbh.DbusGetPropertiesIface && len(args) == 2 {
		key, _ = args[1].(string)
	}

	if call, ok := s.replies[key]; ok {
		return call
	}

	return &dbus.Call{Err: dbus.Error{Name: "org.freedesktop.DBus.Error.UnknownMethod"}}
}

// stubConn implements busConn over stub objects.
type stubConn struct {
	daemon  dbus.BusObject
	players map[string]dbus.BusObject
	closed  bool
}

func (c *stubConn) BusObject() dbus.BusObject {
	return c.daemon
}

func (c *stubConn) Object(dest string, _ dbus.ObjectPath) dbus.BusObject {
	return c.players[dest]
}

func (c *stubConn) Close() error {
	c.closed = true
	return nil
}

func listNamesReply(names ...string) *dbus.Call {
	return &dbus.Call{Body: []interface{}{names}}
}

func propertyReply(value interface{}) *dbus.Call {
	return &dbus.Call{Body: []interface{}{dbus.MakeVariant(value)}}
}

func staleReply() *dbus.Call {
	return &dbus.Call{Err: dbus.Error{Name: dbh.DbusErrServiceUnknown}}
}

func newStubSession(conn *stubConn, player dbus.BusObject) *Session {
	return &Session{
		sessionBus: conn,
		playerName: "org.mpris.MediaPlayer2.gone",
		player:     player,
		covers:     artcache.NewCache(),
		timeout:    time.Second,
		logger:     zerolog.Nop(),
	}
}

func TestIsStaleCall(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"service unknown", dbus.Error{Name: dbh.DbusErrServiceUnknown}, true},
		{"name has no owner", dbus.Error{Name: dbh.DbusErrNameHasNoOwner}, true},
		{"no reply is not stale", dbus.Error{Name: dbh.DbusErrNoReply}, false},
		{"other dbus error", dbus.Error{Name: "org.freedesktop.DBus.Error.UnknownMethod"}, false},
		{"wrapped dbus error", fmt.Errorf("get property: %w", dbus.Error{Name: dbh.DbusErrNameHasNoOwner}), true},
		{"plain error", errors.New("broken pipe"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStaleCall(tt.err); got != tt.expected {
				t.Errorf("isStaleCall(%v) = %v; want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestInfoReresolvesStalePlayer(t *testing.T) {
	const player = "org.mpris.MediaPlayer2.vlc"

	healthy := &stubObject{replies: map[string]*dbus.Call{
		dbh.MprisMetadataProp: propertyReply(map[string]dbus.Variant{
			dbh.MetadataTitle:  dbus.MakeVariant("St. Chroma"),
			dbh.MetadataLength: dbus.MakeVariant(int64(197019000)),
		}),
		dbh.MprisPositionProp:       propertyReply(int64(5700398)),
		dbh.MprisPlaybackStatusProp: propertyReply("Playing"),
	}}

	conn := &stubConn{
		daemon: &stubObject{replies: map[string]*dbus.Call{
			dbh.DbusListNamesMethod: listNamesReply("org.freedesktop.Notifications", player),
		}},
		players: map[string]dbus.BusObject{player: healthy},
	}

	stale := &stubObject{replies: map[string]*dbus.Call{
		dbh.MprisMetadataProp: staleReply(),
	}}

	session := newStubSession(conn, stale)

	info, err := session.Info()
	if err != nil {
		t.Fatalf("Info returned an error after re-resolution: %v", err)
	}

	if session.playerName != player {
		t.Errorf("playerName = %q; want re-resolved %q", session.playerName, player)
	}
	if info.Title != "St. Chroma" {
		t.Errorf("Title = %q; want %q", info.Title, "St. Chroma")
	}
	if info.Position != 5700398 {
		t.Errorf("Position = %d; want 5700398", info.Position)
	}
	if info.Status != media.StatusPlaying {
		t.Errorf("Status = %q; want %q", info.Status, media.StatusPlaying)
	}
}

func TestInfoStaleWithoutPlayers(t *testing.T) {
	conn := &stubConn{
		daemon: &stubObject{replies: map[string]*dbus.Call{
			dbh.DbusListNamesMethod: listNamesReply("org.freedesktop.Notifications"),
		}},
	}

	session := newStubSession(conn, &stubObject{replies: map[string]*dbus.Call{
		dbh.MprisMetadataProp: staleReply(),
	}})

	if _, err := session.Info(); !errors.Is(err, errorkinds.ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestInfoNonStaleErrorDoesNotReresolve(t *testing.T) {
	// A daemon with no reply configured fails the test loudly if the
	// session tries to re-resolve on a non-stale failure.
	conn := &stubConn{daemon: &stubObject{}}

	session := newStubSession(conn, &stubObject{replies: map[string]*dbus.Call{
		dbh.MprisMetadataProp: {Err: dbus.Error{Name: dbh.DbusErrNoReply}},
	}})

	_, err := session.Info()
	if err == nil {
		t.Fatal("expected an error for a failed metadata fetch")
	}
	if errors.Is(err, errorkinds.ErrNoActiveSession) || errors.Is(err, errorkinds.ErrSessionStale) {
		t.Errorf("a no-reply failure was treated as a stale player: %v", err)
	}
	if session.playerName != "org.mpris.MediaPlayer2.gone" {
		t.Errorf("playerName changed to %q on a non-stale failure", session.playerName)
	}
}

func TestResolvePlayer(t *testing.T) {
	t.Run("no players", func(t *testing.T) {
		conn := &stubConn{daemon: &stubObject{replies: map[string]*dbus.Call{
			dbh.DbusListNamesMethod: listNamesReply("org.freedesktop.Notifications"),
		}}}

		session := &Session{sessionBus: conn, logger: zerolog.Nop()}

		err := session.resolvePlayer(context.Background(), "")
		if !errors.Is(err, errorkinds.ErrNoActiveSession) {
			t.Errorf("expected ErrNoActiveSession, got %v", err)
		}
	})

	t.Run("preferred player wins over first", func(t *testing.T) {
		conn := &stubConn{
			daemon: &stubObject{replies: map[string]*dbus.Call{
				dbh.DbusListNamesMethod: listNamesReply(
					"org.mpris.MediaPlayer2.vlc",
					"org.mpris.MediaPlayer2.spotify",
				),
			}},
			players: map[string]dbus.BusObject{
				"org.mpris.MediaPlayer2.vlc":     &stubObject{},
				"org.mpris.MediaPlayer2.spotify": &stubObject{},
			},
		}

		session := &Session{sessionBus: conn, logger: zerolog.Nop()}

		if err := session.resolvePlayer(context.Background(), "spotify"); err != nil {
			t.Fatalf("resolvePlayer returned an error: %v", err)
		}
		if session.playerName != "org.mpris.MediaPlayer2.spotify" {
			t.Errorf("playerName = %q; want the preferred player", session.playerName)
		}
	})
}
