//go:build linux

package dbushelper

import "github.com/godbus/dbus/v5"

// The DBus specific bus, method and property names.
const (
	DbusListNamesMethod    = "org.freedesktop.DBus.ListNames"
	DbusGetPropertiesIface = "org.freedesktop.DBus.Properties.Get"

	DbusErrServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"
	DbusErrNameHasNoOwner = "org.freedesktop.DBus.Error.NameHasNoOwner"
	DbusErrNoReply        = "org.freedesktop.DBus.Error.NoReply"

	MprisBusPrefix   = "org.mpris.MediaPlayer2."
	MprisPlayerIface = "org.mpris.MediaPlayer2.Player"
	MprisObjectPath  = dbus.ObjectPath("/org/mpris/MediaPlayer2")

	MprisMetadataProp       = "Metadata"
	MprisPositionProp       = "Position"
	MprisPlaybackStatusProp = "PlaybackStatus"
)

// The MPRIS metadata map keys of interest.
const (
	MetadataTitle       = "xesam:title"
	MetadataArtist      = "xesam:artist"
	MetadataAlbum       = "xesam:album"
	MetadataAlbumArtist = "xesam:albumArtist"
	MetadataLength      = "mpris:length"
	MetadataArtURL      = "mpris:artUrl"
)
