//go:build linux

package linux

import (
	"os"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/nowplaying-org/media-session/api/errorkinds"
	"github.com/nowplaying-org/media-session/api/helpers/mediaconv"
	"github.com/nowplaying-org/media-session/api/media"
	dbh "github.com/nowplaying-org/media-session/linux/internal/dbushelper"
)

// artistSeparator joins multi-valued artist lists into a single string.
const artistSeparator = ", "

// infoFromProperties builds a MediaInfo from the raw MPRIS property values.
// Absent metadata keys degrade to zero values. MPRIS reports all time
// values in microseconds already, so no unit conversion happens here.
func infoFromProperties(metadata map[string]dbus.Variant, position int64, status string) media.MediaInfo {
	return media.MediaInfo{
		Status:   media.StatusFromMpris(status),
		Position: position,
		TrackData: media.TrackData{
			Title:       dbh.MapString(metadata, dbh.MetadataTitle),
			Artist:      strings.Join(dbh.MapStringList(metadata, dbh.MetadataArtist), artistSeparator),
			AlbumTitle:  dbh.MapString(metadata, dbh.MetadataAlbum),
			AlbumArtist: strings.Join(dbh.MapStringList(metadata, dbh.MetadataAlbumArtist), artistSeparator),
			Duration:    dbh.MapInt64(metadata, dbh.MetadataLength),
		},
	}
}

// readArtURL resolves an MPRIS "mpris:artUrl" value to its byte payload.
// Local file URLs are read from disk; data URLs with an embedded base64
// payload are decoded in place. Remote schemes are not fetched.
func readArtURL(url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "file://"):
		return os.ReadFile(strings.TrimPrefix(url, "file://"))

	case strings.HasPrefix(url, "data:"):
		marker := "base64,"

		idx := strings.Index(url, marker)
		if idx < 0 {
			return nil, errorkinds.ErrPropertyDataParse
		}

		return mediaconv.DecodeCover(url[idx+len(marker):])
	}

	return nil, errorkinds.ErrPropertyDataParse
}
