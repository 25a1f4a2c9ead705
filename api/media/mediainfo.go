package media

// MediaStatus indicates the playback state of the active media player.
type MediaStatus string

// The different values for the media player status.
const (
	StatusPlaying MediaStatus = "playing"
	StatusPaused  MediaStatus = "paused"
	StatusStopped MediaStatus = "stopped"
	StatusUnknown MediaStatus = "unknown"
)

// String returns the name of the media status.
func (m MediaStatus) String() string {
	return string(m)
}

// StatusFromMpris maps an MPRIS "PlaybackStatus" property value to a
// MediaStatus. The match is case-sensitive, as mandated by the MPRIS
// specification; any other value maps to StatusUnknown.
func StatusFromMpris(status string) MediaStatus {
	switch status {
	case "Playing":
		return StatusPlaying
	case "Paused":
		return StatusPaused
	case "Stopped":
		return StatusStopped
	}

	return StatusUnknown
}

// MediaInfo holds a normalized snapshot of the currently playing media.
//
// All time values are in microseconds, regardless of the unit the platform
// backend reports natively. CoverB64 always holds the standard base64
// encoding of CoverRaw; no image format tag is attached to either field.
type MediaInfo struct {
	// Status indicates the playback state of the player.
	Status MediaStatus `json:"status,omitempty" codec:"Status,omitempty" enum:"playing,paused,stopped,unknown" doc:"Indicates the playback state of the player."`

	// Position indicates the current playback offset of the track in microseconds.
	Position int64 `json:"position,omitempty" codec:"Position,omitempty" doc:"The current playback offset of the track in microseconds."`

	// CoverRaw holds the undecoded cover art bytes of the track.
	CoverRaw []byte `json:"-" codec:"-"`

	// CoverB64 holds the base64 encoding of the cover art bytes.
	CoverB64 string `json:"cover_b64,omitempty" codec:"CoverB64,omitempty" doc:"The base64 encoding of the cover art bytes."`

	TrackData
}

// TrackData describes the track properties of the currently playing media.
type TrackData struct {
	// Title holds the title name of the track.
	Title string `json:"title,omitempty" codec:"Title,omitempty" doc:"The title name of the track."`

	// Artist holds the artist name of the track.
	Artist string `json:"artist,omitempty" codec:"Artist,omitempty" doc:"The artist name of the track."`

	// AlbumTitle holds the album name of the track.
	AlbumTitle string `json:"album_title,omitempty" codec:"AlbumTitle,omitempty" doc:"The album name of the track."`

	// AlbumArtist holds the album artist name of the track.
	AlbumArtist string `json:"album_artist,omitempty" codec:"AlbumArtist,omitempty" doc:"The album artist name of the track."`

	// Duration holds the total length of the track in microseconds.
	Duration int64 `json:"duration,omitempty" codec:"Duration,omitempty" doc:"The total length of the track in microseconds."`
}
