// Package media describes the data model and capability interfaces exposed
// by a platform media-session backend.
package media

// Session describes a function call interface to query the platform's
// native media-control facility for the currently playing media.
//
// A Session is bound to exactly one OS-level handle or bus connection, and
// is not safe for unsynchronized concurrent use.
type Session interface {
	// Info returns a snapshot of the currently playing media.
	// Missing metadata fields degrade to zero values and are never errors.
	Info() (MediaInfo, error)

	// Controls returns a function call interface to invoke transport
	// control related functions on the bound player.
	Controls() Controls

	// Close releases the OS-level handle or bus connection.
	Close() error
}

// Controls describes a function call interface to invoke transport control
// related functions on the active media player.
type Controls interface {
	Play() error
	Pause() error
	TogglePlayPause() error

	Next() error
	Previous() error

	// Seek moves the playback position by the provided offset in
	// microseconds, relative to the current position. A negative offset
	// seeks backwards.
	Seek(offsetMicros int64) error

	Stop() error
}
