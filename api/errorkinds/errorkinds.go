// Package errorkinds holds the sentinel error values surfaced by the
// session façade and the platform backends. Callers should match against
// these with errors.Is; the wrapped fault chains carry call-site context.
package errorkinds

import "errors"

// The different kinds of errors returned by session operations.
var (
	// ErrNoActiveSession indicates that no media player is currently
	// registered with the platform's media-control facility.
	ErrNoActiveSession = errors.New("no active media session")

	// ErrBackendUnavailable indicates that the platform's media-control
	// facility itself could not be reached.
	ErrBackendUnavailable = errors.New("media control facility is unavailable")

	// ErrSessionStale indicates that the previously bound media player
	// disappeared between queries.
	ErrSessionStale = errors.New("bound media player has disappeared")

	// ErrSessionNotExist indicates that the session is closed or was
	// never initialized.
	ErrSessionNotExist = errors.New("session does not exist")

	// ErrNotSupported indicates an unsupported platform or operation.
	ErrNotSupported = errors.New("not supported on this platform")

	// ErrPropertyDataParse indicates malformed property data from the
	// platform's media-control facility.
	ErrPropertyDataParse = errors.New("cannot parse property data")
)
