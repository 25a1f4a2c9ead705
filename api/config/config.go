// Package config holds the session configuration.
package config

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultCallTimeout is the default per-call timeout for property and
// method calls against the platform's media-control facility.
const DefaultCallTimeout = 5 * time.Second

// Configuration describes the configuration for a media session.
type Configuration struct {
	// PlayerName optionally holds the name of a preferred media player.
	// On Linux, this is matched against the MPRIS bus name suffix (for
	// example "spotify" for "org.mpris.MediaPlayer2.spotify"); when empty
	// or not found, the first registered player is bound. Ignored on
	// Windows, where the system reports the active session.
	PlayerName string

	// CallTimeout bounds each property or method call against the
	// platform facility. Zero applies DefaultCallTimeout.
	CallTimeout time.Duration

	// Logger is used for backend debug logging.
	Logger zerolog.Logger
}

// Default returns a Configuration with default values and a disabled logger.
func Default() Configuration {
	return Configuration{
		CallTimeout: DefaultCallTimeout,
		Logger:      zerolog.Nop(),
	}
}

// WithDefaults fills any unset field with its default value.
func (c Configuration) WithDefaults() Configuration {
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}

	return c
}
