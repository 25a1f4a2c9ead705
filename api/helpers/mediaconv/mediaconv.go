// Package mediaconv holds pure unit and encoding conversions shared by the
// platform backends. All time values produced here are in microseconds.
package mediaconv

import (
	"encoding/base64"
	"time"
)

// ntUnixMicrosDiff is the offset between the NT epoch (1601-01-01) and the
// Unix epoch (1970-01-01), in microseconds.
const ntUnixMicrosDiff = 11_644_473_600_000_000

// TicksToMicros converts a Windows timeline value in ticks (100 ns units)
// to microseconds. The factor divides evenly, so the conversion is exact.
func TicksToMicros(ticks int64) int64 {
	return ticks / 10
}

// NtTicksToUnixMicros converts a Windows NT timestamp in ticks to Unix time
// in microseconds.
func NtTicksToUnixMicros(ticks int64) int64 {
	return TicksToMicros(ticks) - ntUnixMicrosDiff
}

// MicrosSinceEpoch returns the current Unix time in microseconds.
func MicrosSinceEpoch() int64 {
	return time.Now().UnixMicro()
}

// EncodeCover returns the standard base64 encoding of the provided cover
// art bytes. An empty or nil input encodes to the empty string.
func EncodeCover(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCover reverses EncodeCover.
func DecodeCover(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
