//go:build linux

package dbushelper

import (
	"github.com/godbus/dbus/v5"
)

// MapString returns the string value for the provided metadata key, or an
// empty string if the key is absent or not string-typed.
func MapString(metadata map[string]dbus.Variant, key string) string {
	variant, ok := metadata[key]
	if !ok {
		return ""
	}

	value, _ := variant.Value().(string)

	return value
}

// MapStringList returns the string list value for the provided metadata key.
// A plain string value is returned as a single-element list, since some
// players ship scalar values for list-typed keys.
func MapStringList(metadata map[string]dbus.Variant, key string) []string {
	variant, ok := metadata[key]
	if !ok {
		return nil
	}

	switch value := variant.Value().(type) {
	case []string:
		return value

	case string:
		return []string{value}

	case []dbus.Variant:
		list := make([]string, 0, len(value))
		for _, v := range value {
			if s, ok := v.Value().(string); ok {
				list = append(list, s)
			}
		}

		return list
	}

	return nil
}

// MapInt64 returns the integer value for the provided metadata key, or zero
// if the key is absent. Players are inconsistent about the integer width
// and signedness of values like "mpris:length", so all of them are accepted.
func MapInt64(metadata map[string]dbus.Variant, key string) int64 {
	variant, ok := metadata[key]
	if !ok {
		return 0
	}

	switch value := variant.Value().(type) {
	case int64:
		return value
	case uint64:
		return int64(value)
	case int32:
		return int64(value)
	case uint32:
		return int64(value)
	case int:
		return int64(value)
	case float64:
		return int64(value)
	}

	return 0
}
