// Package env reads ad-hoc environment switches that sit outside the
// STOCKDECK_*-prefixed config, such as LOG_FORMAT and the platform PORT.
package env

import (
	"os"
	"strings"
)

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Is reports whether the variable is set to the given value, ignoring case.
func Is(key, value string) bool {
	return strings.EqualFold(os.Getenv(key), value)
}
