// Package misc holds small helpers shared across the collector:
// environment lookups and a typed buffer pool.
package misc

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Getenv returns the environment value for key, or def when unset or empty.
func Getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetDuration reads a duration from the environment. Bare integers are
// taken as seconds; otherwise Go duration syntax applies. Unset, empty,
// or unparseable values yield def.
func GetDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

// GetBool reads a boolean from the environment, accepting the usual
// truthy/falsy spellings. Anything else yields def.
func GetBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y":
		return true
	case "0", "false", "f", "no", "n":
		return false
	default:
		return def
	}
}
