// Package constants provides shared constants used throughout the astropy codebase.
// This includes timeouts, cache defaults, file permissions, and other configuration
// values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for one request to a Sesame mirror.
	// Mirror fallback depends on each attempt failing fast, so this stays short.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 5 * time.Minute
)

// Cache constants define defaults for the URL-keyed response cache
const (
	// DefaultCacheTTL is how long a cached mirror response stays valid in memory.
	// Resolved names effectively never change, so this is generous.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultCacheCleanupInterval is how often expired entries are purged
	DefaultCacheCleanupInterval = 1 * time.Hour
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
