// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis dialog session keys.
const SessionCachePrefix = "dialog:session:"

// DateLayout is the canonical calendar-day layout used across the engine.
const DateLayout = "2006-01-02"

// DefaultSessionTTL bounds how long an idle dialog session is retained.
const DefaultSessionTTL = 30 * time.Minute
