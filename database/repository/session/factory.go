package sessionRepo

import (
	"time"

	"advisorly/config"
	"advisorly/utils"
)

// NewFromConfig selects the session backend from configuration.
func NewFromConfig() Store {
	switch config.AppConfig.SessionStore {
	case "redis":
		ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
		return NewRedisStore(utils.GetSessionCacheClient(), ttl)
	default:
		return NewMemoryStore()
	}
}
