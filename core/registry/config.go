package registry

import "time"

// Config holds configuration for the block registry.
type Config struct {
	// MaxAgeSeconds rejects updates against layouts older than this; 0 disables the check.
	MaxAgeSeconds int `mapstructure:"max_age_seconds" default:"0"`
	// RestoreOnStart warms the registry from persisted ingestion history.
	RestoreOnStart bool `mapstructure:"restore_on_start" default:"false"`
}

// MaxAge returns MaxAgeSeconds as a duration.
func (c Config) MaxAge() time.Duration {
	if c.MaxAgeSeconds <= 0 {
		return 0
	}
	return time.Duration(c.MaxAgeSeconds) * time.Second
}
