package config

import (
	"fmt"
	"time"
)

// GetShutdownTimeout returns the graceful shutdown window as a duration.
func (c *Config) GetShutdownTimeout() (time.Duration, error) {
	if c.Server.ShutdownTimeout == "" {
		return 5 * time.Second, nil
	}
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.shutdown_timeout %q: %w", c.Server.ShutdownTimeout, err)
	}
	return d, nil
}
