// internal/workers/shortlist/remove-shortlist-entry/config.go
package removeshortlistentry

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
