// internal/workers/shortlist/add-shortlist-entry/config.go
package addshortlistentry

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
