// internal/workers/recommendation/generate-recommendations/config.go
package generaterecommendations

import (
	"time"

	"advisor-workers/internal/engine"
)

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	Defaults engine.Defaults
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: 5 * time.Minute,
		Defaults: engine.StandardDefaults(),
	}
}
