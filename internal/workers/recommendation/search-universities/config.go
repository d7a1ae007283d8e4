// internal/workers/recommendation/search-universities/config.go
package searchuniversities

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Index:   "universities",
	}
}
