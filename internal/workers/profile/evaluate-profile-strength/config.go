// internal/workers/profile/evaluate-profile-strength/config.go
package evaluateprofilestrength

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
