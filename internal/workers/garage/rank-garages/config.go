// internal/workers/garage/rank-garages/config.go
package rankgarages

import "time"

type Config struct {
	MaxResults int
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxResults: 100,
		Timeout:    30 * time.Second,
	}
}
