// internal/workers/garage/calculate-garage-score/config.go
package calculategaragescore

import "time"

type Config struct {
	StatsCacheTTL time.Duration
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		StatsCacheTTL: 10 * time.Minute,
		Timeout:       30 * time.Second,
	}
}
