// internal/workers/booking/calculate-refund/config.go
package calculaterefund

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
