package monitor

import "time"

// Config controls the churn-risk monitor loop.
type Config struct {
	PollInterval time.Duration
	Threshold    float64
}

func DefaultConfig() Config {
	return Config{
		PollInterval: time.Hour,
		Threshold:    0.7,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = defaults.Threshold
	}
	return c
}
