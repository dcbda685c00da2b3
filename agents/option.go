package agents

import "log/slog"

type Option func(*Config)

// WithMaxSteps caps the number of model steps per agent turn.
func WithMaxSteps(n int) Option {
	return func(c *Config) {
		c.maxSteps = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}
