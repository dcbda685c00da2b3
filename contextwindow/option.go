package contextwindow

import (
	"log/slog"

	"github.com/voyantic/concierge/tokens"
)

type Option func(c *Config)

func WithEstimator(e tokens.Estimator) Option {
	return func(c *Config) {
		c.estimator = e
	}
}

func WithMaxContextTokens(n int) Option {
	return func(c *Config) {
		c.maxContextTokens = n
	}
}

func WithKeepRecent(n int) Option {
	return func(c *Config) {
		c.keepRecent = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}
