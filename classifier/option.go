package classifier

import "log/slog"

type Option func(c *Classifier)

func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = l
	}
}
