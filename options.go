package md1img

import (
	"io"

	"github.com/charmbracelet/log"
)

type readConfig struct {
	limits Limits
	logger *log.Logger
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithLogger routes parse and extraction diagnostics through logger.
// The default logger discards everything.
func WithLogger(logger *log.Logger) ReadOption {
	return func(c *readConfig) { c.logger = logger }
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

type writeConfig struct {
	limits Limits
	logger *log.Logger
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithWriteLogger routes packer diagnostics through logger.
func WithWriteLogger(logger *log.Logger) WriteOption {
	return func(c *writeConfig) { c.logger = logger }
}

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{limits: defaultLimits(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}
