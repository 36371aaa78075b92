package table

import (
	"github.com/tliron/commonlog"

	"github.com/chazu/luny/variable"
)

// Option configures a Table.
type Option func(*tableConfig)

type tableConfig struct {
	events bool
	log    commonlog.Logger
}

// WithChangeEvents turns change notification on or off. The default
// follows variable.Debug.
func WithChangeEvents(enabled bool) Option {
	return func(c *tableConfig) { c.events = enabled }
}

// WithLogger sets the logger used for table diagnostics. The table adds
// its own id to every message.
func WithLogger(log commonlog.Logger) Option {
	return func(c *tableConfig) { c.log = log }
}

func newTableConfig(opts []Option) *tableConfig {
	cfg := &tableConfig{
		events: variable.Debug,
		log:    commonlog.GetLogger("luny.table"),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
