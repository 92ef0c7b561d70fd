package logging

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// New builds a production JSON logger at the given level name
// (debug, info, warn, error). An empty level means info.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", level)
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}
