package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. --verbose selects a development
// logger at debug level; a configured level selects a production logger at
// that level; otherwise logging is disabled.
func newLogger(level string, verbose bool, w io.Writer) (*zap.Logger, error) {
	var cfg zap.Config
	switch {
	case verbose:
		cfg = zap.NewDevelopmentConfig()
	case level != "":
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
		}
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	default:
		return zap.NewNop(), nil
	}

	enc := zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	if !verbose {
		enc = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), cfg.Level)
	return zap.New(core, zap.AddCaller()), nil
}
