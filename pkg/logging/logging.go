// Package logging builds the process-wide zap logger used by the binaries.
// The logger writes console-encoded lines to stdout at a configurable level
// and can be narrowed further with zapfilter rules keyed by logger name.
package logging

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Parameters controls the process logger.
type Parameters struct {
	// Level is the minimal logged level: DEBUG, INFO, WARN, ERROR or FATAL.
	// Unrecognized values fall back to INFO.
	Level string
	// Filter optionally narrows output with zapfilter rules, for example
	// "debug:runtime* error:*". An empty filter passes everything the level
	// allows.
	Filter string
}

// Setup creates the logger described by params and installs it as the zap
// globals. The returned loggers are ready to use; callers should defer a
// Sync on shutdown.
func Setup(params Parameters) (*zap.Logger, *zap.SugaredLogger, error) {
	core, err := newCore(zapcore.Lock(os.Stdout), params)
	if err != nil {
		return nil, nil, err
	}
	logger := zap.New(core)
	zap.ReplaceGlobals(logger)
	return logger, logger.Sugar(), nil
}

func newCore(w zapcore.WriteSyncer, params Parameters) (zapcore.Core, error) {
	al := zap.NewAtomicLevel()
	switch strings.ToUpper(params.Level) {
	case "DEBUG":
		al.SetLevel(zap.DebugLevel)
	case "INFO":
		al.SetLevel(zap.InfoLevel)
	case "WARN":
		al.SetLevel(zap.WarnLevel)
	case "ERROR":
		al.SetLevel(zap.ErrorLevel)
	case "FATAL":
		al.SetLevel(zap.FatalLevel)
	default:
		al.SetLevel(zap.InfoLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), w, al)
	if params.Filter != "" {
		f, err := zapfilter.ParseRules(params.Filter)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log filter '%s'", params.Filter)
		}
		core = zapfilter.NewFilteringCore(core, f)
	}
	return core, nil
}
