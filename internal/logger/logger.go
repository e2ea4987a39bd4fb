package logger

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process wide logger. It is a no-op logger until Init is called.
var Log = zap.NewNop()

// RunID tags every entry of this process so logs from several runs can be
// told apart after they are merged.
var RunID = uuid.NewString()

// Init builds the process logger. BENEATH_LOG selects the flavour:
// "prod" for JSON output, "debug" for a development logger at debug level,
// anything else for a development logger at info level.
func Init() {
	var (
		l   *zap.Logger
		err error
	)

	switch strings.ToLower(os.Getenv("BENEATH_LOG")) {
	case "prod", "production":
		l, err = zap.NewProduction()
	case "debug":
		l, err = zap.NewDevelopment()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		l, err = cfg.Build()
	}

	if err != nil {
		// Keep whatever logger we had, the engine can still run silently.
		return
	}
	Log = l.With(zap.String("run", RunID))
}

// Sync flushes buffered log entries. Errors are ignored since stderr syncs
// fail on some terminals.
func Sync() {
	_ = Log.Sync()
}
