package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called,
// so packages can log freely from tests.
var Log = zap.NewNop()

// Init replaces Log with a console logger. Debug enables debug-level output and
// caller annotations.
func Init(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		// Keep the nop logger; nothing else can report this.
		return
	}
	Log = l
}

// Sync flushes buffered entries. Safe to call on the nop logger.
func Sync() {
	_ = Log.Sync()
}
