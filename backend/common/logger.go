package common

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// SetupLogger builds the process logger. Console output in debug mode, JSON
// when LOG_JSON is set. Errors and above carry the caller.
func SetupLogger() error {
	var base zap.Config
	if DebugEnabled && !LogJSON {
		base = zap.NewDevelopmentConfig()
	} else {
		base = zap.NewProductionConfig()
	}

	enc := base.EncoderConfig
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder

	encNoCaller := enc
	encNoCaller.CallerKey = ""
	encWithCaller := enc
	encWithCaller.CallerKey = "caller"

	newEncoder := zapcore.NewConsoleEncoder
	if LogJSON {
		newEncoder = zapcore.NewJSONEncoder
	}

	minLevel := zapcore.InfoLevel
	if DebugEnabled {
		minLevel = zapcore.DebugLevel
	}

	ws := zapcore.Lock(zapcore.AddSync(os.Stdout))
	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(encNoCaller), ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= minLevel && lvl < zapcore.ErrorLevel
		})),
		zapcore.NewCore(newEncoder(encWithCaller), ws, zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		})),
	)

	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return nil
}

// Logger returns the process logger for callers that want structured fields.
// Unlike SysLog it does not skip a caller frame.
func Logger() *zap.Logger {
	return logger.WithOptions(zap.AddCallerSkip(-1))
}

// SetLogger replaces the process logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func SyncLogger() {
	_ = logger.Sync()
}

func SysLog(s string) {
	logger.Info(s)
}

func SysError(s string) {
	logger.Error(s)
}

func FatalLog(v ...any) {
	logger.Fatal(fmt.Sprint(v...))
}
