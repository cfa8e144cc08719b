package observability

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// NewLogger constructs a zap logger emitting structured JSON at level
// (debug, info, warn, error). Unknown levels fall back to info.
func NewLogger(level string) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		_ = atomic.UnmarshalText([]byte(defaultLogLevel))
	}

	cfg := zap.Config{
		Level:             atomic,
		Encoding:          "json",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     false,
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// NewWriterLogger builds a console-encoded logger writing to w. The CLI uses
// it for --debug output so calculation traces stay readable.
func NewWriterLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := encoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// EngineLogger adapts zap to the printf-style Logger used by the calculation
// engine.
type EngineLogger struct {
	logger *zap.SugaredLogger
}

// NewEngineLogger creates an EngineLogger backed by logger.
func NewEngineLogger(logger *zap.Logger) EngineLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return EngineLogger{logger: logger.Sugar()}
}

func (a EngineLogger) Debugf(format string, args ...any) { a.logger.Debugf(format, args...) }
func (a EngineLogger) Infof(format string, args ...any)  { a.logger.Infof(format, args...) }
func (a EngineLogger) Warnf(format string, args ...any)  { a.logger.Warnf(format, args...) }
func (a EngineLogger) Errorf(format string, args ...any) { a.logger.Errorf(format, args...) }
