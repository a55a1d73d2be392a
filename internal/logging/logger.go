package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelOff disables logging entirely. stderr doubles as the diagnostic
// channel, so this is the default.
const LevelOff = "off"

type Logger struct {
	zap *zap.Logger
}

func NewLogger(logLevel string, out io.Writer) (*Logger, error) {
	if strings.EqualFold(strings.TrimSpace(logLevel), LevelOff) {
		return NewNop(), nil
	}

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.CallerKey = "caller"
	encoderConfig.StacktraceKey = "stacktrace"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(out)),
		zap.NewAtomicLevelAt(level),
	)

	return &Logger{
		zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
	}, nil
}

func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

func parseLogLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		zap: l.zap.With(fields...),
	}
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func (l *Logger) GetZap() *zap.Logger {
	return l.zap
}
