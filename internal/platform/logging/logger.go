package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/world-service/internal/platform/timeutil"
)

var (
	loggerOnce sync.Once
	baseLogger *zap.Logger
	loggerErr  error

	// level gates the base core; SetLevel adjusts it at runtime.
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// cloudEncoderConfig names fields the way Cloud Logging ingests structured JSON.
var cloudEncoderConfig = zapcore.EncoderConfig{
	TimeKey:        "timestamp",
	LevelKey:       "severity",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeTime:     encodeTimeMicros,
	EncodeLevel:    encodeSeverity,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

func encodeTimeMicros(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(timeutil.FormatMicros(t))
}

var severities = map[zapcore.Level]string{
	zapcore.DebugLevel:  "DEBUG",
	zapcore.InfoLevel:   "INFO",
	zapcore.WarnLevel:   "WARNING",
	zapcore.ErrorLevel:  "ERROR",
	zapcore.DPanicLevel: "CRITICAL",
	zapcore.PanicLevel:  "ALERT",
	zapcore.FatalLevel:  "EMERGENCY",
}

func encodeSeverity(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	s, ok := severities[l]
	if !ok {
		s = "DEFAULT"
	}
	enc.AppendString(s)
}

// initLogger opens stdout once and builds a JSON core gated by the shared atomic level.
// Sampling is left off so every access line is kept.
func initLogger() {
	sink, _, err := zap.Open("stdout")
	if err != nil {
		baseLogger, loggerErr = zap.NewNop(), fmt.Errorf("logging: open stdout: %w", err)
		return
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cloudEncoderConfig), sink, level)
	baseLogger = zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(sink),
	)
}

// Logger returns the process-wide zap.Logger instance.
func Logger() *zap.Logger {
	loggerOnce.Do(initLogger)
	return baseLogger
}

// Sync flushes buffered log entries. Call during shutdown.
func Sync() error {
	return Logger().Sync()
}

// Err reports initialization failure, if any.
func Err() error {
	loggerOnce.Do(initLogger)
	return loggerErr
}

// SetLevel changes the minimum enabled level of the process-wide logger.
// Accepted names are those understood by zapcore ("debug", "info", "warn", "error", ...).
func SetLevel(name string) error {
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("logging: invalid level %q: %w", name, err)
	}
	level.SetLevel(l)
	return nil
}
