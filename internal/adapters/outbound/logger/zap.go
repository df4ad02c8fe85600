package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

func parseLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// New builds a logger writing to stderr and, when filePath is set, appending
// JSON lines to that file as well. The returned func flushes and closes the
// file.
func New(cfg domain.LoggingConfig, filePath string) (domain.Logger, func(), error) {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	cores := []zapcore.Core{
		zapcore.NewCore(encoder(cfg.Format), zapcore.Lock(os.Stderr), level),
	}

	var file *os.File
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		cores = append(cores, zapcore.NewCore(encoder("json"), zapcore.AddSync(f), level))
	}

	l := zap.New(zapcore.NewTee(cores...)).Named("landingzone")
	closeFn := func() {
		_ = l.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return NewZapAdapter(l), closeFn, nil
}

// zapWrapper adapts zap.Logger to domain.Logger.
type zapWrapper struct {
	l *zap.Logger
}

func (z *zapWrapper) Debug(msg string, fields map[string]interface{}) {
	z.l.Debug(msg, mapToZapFields(fields)...)
}

func (z *zapWrapper) Info(msg string, fields map[string]interface{}) {
	z.l.Info(msg, mapToZapFields(fields)...)
}

func (z *zapWrapper) Warn(msg string, fields map[string]interface{}) {
	z.l.Warn(msg, mapToZapFields(fields)...)
}

func (z *zapWrapper) Error(msg string, fields map[string]interface{}) {
	z.l.Error(msg, mapToZapFields(fields)...)
}

func (z *zapWrapper) With(fields map[string]interface{}) domain.Logger {
	return &zapWrapper{l: z.l.With(mapToZapFields(fields)...)}
}

func (z *zapWrapper) WithError(err error) domain.Logger {
	return &zapWrapper{l: z.l.With(zap.Error(err))}
}

func mapToZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// NewZapAdapter wraps an existing *zap.Logger.
func NewZapAdapter(l *zap.Logger) domain.Logger {
	return &zapWrapper{l: l}
}

// NewTestLogger routes output through t.Log.
func NewTestLogger(t testing.TB) domain.Logger {
	return NewZapAdapter(zaptest.NewLogger(t))
}

func NewNopLogger() domain.Logger {
	return NewZapAdapter(zap.NewNop())
}
