package xzap

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `toml:"level" mapstructure:"level" json:"level"`
	Mode       string `toml:"mode" mapstructure:"mode" json:"mode"` // console or file
	Path       string `toml:"path" mapstructure:"path" json:"path"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups" json:"max_backups"`
	Compress   bool   `toml:"compress" mapstructure:"compress" json:"compress"`
}

var global = zap.NewNop()

// SetUp builds the process-wide zap logger from config and installs it as
// the global. Returns the logger so callers can hold a direct reference.
func SetUp(c Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.Set(c.Level); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var sink zapcore.WriteSyncer
	if c.Mode == "file" && c.Path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.Path,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			Compress:   c.Compress,
		})
	} else {
		sink = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
	logger := zap.New(core, zap.AddCaller())
	global = logger
	zap.ReplaceGlobals(logger)
	return logger, nil
}

type ctxKey struct{}

// WithFields returns a context carrying a logger annotated with fields,
// so request-scoped metadata follows the call chain.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, WithContext(ctx).With(fields...))
}

// WithContext returns the request-scoped logger if one was attached,
// otherwise the global one.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return global
}
