package logger

import (
	"os"
	"strings"

	"github.com/hidro-hq/ana-telemetry/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// Init builds the JSON zap logger described by cfg and installs it as S.
func Init(cfg *config.Config) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		ParseLevel(cfg.LogLevel),
	)

	base := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.AppName), zap.String("env", cfg.Env))
	S = base.Sugar()
	return S, nil
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// Minimal object logging helpers -------------------------------------------------
// Each logs obj as a single structured field named key.
func InfoObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Info(msg, zap.Any(key, obj))
}

func DebugObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Debug(msg, zap.Any(key, obj))
}

func WarnObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Warn(msg, zap.Any(key, obj))
}

func ErrorObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Error(msg, zap.Any(key, obj))
}

// Logger is the structured logging surface shared by the client, collector and publishers.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Adapter routes Logger calls to the package-level logger.
type Adapter struct{}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

var (
	_ Logger = Adapter{}
	_ Logger = NopLogger{}
)

func (Adapter) InfoObj(msg, key string, obj interface{})  { InfoObj(msg, key, obj) }
func (Adapter) DebugObj(msg, key string, obj interface{}) { DebugObj(msg, key, obj) }
func (Adapter) WarnObj(msg, key string, obj interface{})  { WarnObj(msg, key, obj) }
func (Adapter) ErrorObj(msg, key string, obj interface{}) { ErrorObj(msg, key, obj) }
