package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so every component gets Named/With returning the same type.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

// NewLogger builds a logger from the environment (see DefaultConfig).
func NewLogger() *Logger {
	return New(DefaultConfig())
}

// New builds a logger from an explicit configuration. It never fails: a broken
// configuration falls back to zap's production defaults.
func New(cfg *LoggerConfig) *Logger {
	var zapConfig zap.Config
	if cfg.Level == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.ToZapLevel())

	if cfg.OutputFile != "" && cfg.OutputFile != "stdout" && cfg.OutputFile != "stderr" {
		logDir := filepath.Dir(cfg.OutputFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create log directory '%s', defaulting to stdout: %v\n", logDir, err)
			zapConfig.OutputPaths = []string{"stdout"}
			zapConfig.ErrorOutputPaths = []string{"stderr"}
		} else {
			zapConfig.OutputPaths = []string{cfg.OutputFile, "stdout"}
			zapConfig.ErrorOutputPaths = []string{cfg.OutputFile, "stderr"}
		}
	} else if cfg.OutputFile != "" {
		zapConfig.OutputPaths = []string{cfg.OutputFile}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	if cfg.Format == "console" || cfg.Format == "text" {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig.Encoding = "json"
	}

	zl, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing zap logger: %v. Falling back to basic logger.\n", err)
		zl, _ = zap.NewProduction()
	}

	l := &Logger{Logger: zl, config: cfg}
	l.Info("Logger initialized", zap.String("level", cfg.Level), zap.String("format", cfg.Format), zap.Strings("output_paths", zapConfig.OutputPaths))
	return l
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: &LoggerConfig{Level: "info", Format: "json"}}
}

// Named adds a new path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
