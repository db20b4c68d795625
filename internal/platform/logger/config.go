package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig is read from LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE.
type LoggerConfig struct {
	Level      string
	Format     string // json or console
	OutputFile string // stdout, stderr or a file path
}

func DefaultConfig() *LoggerConfig {
	cfg := &LoggerConfig{Level: "info", Format: "json", OutputFile: "stdout"}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.Level = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("LOG_OUTPUT_FILE"); ok && v != "" {
		cfg.OutputFile = v
	}
	return cfg
}

// ToZapLevel accepts zap level names plus "warning". Anything else is info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
