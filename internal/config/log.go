package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LogConfig holds configuration for the process logger
type LogConfig struct {
	Level zapcore.Level
}

// LoadLogConfig loads logger configuration from environment variables
func LoadLogConfig(getenv func(string) string) (LogConfig, error) {
	config := LogConfig{Level: zapcore.InfoLevel}
	if v := getenv("LOG_LEVEL"); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return LogConfig{}, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
		}
		config.Level = level
	}
	return config, nil
}
