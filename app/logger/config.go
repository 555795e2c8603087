package logger

import "strings"

// LogConfig controls where and how application logs are written.
type LogConfig struct {
	Level  string // trace, debug, info, warn, error
	Format string // text, json
	Output string // stdout, file, both

	Path       string
	File       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

func DefaultConfig(env string) *LogConfig {
	cfg := &LogConfig{
		Level:      "info",
		Format:     "json",
		Output:     "stdout",
		Path:       "./logs",
		File:       "app.log",
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
	}
	if env == "" || strings.EqualFold(env, "development") {
		cfg.Level = "debug"
		cfg.Format = "text"
	}
	return cfg
}
