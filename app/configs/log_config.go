package configs

import "github.com/Rakhulsr/go-catalog/app/logger"

// LogConfig applies LOG_* overrides on top of the environment defaults.
func (e ENV) LogConfig() *logger.LogConfig {
	cfg := logger.DefaultConfig(e.AppEnv)
	if e.LogLevel != "" {
		cfg.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.Format = e.LogFormat
	}
	if e.LogOutput != "" {
		cfg.Output = e.LogOutput
	}
	if e.LogPath != "" {
		cfg.Path = e.LogPath
	}
	if e.LogFile != "" {
		cfg.File = e.LogFile
	}
	if e.LogMaxSize > 0 {
		cfg.MaxSize = e.LogMaxSize
	}
	if e.LogMaxBackups > 0 {
		cfg.MaxBackups = e.LogMaxBackups
	}
	if e.LogMaxAge > 0 {
		cfg.MaxAge = e.LogMaxAge
	}
	return cfg
}
