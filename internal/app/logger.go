// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/bbs-service/config"
	"github.com/guttosm/bbs-service/internal/logger"
)

// InitializeLogger initializes the JSON logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
