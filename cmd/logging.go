package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

const validLogLevelsStr = "debug, info, warn, error"

func newLogger(w io.Writer, logLevel string) (*slog.Logger, error) {
	level, exists := validLogLevels[strings.ToLower(logLevel)]
	if !exists {
		return nil, fmt.Errorf("invalid log level: %s. Valid log levels are: %s", logLevel, validLogLevelsStr)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// withRunID tags every record of one run with a fresh identifier.
func withRunID(logger *slog.Logger) *slog.Logger {
	return logger.With("run_id", uuid.NewString())
}
