// Package logger wraps zerolog behind a small leveled API shared by the
// whole binary.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

func init() {
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Configure sets the global log level and, in dev mode, switches to the
// human-readable console writer.
func Configure(level string, isDev bool) {
	zeroLevel := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		zeroLevel = zerolog.DebugLevel
	case "warn":
		zeroLevel = zerolog.WarnLevel
	case "error":
		zeroLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(zeroLevel)

	var writer io.Writer = os.Stderr
	if isDev {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	Logger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = Logger
}

// LevelFromEnv picks the log level from ZENITH_LOG_LEVEL, defaulting to
// debug in dev mode and info otherwise.
func LevelFromEnv(isDev bool) string {
	if level := os.Getenv("ZENITH_LOG_LEVEL"); level != "" {
		return level
	}
	if isDev {
		return "debug"
	}
	return "info"
}

func Debugf(format string, args ...interface{}) {
	Logger.Debug().Msgf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Logger.Info().Msgf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warn().Msgf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	Logger.Error().Msgf(format, args...)
}
