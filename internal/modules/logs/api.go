package logs

import (
	"io"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/reusedev/room-stager/config"
	"github.com/rs/zerolog"
)

var (
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

func InitLogger(cfg config.Log) {
	level := parseLogLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		})
	}
	// console output in debug, or when there is nowhere else to write
	if level <= zerolog.DebugLevel || len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
	}

	Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
