package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// SetupLogger points the global logger at stderr plus the configured log
// file.
func SetupLogger(conf LoggingConfig) error {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	if conf.File != "" {
		f, err := os.OpenFile(conf.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %v", err)
		}
		writers = append(writers, f)
	}
	level, err := zerolog.ParseLevel(conf.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	return nil
}

func ErrorLog(err error) {
	logger.Error().Err(err).Msg("")
}
