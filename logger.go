package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iplocator/iplocator/locatorlib"
)

type logger struct {
	lookupLog zerolog.Logger
	accessLog zerolog.Logger
}

func (l *logger) LookupError(address string, err error) {
	l.lookupLog.Warn().Str("address", address).Err(err).Msg("")
}

func (l *logger) Access(method, path, remoteAddr string, status int, elapsed time.Duration) {
	l.accessLog.Info().
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Int("status", status).
		Dur("elapsed", elapsed).
		Msg("")
}

func newLogger(out io.Writer) locatorlib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(out).With().Timestamp().Str("event_name", "lookup").Logger(),
		accessLog: zerolog.New(out).With().Timestamp().Str("event_name", "access").Logger(),
	}
}
