package observability

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the narrow logging surface injected into services.
type Logger struct {
	log zerolog.Logger
}

func NewLogger() *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return &Logger{log: zerolog.New(os.Stdout).With().Timestamp().Logger()}
}

func (l *Logger) Info(msg string) {
	l.log.Info().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.log.Error().Msg(msg)
}

// ErrorCtx logs an error with structured fields such as the operation name
// and resource identifiers. Used for unclassified failures so they can be
// diagnosed without leaking internals to the client.
func (l *Logger) ErrorCtx(msg string, fields map[string]string) {
	event := l.log.Error()
	for key, value := range fields {
		event = event.Str(key, value)
	}
	event.Msg(msg)
}

func (l *Logger) InfoCtx(msg string, fields map[string]string) {
	event := l.log.Info()
	for key, value := range fields {
		event = event.Str(key, value)
	}
	event.Msg(msg)
}
