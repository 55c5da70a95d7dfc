// Package logger is the single entry point for structured log emission.
// Console output is always on; in production two rotating file sinks are
// added: one for everything, one filtered to error level and above.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation policy for file sinks.
const (
	rotateMaxSizeMB  = 20
	rotateMaxAgeDays = 14
)

type Options struct {
	Level      string
	Directory  string
	Production bool

	// Console overrides the console sink. When set, entries are written
	// to it as raw JSON instead of the colorized console format.
	Console io.Writer
}

type Logger struct {
	log zerolog.Logger
}

func New(opts Options) *Logger {
	var console io.Writer = opts.Console
	if console == nil {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	writers := []io.Writer{console}
	if opts.Production {
		dir := opts.Directory
		if dir == "" {
			dir = "./logs"
		}
		date := time.Now().Format("2006-01-02")
		writers = append(writers,
			&lumberjack.Logger{
				Filename: filepath.Join(dir, "application-"+date+".log"),
				MaxSize:  rotateMaxSizeMB,
				MaxAge:   rotateMaxAgeDays,
				Compress: true,
			},
			&errorOnlyWriter{Writer: &lumberjack.Logger{
				Filename: filepath.Join(dir, "error-"+date+".log"),
				MaxSize:  rotateMaxSizeMB,
				MaxAge:   rotateMaxAgeDays,
				Compress: true,
			}},
		)
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(opts.Level)).
		With().Timestamp().Logger()
	return &Logger{log: log}
}

// FromConfig builds a logger from the service configuration.
func FromConfig(level, dir string, production bool) *Logger {
	return New(Options{Level: level, Directory: dir, Production: production})
}

// WithContext returns a child logger tagged with a component name.
func (l *Logger) WithContext(name string) *Logger {
	return &Logger{log: l.log.With().Str("context", name).Logger()}
}

func (l *Logger) Verbose(msg string) { l.log.Trace().Msg(msg) }
func (l *Logger) Debug(msg string)   { l.log.Debug().Msg(msg) }
func (l *Logger) Info(msg string)    { l.log.Info().Msg(msg) }
func (l *Logger) Warn(msg string)    { l.log.Warn().Msg(msg) }

func (l *Logger) Error(msg string, err error) {
	l.log.Error().Err(err).Msg(msg)
}

// Fatal logs the message and exits the process.
func (l *Logger) Fatal(msg string, err error) {
	l.log.Fatal().Err(err).Msg(msg)
}

// Log emits at an arbitrary level with structured metadata.
func (l *Logger) Log(level, msg string, fields map[string]interface{}) {
	l.log.WithLevel(parseLevel(level)).Fields(fields).Msg(msg)
}

// RequestLog records an inbound HTTP request.
func (l *Logger) RequestLog(method, path, ip, userAgent string) {
	l.log.Info().
		Str("method", method).
		Str("path", path).
		Str("ip", ip).
		Str("user_agent", userAgent).
		Msg("request")
}

// ResponseLog records an outbound HTTP response.
func (l *Logger) ResponseLog(method, path string, status int, elapsed time.Duration) {
	l.log.Info().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("elapsed", elapsed).
		Msg("response")
}

// errorOnlyWriter passes through entries at error level and above and
// silently accepts the rest.
type errorOnlyWriter struct {
	io.Writer
}

func (w *errorOnlyWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.ErrorLevel {
		return len(p), nil
	}
	return w.Write(p)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "verbose", "trace":
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
	default:
		return zerolog.InfoLevel
	}
}
