// Package log is Seeker's structured logger. It wraps logrus with the field
// helpers and error decoration the rest of the application uses, and keeps a
// package-level logger for code that does not carry one around.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"seeker/internal/errors"
)

const timestampFormat = "2006-01-02 15:04:05"

var (
	debugEnabled atomic.Bool
	logger       = NewLogger()

	// file of this source, used to find the first caller outside the package
	selfFile string
)

func init() {
	_, selfFile, _, _ = runtime.Caller(0)
}

// Field is a single key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out      io.Writer
	json     bool
	filePath string
}

// Option configures NewLogger.
type Option func(*options)

// WithOutput sets the writer log lines go to. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile appends log lines to path in addition to the configured output.
func WithFile(path string) Option {
	return func(o *options) { o.filePath = path }
}

// Logger writes leveled, structured entries.
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// NewLogger builds a logger. If the log file cannot be opened the logger
// falls back to the plain output and reports the problem there.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	fieldMap := logrus.FieldMap{
		logrus.FieldKeyTime: "timestamp",
		logrus.FieldKeyMsg:  "message",
	}
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap:        fieldMap,
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
			FieldMap:        fieldMap,
		})
	}

	l := &Logger{}
	out := o.out
	if o.filePath != "" {
		f, err := os.OpenFile(o.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(out, "log: cannot open %s: %v\n", o.filePath, err)
		} else {
			l.file = f
			out = io.MultiWriter(out, f)
		}
	}
	base.SetOutput(out)
	l.entry = logrus.NewEntry(base)
	return l
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file}
}

// WithContext attaches ctx to subsequent entries. A nil context is ignored.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file}
}

// WithError decorates the logger with the fields describing err.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) Debug(msg string) {
	if debugEnabled.Load() {
		l.emit(logrus.DebugLevel, msg)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if debugEnabled.Load() {
		l.emit(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Info(msg string) { l.emit(logrus.InfoLevel, msg) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(msg string) { l.emit(logrus.WarnLevel, msg) }

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string) { l.emit(logrus.ErrorLevel, msg) }

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) emit(level logrus.Level, msg string) {
	entry := l.entry
	if caller := callerOutsidePackage(); caller != "" {
		entry = entry.WithField("caller", caller)
	}
	entry.Log(level, msg)
}

// callerOutsidePackage reports "file.go:line" of the first frame that is not
// inside this file.
func callerOutsidePackage() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != selfFile {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			return ""
		}
	}
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", nil)}
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var dbErr *errors.DatabaseError
	if errors.As(err, &dbErr) && dbErr.Operation() != "" {
		fields = append(fields, F("operation", dbErr.Operation()))
	}
	return fields
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	debugEnabled.Store(debug)
}

// Configure replaces the package-level logger and closes the log file of
// the one it replaces.
func Configure(opts ...Option) {
	prev := logger
	logger = NewLogger(opts...)
	if prev != nil {
		_ = prev.Close()
	}
}

// Default returns the package-level logger.
func Default() *Logger {
	return logger
}

// LogWithFields returns the package logger decorated with fields.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger decorated with err.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}

func Debug(msg string)                          { logger.Debug(msg) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Info(msg string)                           { logger.Info(msg) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warn(msg string)                           { logger.Warn(msg) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Error(msg string)                          { logger.Error(msg) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
