package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Leveled logger shared by the API process.
// - Init(level) picks the threshold, default info
// - every line is a JSON record on stdout (slog)
// - printf-style helpers keep call sites short

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// levelFatal sits above slog.LevelError so fatal lines stay distinguishable.
const levelFatal = slog.Level(12)

var (
	mu     sync.RWMutex
	level  Level        = LevelInfo
	logger *slog.Logger = newLogger(os.Stdout)
	exit                = os.Exit
)

func newLogger(w io.Writer) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lv, ok := a.Value.Any().(slog.Level); ok && lv == levelFatal {
					return slog.String(slog.LevelKey, "FATAL")
				}
			}
			return a
		},
	})
	return slog.New(h).With("service", "blueexport-api")
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = parse(l)
}

// SetOutput redirects log records, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

func parse(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func emit(l Level, sl slog.Level, msg string, attrs ...any) {
	if l != LevelFatal && !shouldLog(l) {
		return
	}
	mu.RLock()
	lg := logger
	mu.RUnlock()
	lg.Log(context.Background(), sl, msg, attrs...)
}

func Debugf(format string, v ...interface{}) {
	emit(LevelDebug, slog.LevelDebug, fmt.Sprintf(format, v...))
}

func Infof(format string, v ...interface{}) {
	emit(LevelInfo, slog.LevelInfo, fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	emit(LevelWarn, slog.LevelWarn, fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...interface{}) {
	emit(LevelError, slog.LevelError, fmt.Sprintf(format, v...))
}

func Fatalf(format string, v ...interface{}) {
	emit(LevelFatal, levelFatal, fmt.Sprintf(format, v...))
	exit(1)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Entry carries key/value pairs attached to every line it writes.
type Entry struct {
	attrs []any
}

// With returns an Entry that appends kv to each record.
func With(kv ...any) Entry {
	return Entry{attrs: kv}
}

func (e Entry) Infof(format string, v ...interface{}) {
	emit(LevelInfo, slog.LevelInfo, fmt.Sprintf(format, v...), e.attrs...)
}

func (e Entry) Warnf(format string, v ...interface{}) {
	emit(LevelWarn, slog.LevelWarn, fmt.Sprintf(format, v...), e.attrs...)
}

func (e Entry) Errorf(format string, v ...interface{}) {
	emit(LevelError, slog.LevelError, fmt.Sprintf(format, v...), e.attrs...)
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
