package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the poll API and the lifecycle scheduler.
// Init(level) sets the process-wide threshold; Named(component) returns a
// logger that prefixes every line with the component name.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var (
	mu    sync.RWMutex
	out   = log.New(os.Stdout, "", 0)
	level = LevelInfo
	exit  = os.Exit
)

// ParseLevel maps a case-insensitive name to a Level. Unknown names are Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

// Init sets the global log level. Call early during startup.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// SetOutput redirects all loggers to w and returns the previous logger.
func SetOutput(w io.Writer) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = log.New(w, "", 0)
	return prev
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return levelNames[level]
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func write(l Level, component, format string, v ...interface{}) {
	if l != LevelFatal && !enabled(l) {
		return
	}
	var b strings.Builder
	b.WriteString(time.Now().UTC().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(levelNames[l]))
	b.WriteString("] ")
	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	b.WriteString(fmt.Sprintf(format, v...))
	mu.RLock()
	target := out
	mu.RUnlock()
	target.Print(b.String())
}

// Logger is a component-scoped view over the global logger.
type Logger struct {
	component string
}

// Named returns a logger whose lines carry the given component name.
func Named(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) Debugf(format string, v ...interface{}) { write(LevelDebug, l.component, format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { write(LevelInfo, l.component, format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { write(LevelWarn, l.component, format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { write(LevelError, l.component, format, v...) }

func Debugf(format string, v ...interface{}) { write(LevelDebug, "", format, v...) }
func Infof(format string, v ...interface{})  { write(LevelInfo, "", format, v...) }
func Warnf(format string, v ...interface{})  { write(LevelWarn, "", format, v...) }
func Errorf(format string, v ...interface{}) { write(LevelError, "", format, v...) }

// Fatalf always logs, then exits the process.
func Fatalf(format string, v ...interface{}) {
	write(LevelFatal, "", format, v...)
	exit(1)
}
