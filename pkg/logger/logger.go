package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

var levelTags = map[int]func(format string, a ...interface{}) string{
	DEBUG:   color.CyanString,
	INFO:    color.BlueString,
	WARNING: color.YellowString,
	ERROR:   color.RedString,
}

var levelNames = map[int]string{
	DEBUG:   "[DEBUG]",
	INFO:    "[INFO]",
	WARNING: "[WARN]",
	ERROR:   "[ERROR]",
}

type defaultLogger struct {
	level int
	inner *log.Logger
}

func NewLogger(level int) *defaultLogger {
	return NewLoggerWithWriter(level, os.Stdout)
}

func NewLoggerWithWriter(level int, w io.Writer) *defaultLogger {
	return &defaultLogger{level: level, inner: log.New(w, "", log.LstdFlags)}
}

// ParseLevel converts a level name in configuration to the level constant. An
// empty name means INFO.
func ParseLevel(s string) (int, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARNING, nil
	case "error":
		return ERROR, nil
	case "silence":
		return SILENCE, nil
	}

	return INFO, fmt.Errorf("unknown log level %s", s)
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.print(DEBUG, msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.print(INFO, msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.print(WARNING, msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.print(ERROR, msg, a...)
}

func (l *defaultLogger) print(level int, msg string, a ...any) {
	if l.level <= level {
		l.inner.Printf("%s %s", levelTags[level](levelNames[level]), fmt.Sprintf(msg, a...))
	}
}
