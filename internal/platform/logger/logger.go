// Package logger provides leveled logging for the simulation and server.
// Messages follow the engine convention of a "Component: message" body.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes info and warning lines to one writer and errors to another.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger creates a logger writing to stdout and stderr.
func NewLogger() *Logger {
	return New(os.Stdout, os.Stderr, log.Ldate|log.Ltime)
}

// New creates a logger on explicit writers.
func New(out, errOut io.Writer, flags int) *Logger {
	return &Logger{
		infoLogger:  log.New(out, "[ASCENT-INFO] ", flags),
		warnLogger:  log.New(out, "[ASCENT-WARN] ", flags),
		errorLogger: log.New(errOut, "[ASCENT-ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything. Used by tests and tools.
func Discard() *Logger {
	return New(io.Discard, io.Discard, 0)
}

func (l *Logger) Info(msg string) {
	l.infoLogger.Println(msg)
}

func (l *Logger) Warn(msg string) {
	l.warnLogger.Println(msg)
}

func (l *Logger) Error(msg string) {
	l.errorLogger.Println(msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.infoLogger.Println(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.warnLogger.Println(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.errorLogger.Println(fmt.Sprintf(format, args...))
}

// Event logs a session event (wall spawned, anchor broke, session lost).
func (l *Logger) Event(eventType string, actor string, details string) {
	l.infoLogger.Printf("[EVENT:%s] Actor:%s | %s", eventType, actor, details)
}
