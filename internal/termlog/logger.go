// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// defaultLibraryPrefixes lists the logger name prefixes treated as
// third-party library noise and filtered by the library threshold.
var defaultLibraryPrefixes = []string{"net/http", "azcore", "azblob"}

// Logger fans out records to the attached sinks. Named and WithFuncName
// return derived loggers that share sinks and thresholds with their parent,
// so attaching a sink anywhere is visible everywhere.
type Logger struct {
	core     *core
	name     string
	funcName string
}

type core struct {
	mu              sync.Mutex
	sinks           []boundSink
	level           Level
	libraryLevel    Level
	libraryPrefixes []string
}

type boundSink struct {
	sink      Sink
	formatter *Formatter
}

// New returns an empty Logger with both thresholds at INFO and no sinks
// attached. Records are discarded until a sink is attached.
func New() *Logger {
	return &Logger{
		core: &core{
			level:           InfoLevel,
			libraryLevel:    InfoLevel,
			libraryPrefixes: defaultLibraryPrefixes,
		},
	}
}

// Attach adds a sink with its bound formatter to the fan-out list.
func (l *Logger) Attach(sink Sink, formatter *Formatter) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.sinks = append(l.core.sinks, boundSink{sink: sink, formatter: formatter})
}

// SetLevels updates the terminal and library thresholds.
func (l *Logger) SetLevels(terminal, library Level) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.level = terminal
	l.core.libraryLevel = library
}

// SetLibraryPrefixes replaces the list of logger name prefixes filtered by
// the library threshold.
func (l *Logger) SetLibraryPrefixes(prefixes ...string) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.libraryPrefixes = prefixes
}

// Named returns a Logger stamping name on every record.
func (l *Logger) Named(name string) *Logger {
	return &Logger{core: l.core, name: name, funcName: l.funcName}
}

// WithFuncName returns a Logger that substitutes name for the captured call
// site function and forces the line number to zero. It is meant for call
// sites where the true function name is uninformative, like dispatch helpers.
func (l *Logger) WithFuncName(name string) *Logger {
	return &Logger{core: l.core, name: l.name, funcName: name}
}

// Debugf emits a record at DEBUG level.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(DebugLevel, "", format, args)
}

// Infof emits a record at INFO level.
func (l *Logger) Infof(format string, args ...any) {
	l.log(InfoLevel, "", format, args)
}

// Warningf emits a record at WARNING level.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(WarningLevel, "", format, args)
}

// Errorf emits a record at ERROR level.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(ErrorLevel, "", format, args)
}

// Exceptionf emits a record at ERROR level carrying the error chain as
// exception text. The formatter renders such records with the "X" level
// character and collapses the exception on the same line.
func (l *Logger) Exceptionf(err error, format string, args ...any) {
	exception := "unknown error"
	if err != nil {
		exception = err.Error()
	}

	l.log(ErrorLevel, exception, format, args)
}

// Close closes every attached sink, joining the errors.
func (l *Logger) Close() error {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()

	var errs []error
	for _, bound := range l.core.sinks {
		if err := bound.sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.core.sinks = nil

	return errors.Join(errs...)
}

// log renders the record once per sink formatter and writes it out. Sink
// write failures are swallowed: the pipeline must never interrupt the host
// application.
func (l *Logger) log(level Level, exception string, format string, args []any) {
	if level < l.threshold() {
		return
	}

	funcName, line := l.callSite()
	record := Record{
		Time:      time.Now(),
		Level:     level,
		Name:      l.name,
		FuncName:  funcName,
		Line:      line,
		Message:   fmt.Sprintf(format, args...),
		Exception: exception,
	}

	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	for _, bound := range l.core.sinks {
		_ = bound.sink.WriteLine(bound.formatter.Format(record))
	}
}

// threshold returns the level below which records from this logger are
// dropped, picking the library threshold for library logger names.
func (l *Logger) threshold() Level {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()

	for _, prefix := range l.core.libraryPrefixes {
		if strings.HasPrefix(l.name, prefix) {
			return l.core.libraryLevel
		}
	}

	return l.core.level
}

// callSite resolves the function name and line of the frame that called the
// public logging method, honoring the WithFuncName override.
func (l *Logger) callSite() (string, int) {
	if l.funcName != "" {
		return l.funcName, 0
	}

	pc, _, line, ok := runtime.Caller(3)
	if !ok {
		return "", 0
	}

	funcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(funcName, "."); idx >= 0 {
		funcName = funcName[idx+1:]
	}

	return funcName, line
}
