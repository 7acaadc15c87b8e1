package logsvc

import (
	"io"
	"log"

	"github.com/Zhalalov2-code/online-course/core"
)

// Flags used by every logger of the project.
const Flags = log.LstdFlags | log.Lmicroseconds | log.Lshortfile

// New returns a stdlib logger writing to w with the given prefix, e.g. "API : ".
func New(w io.Writer, prefix string) *log.Logger {
	return log.New(w, prefix, Flags)
}

// StdLogger logs to a stdlib logger only. Debug messages are dropped unless debug is set.
type StdLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger, debug bool) *StdLogger {
	return &StdLogger{std: std, debug: debug}
}

// NewNopLogger discards everything.
func NewNopLogger() *StdLogger {
	return NewStdLogger(log.New(io.Discard, "", 0), false)
}

func (l StdLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		printTo(l.std, "DEBUG "+msg, args)
	}
}

func (l StdLogger) Info(msg string, args ...interface{}) {
	printTo(l.std, "INFO "+msg, args)
}

func (l StdLogger) Warn(msg string, args ...interface{}) {
	printTo(l.std, "WARN "+msg, args)
}

func (l StdLogger) Error(msg string, args ...interface{}) {
	printTo(l.std, "ERROR "+msg, args)
}

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	printTo(l.std, "FATAL "+msg, args)
	l.std.Fatal(msg)
}

// NewLogger picks the Rollbar logger when a token is configured.
func NewLogger(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken == "" {
		return NewStdLogger(std, conf.Debug)
	}
	logger := NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func printTo(std *log.Logger, msg string, args []interface{}) {
	_ = std.Output(3, msg)
	for _, arg := range args {
		_ = std.Output(3, sprintArg(arg))
	}
}
