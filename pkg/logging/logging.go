// Package logging gives every package of the module a leveled logger on top of logr.
//
// Loggers are created before the command line is parsed and write to the
// controller-runtime delegating sink, so the zap logger installed by SetLogger
// at start-up is picked up by all of them:
//
//	var log = logging.Logger("binding-volume")
//
//	log.Info("Loaded bindings", "bindings", 3)
//	log.Debug("Discovered binding", "name", "db", "kind", "MySQL")
//
// Warning and Info are written at V(0), Debug at V(1) and Trace at V(2);
// --zap-log-level=debug or a numeric level of 2 turns them on.
// Never pass secret values as key/value pairs, only names, kinds and counts.
package logging

import (
	"github.com/go-logr/logr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
)

type level struct {
	v      int
	prefix string
}

var (
	warning = level{v: 0, prefix: "WARNING: "}
	info    = level{v: 0}
	debug   = level{v: 1, prefix: "DEBUG: "}
	trace   = level{v: 2, prefix: "TRACE: "}
)

// Log is a named logger with Warning, Info, Debug and Trace levels.
type Log struct {
	logger logr.Logger
}

func (l *Log) log(lvl level, msg string, keysAndValues []interface{}) {
	if sink := l.logger.V(lvl.v); sink.Enabled() {
		sink.Info(lvl.prefix+msg, keysAndValues...)
	}
}

// Error logs err regardless of the verbosity.
func (l *Log) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(err, msg, keysAndValues...)
}

func (l *Log) Warning(msg string, keysAndValues ...interface{}) {
	l.log(warning, msg, keysAndValues)
}

func (l *Log) Info(msg string, keysAndValues ...interface{}) {
	l.log(info, msg, keysAndValues)
}

func (l *Log) Debug(msg string, keysAndValues ...interface{}) {
	l.log(debug, msg, keysAndValues)
}

// Trace is for per key output, e.g. which property a secret entry was mapped to.
func (l *Log) Trace(msg string, keysAndValues ...interface{}) {
	l.log(trace, msg, keysAndValues)
}

// WithValues returns a child logger adding the key/value pairs to every message.
func (l *Log) WithValues(keysAndValues ...interface{}) *Log {
	return &Log{logger: l.logger.WithValues(keysAndValues...)}
}

// WithName returns a child logger with name appended to the logger name.
func (l *Log) WithName(name string) *Log {
	return &Log{logger: l.logger.WithName(name)}
}

// Logger returns a logger named name writing to the sink installed by SetLogger.
func Logger(name string, keysAndValues ...interface{}) *Log {
	return &Log{logger: logf.Log.WithName(name).WithValues(keysAndValues...)}
}

// FromLogr wraps logger.
func FromLogr(logger logr.Logger) *Log {
	return &Log{logger: logger}
}

// Discard returns a logger dropping every message.
func Discard() *Log {
	return &Log{logger: logr.Discard()}
}

// SetLogger installs the sink of every logger returned by Logger, including those created earlier.
func SetLogger(logger logr.Logger) {
	logf.SetLogger(logger)
}
