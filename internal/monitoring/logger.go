// Package monitoring holds the process-wide diagnostic loggers.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Tracef is the verbose trace channel for per-frame detail (touch patterns,
// sync loss). It is muted until SetVerbose(true).
var Tracef func(format string, v ...interface{}) = noop

var verbose bool

func noop(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = noop
		return
	}
	Logf = f
}

// SetVerbose routes Tracef through the current Logf when on, and mutes it
// otherwise. Call it after SetLogger if both are used.
func SetVerbose(on bool) {
	verbose = on
	if !on {
		Tracef = noop
		return
	}
	logf := Logf
	Tracef = func(format string, v ...interface{}) { logf(format, v...) }
}

// Verbose reports whether the trace channel is live, so callers can skip
// building expensive trace lines.
func Verbose() bool {
	return verbose
}
