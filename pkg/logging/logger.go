package logging

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

// DebugEnabled controls whether or not Logger.Debugln produces output. It is
// a single process-wide toggle, set once from the -log-level flag's parsed
// Level (see cmd/hobomirror), since HoboMirror has no configuration layer
// of its own (config parsing is an external collaborator).
var DebugEnabled = false

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is designed to use the
// standard logger provided by the log package, so it respects any flags set
// for that logger. It is safe for concurrent usage.
//
// Reporter (pkg/hobomirror/report) derives one Sublogger per event channel
// (Action/Change/Error/CriticalError/Debug) from RootLogger; Logger itself
// carries no channel-specific behavior beyond the prefix it prepends.
type Logger struct {
	// prefix is any prefix specified for the logger.
	prefix string
}

// RootLogger is the root logger from which all other loggers derive.
var RootLogger = &Logger{}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new prefix.
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}

	// Create the new logger.
	return &Logger{
		prefix: prefix,
	}
}

// output is the internal logging method.
func (l *Logger) output(calldepth int, line string) {
	// Add a prefix if necessary.
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] %s", l.prefix, line)
	}

	// Log.
	log.Output(calldepth, line)
}

// Println logs information with semantics equivalent to fmt.Println.
func (l *Logger) Println(v ...interface{}) {
	if l != nil {
		l.output(3, fmt.Sprintln(v...))
	}
}

// Debugln logs information with semantics equivalent to fmt.Println, but only
// if debugging is enabled (otherwise it's a no-op).
func (l *Logger) Debugln(v ...interface{}) {
	if l != nil && DebugEnabled {
		l.output(3, fmt.Sprintln(v...))
	}
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	if l != nil {
		l.output(3, color.YellowString("Warning: %v", err))
	}
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	if l != nil {
		l.output(3, color.RedString("Error: %v", err))
	}
}

// FileSink adapts an io.Writer (typically an append-only *os.File opened
// under a log directory) into a *log.Logger with no prefix that stamps each
// line with the local date and time (log.LstdFlags), so each Reporter
// channel can fan its lines out to its own file independently of the
// console logger above.
func FileSink(w io.Writer) *log.Logger {
	return log.New(w, "", log.LstdFlags)
}
