package logging

// Level represents a console verbosity level. Its value hierarchy is ordered
// and comparable by value, and maps directly onto the Reporter's channels
// (pkg/hobomirror/report): LevelError gates Error/CriticalError, LevelInfo
// additionally gates Action/Change, and LevelDebug additionally gates
// Debug. HoboMirror has no separate Warn or Trace channel, so those levels
// from the generic six-level scheme this is adapted from were dropped
// rather than carried along unused.
type Level uint

const (
	// LevelDisabled suppresses every Reporter channel, including
	// CriticalError; only the process exit code still reflects what
	// happened.
	LevelDisabled Level = iota
	// LevelError enables the Error and CriticalError channels.
	LevelError
	// LevelInfo additionally enables the Action and Change channels; this
	// is the default for a normal mirroring run.
	LevelInfo
	// LevelDebug additionally enables the Debug channel (progress
	// sampling, per-primitive diagnostics).
	LevelDebug
)

// NameToLevel converts a string-based representation of a log level to the
// appropriate Level value. It returns a boolean indicating whether or not the
// conversion was valid. If the name is invalid, LevelDisabled is returned.
func NameToLevel(name string) (Level, bool) {
	switch name {
	case "disabled":
		return LevelDisabled, true
	case "error":
		return LevelError, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	default:
		return LevelDisabled, false
	}
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	switch l {
	case LevelDisabled:
		return "disabled"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}
