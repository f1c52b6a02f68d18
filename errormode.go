package params

import (
	"strings"

	"github.com/charmbracelet/log"
)

// ErrorMode selects how a container reports constraint violations.
type ErrorMode int

const (
	// ModeNone drops failures silently.
	ModeNone ErrorMode = iota
	// ModeWarning logs failures at warn level.
	ModeWarning
	// ModeError logs failures at error level.
	ModeError
	// ModeCritical logs failures at fatal level without exiting.
	ModeCritical
	// ModeException returns failures to the caller.
	ModeException
)

func (m ErrorMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeWarning:
		return "warning"
	case ModeError:
		return "error"
	case ModeCritical:
		return "critical"
	case ModeException:
		return "exception"
	default:
		return "unknown"
	}
}

// ParseErrorMode converts a textual mode. The second result is false for
// unrecognised values.
func ParseErrorMode(value string) (ErrorMode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return ModeNone, true
	case "warning", "warn":
		return ModeWarning, true
	case "error":
		return ModeError, true
	case "critical":
		return ModeCritical, true
	case "exception":
		return ModeException, true
	default:
		return ModeException, false
	}
}

// Logger receives failures reported by the warning, error and critical
// modes. *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Log(level log.Level, msg interface{}, keyvals ...interface{})
}

// report routes err through mode. Only ModeException hands the error back.
func report(mode ErrorMode, logger Logger, err error) error {
	if err == nil {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}
	switch mode {
	case ModeNone:
		return nil
	case ModeWarning:
		logger.Log(log.WarnLevel, err.Error())
	case ModeError:
		logger.Log(log.ErrorLevel, err.Error())
	case ModeCritical:
		// Logged at FatalLevel; the process keeps running.
		logger.Log(log.FatalLevel, err.Error())
	default:
		return err
	}
	return nil
}
