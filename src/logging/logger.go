// Package logging is the leveled logger shared by the pipeline stages and the CLI.
// Lines look like "2025/01/02 15:04:05.000000 [INFO] [loader] read 32 rows".
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// ParseLevel maps a level name to a Level. ok is false for unknown names.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel parses and sets the global level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := ParseLevel(s)
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

// GetLogLevel returns the current global level.
func GetLogLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetOutput redirects all log lines; used by the CLI and by tests.
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

// Logger tags every line with a component name, e.g. "loader" or "render".
type Logger struct {
	component string
}

// For returns a Logger for the named component.
func For(component string) Logger { return Logger{component: component} }

func (lg Logger) logf(l Level, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	tag := ""
	if lg.component != "" {
		tag = "[" + lg.component + "] "
	}
	// Without args the message is printed verbatim so literal '%' in column
	// names like "Comp %" does not turn into %!(NOVERB).
	if len(args) == 0 {
		baseLogger.Printf("[%s] %s%s", l, tag, format)
		return
	}
	baseLogger.Printf("[%s] %s%s", l, tag, fmt.Sprintf(format, args...))
}

func (lg Logger) Debugf(format string, a ...interface{}) { lg.logf(LevelDebug, format, a...) }
func (lg Logger) Infof(format string, a ...interface{})  { lg.logf(LevelInfo, format, a...) }
func (lg Logger) Warnf(format string, a ...interface{})  { lg.logf(LevelWarn, format, a...) }
func (lg Logger) Errorf(format string, a ...interface{}) { lg.logf(LevelError, format, a...) }

// TimeTrack logs the duration of a stage at debug level. Use with defer:
//
//	defer log.TimeTrack(time.Now(), "normalize")
func (lg Logger) TimeTrack(start time.Time, label string) {
	lg.Debugf("%s took %s", label, time.Since(start))
}
