package trust

import (
	"fmt"
)

type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
	StatsMask MaskLevel = 0x10
	fatalMask MaskLevel = 0x80
)

// Sink is where the formatted log lines end up.  On the board this is the
// console, on the host anything with a Puts.
type Sink interface {
	Puts(s string)
}

// Logger is a leveled logger that writes whole lines to a Sink.  A Logger
// with a nil sink drops everything.
type Logger struct {
	sink  Sink
	level MaskLevel
}

func NewLogger(s Sink) *Logger {
	return &Logger{
		sink:  s,
		level: fatalMask | StatsMask | ErrorMask | WarnMask | InfoMask,
	}
}

var std = NewLogger(nil)

// SetDefault replaces the logger used by the package level functions and
// returns the previous one.
func SetDefault(l *Logger) *Logger {
	prev := std
	std = l
	return prev
}

func Default() *Logger {
	return std
}

// SetLevel lets you set an error mask directly. You can pass in something like
// InfoMask | StatsMask to control what gets printed.  More severe levels are
// implied by less severe ones, so DebugMask turns on errors, warnings and info
// as well; StatsMask stands alone. It returns the previous mask.
func (l *Logger) SetLevel(mask MaskLevel) MaskLevel {
	if mask&0x1f == 0 {
		l.logf(WarnMask, "trust.SetLevel is turning off log messages")
	}
	result := mask & StatsMask
	switch {
	case mask&DebugMask > 0:
		result |= DebugMask
		fallthrough
	case mask&InfoMask > 0:
		result |= InfoMask
		fallthrough
	case mask&WarnMask > 0:
		result |= WarnMask
		fallthrough
	case mask&ErrorMask > 0:
		result |= ErrorMask
	}
	r := l.level & 0x1f
	l.level = result | fatalMask
	return r
}

func (l *Logger) Level() MaskLevel {
	return l.level
}

func (l *Logger) LevelToString() string {
	result := ""
	if l.level&ErrorMask > 0 {
		result += "error "
	}
	if l.level&WarnMask > 0 {
		result += "warn "
	}
	if l.level&InfoMask > 0 {
		result += "info "
	}
	if l.level&DebugMask > 0 {
		result += "debug "
	}
	if l.level&StatsMask > 0 {
		result += "stats"
	}
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	return result
}

func (l *Logger) logf(lvl MaskLevel, format string, params ...interface{}) {
	if l == nil || l.sink == nil || l.level&lvl == 0 {
		return
	}
	prefix := ""
	switch {
	case lvl&fatalMask > 0:
		prefix = "FATAL:"
	case lvl&ErrorMask > 0:
		prefix = "ERROR:"
	case lvl&WarnMask > 0:
		prefix = " WARN:"
	case lvl&InfoMask > 0:
		prefix = " INFO:"
	case lvl&DebugMask > 0:
		prefix = "DEBUG:"
	case lvl&StatsMask > 0:
		s := "unknown"
		if len(params) > 0 {
			if c, ok := params[0].(string); ok {
				s = c
			}
			params = params[1:]
		}
		prefix = "STATS[" + s + "]:"
	}
	if len(format) == 0 || format[len(format)-1] != '\n' {
		format += "\n"
	}
	l.sink.Puts(prefix + fmt.Sprintf(format, params...))
}

//Fatalf prints the given log message (format + params). Fatalf is not
//maskable. It does not stop anything, the caller decides how to die.
func (l *Logger) Fatalf(format string, params ...interface{}) {
	l.logf(fatalMask, format, params...)
}

//Errorf prints the given log message (format + params) using the ErrorMask level.
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.logf(ErrorMask, format, params...)
}

//Warnf prints the given log message (format + params) using the WarnMask level.
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.logf(WarnMask, format, params...)
}

//Infof prints the given log message (format + params) using the InfoMask level.
func (l *Logger) Infof(format string, params ...interface{}) {
	l.logf(InfoMask, format, params...)
}

//Debugf prints the given log message (format + params) using the DebugMask level.
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.logf(DebugMask, format, params...)
}

//Statsf prints the given log message (format + params) using the StatsMask level and
//takes an extra parameter that will be visible in the log message as the category
//of stats that is reported.
func (l *Logger) Statsf(category string, format string, params ...interface{}) {
	l.logf(StatsMask, format, append([]interface{}{category}, params...)...)
}

func Fatalf(format string, params ...interface{}) { std.Fatalf(format, params...) }
func Errorf(format string, params ...interface{}) { std.Errorf(format, params...) }
func Warnf(format string, params ...interface{})  { std.Warnf(format, params...) }
func Infof(format string, params ...interface{})  { std.Infof(format, params...) }
func Debugf(format string, params ...interface{}) { std.Debugf(format, params...) }
func Statsf(category string, format string, params ...interface{}) {
	std.Statsf(category, format, params...)
}
