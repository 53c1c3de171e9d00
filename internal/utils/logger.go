package utils

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	CurrentLevel   LogLevel = LevelInfo
	ShowRaylibInfo bool
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel maps a -log-level flag value to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

const (
	colorReset   = "\033[0m"
	colorCyan    = "\033[36m"
	colorBlue    = "\033[34m"
	colorYellow  = "\033[33m"
	colorRed     = "\033[31m"
	colorMagenta = "\033[35m"
)

func logMessage(level LogLevel, scope string, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}

	var colorCode string
	switch level {
	case LevelDebug:
		colorCode = colorCyan
	case LevelInfo:
		colorCode = colorBlue
	case LevelWarn:
		colorCode = colorYellow
	case LevelError:
		colorCode = colorRed
	}

	prefix := fmt.Sprintf("%s[%s]%s ", colorCode, level.String(), colorReset)
	if scope != "" {
		prefix += scope + ": "
	}
	log.Printf(prefix+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, "", format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, "", format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, "", format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, "", format, v...) }

// Logger prefixes every line with a component name.
type Logger struct {
	scope string
}

func Scope(name string) Logger { return Logger{scope: name} }

func (l Logger) Info(format string, v ...interface{})  { logMessage(LevelInfo, l.scope, format, v...) }
func (l Logger) Debug(format string, v ...interface{}) { logMessage(LevelDebug, l.scope, format, v...) }
func (l Logger) Warn(format string, v ...interface{})  { logMessage(LevelWarn, l.scope, format, v...) }
func (l Logger) Error(format string, v ...interface{}) { logMessage(LevelError, l.scope, format, v...) }

func RaylibLogCallback(level int, text string) {
	formattedText := colorMagenta + "[RAYLIB] " + colorReset + text
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		if CurrentLevel <= LevelDebug {
			Debug("%s", formattedText)
		}
	case 3: // LOG_INFO
		if ShowRaylibInfo || CurrentLevel <= LevelDebug {
			Info("%s", formattedText)
		}
	case 4: // LOG_WARNING
		Warn("%s", formattedText)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formattedText)
	}
}

// SlogHandler routes slog records (gg diagnostics) into the leveled logger.
type SlogHandler struct {
	scope string
	attrs []slog.Attr
}

func NewSlogLogger(scope string) *slog.Logger {
	return slog.New(&SlogHandler{scope: scope})
}

func levelFromSlog(l slog.Level) LogLevel {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	}
	return LevelError
}

func (h *SlogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return levelFromSlog(l) >= CurrentLevel
}

func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	logMessage(levelFromSlog(r.Level), h.scope, "%s", b.String())
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SlogHandler{scope: h.scope, attrs: merged}
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{scope: h.scope + "." + name, attrs: h.attrs}
}
