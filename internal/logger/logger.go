package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Leveled console/file logger used by every layer of the application.
// Metadata (level, caller) is printed in plain text, the message itself
// is colored by severity when writing to a terminal.

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

const (
	colorReset  = "\033[0m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorRed    = "\033[31m"
)

type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	level       LogLevel
	colored     bool
}

var (
	defaultLogger *Logger
	showDateTime  bool
	logFile       *os.File
)

func init() {
	defaultLogger = NewLogger(INFO)
}

func NewLogger(level LogLevel) *Logger {
	return &Logger{
		infoLogger:  log.New(os.Stdout, "", flags()),
		errorLogger: log.New(os.Stderr, "", flags()),
		level:       level,
		colored:     true,
	}
}

func flags() int {
	if showDateTime {
		return log.Ldate | log.Ltime
	}
	return 0
}

// SetLevel adjusts the minimum severity the default logger will emit.
func SetLevel(level LogLevel) {
	defaultLogger.level = level
}

// SetLevelName accepts "debug", "info", "warn" or "error"; anything else is INFO.
func SetLevelName(name string) {
	switch strings.ToLower(name) {
	case "debug":
		SetLevel(DEBUG)
	case "warn":
		SetLevel(WARN)
	case "error":
		SetLevel(ERROR)
	default:
		SetLevel(INFO)
	}
}

func SetShowDateTime(value bool) {
	showDateTime = value
	defaultLogger.infoLogger.SetFlags(flags())
	defaultLogger.errorLogger.SetFlags(flags())
}

// SetLogFile redirects all output to the given file, disabling color.
func SetLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	defaultLogger.infoLogger = log.New(f, "", flags())
	defaultLogger.errorLogger = log.New(f, "", flags())
	defaultLogger.colored = false
	return nil
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) log(level LogLevel, msg string, v ...any) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	if len(v) > 0 {
		msg = msg + " " + formatArgs(v...)
	}

	var logMsg string
	if l.colored {
		logMsg = fmt.Sprintf("[%s] %s:%d: %s%s%s", level, file, line, levelColor(level), msg, colorReset)
	} else {
		logMsg = fmt.Sprintf("[%s] %s:%d: %s", level, file, line, msg)
	}

	if level >= ERROR {
		l.errorLogger.Println(logMsg)
	} else {
		l.infoLogger.Println(logMsg)
	}
}

func levelColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return colorBlue
	case INFO:
		return colorGreen
	case WARN:
		return colorYellow
	case ERROR:
		return colorOrange
	case FATAL:
		return colorRed
	default:
		return colorReset
	}
}

// formatArgs renders trailing arguments space-separated, with floats shortened
// to two decimal places for readable probability/xG output.
func formatArgs(args ...any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case float32:
			parts = append(parts, fmt.Sprintf("%.2f", v))
		case float64:
			parts = append(parts, fmt.Sprintf("%.2f", v))
		case error:
			parts = append(parts, v.Error())
		case nil:
			parts = append(parts, "nil")
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, " ")
}

// Convenience methods using the default logger

func Debug(msg string, v ...any) {
	defaultLogger.log(DEBUG, msg, v...)
}

func Info(msg string, v ...any) {
	defaultLogger.log(INFO, msg, v...)
}

func Warn(msg string, v ...any) {
	defaultLogger.log(WARN, msg, v...)
}

func Error(msg string, v ...any) {
	defaultLogger.log(ERROR, msg, v...)
}

func Fatal(msg string, v ...any) {
	defaultLogger.log(FATAL, msg, v...)
	os.Exit(1)
}
