// Package logger provides leveled, package-named loggers for the server.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

type LogLevel int

const (
	CRITICAL LogLevel = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// ParseLevel converts a string level to a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger Interface
// --------------------------------------------------------------------------

// ILogger is the leveled logging interface handed out to packages.
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// dbLogger implements the ILogger interface with custom formatting
type dbLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *dbLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *dbLogger) Debugf(format string, args ...interface{}) {
	if l.level >= DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *dbLogger) Infof(format string, args ...interface{}) {
	if l.level >= INFO {
		l.log("INFO", format, args...)
	}
}

func (l *dbLogger) Warningf(format string, args ...interface{}) {
	if l.level >= WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *dbLogger) Errorf(format string, args ...interface{}) {
	if l.level >= ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *dbLogger) Panicf(format string, args ...interface{}) {
	if l.level >= CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *dbLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Registry
// --------------------------------------------------------------------------

var (
	registry     = xsync.NewMapOf[string, ILogger]()
	defaultLevel = INFO
)

// GetLogger returns the logger registered for the given package name,
// creating it at the current default level on first use.
func GetLogger(pkgName string) ILogger {
	l, _ := registry.LoadOrCompute(pkgName, func() ILogger {
		return &dbLogger{
			name:   pkgName,
			level:  defaultLevel,
			logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
		}
	})
	return l
}

// SetLevelAll applies a level to every registered logger and to loggers
// created afterwards.
func SetLevelAll(level LogLevel) {
	defaultLevel = level
	registry.Range(func(_ string, l ILogger) bool {
		l.SetLevel(level)
		return true
	})
}
