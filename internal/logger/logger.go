// Package logger is a process-wide charmbracelet/log logger writing to a
// rotated file under the config directory.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/interviewdesk/internal/constants"
)

// Logger is nil until Init or InitWriter runs. The helpers below are no-ops
// until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet suppresses the stderr copy that Debug otherwise adds.
	Quiet bool
}

// Init writes to <ConfigDir>/logs/interviewdesk.log and, in debug mode, to
// stderr as well unless Quiet is set.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var w io.Writer = rotatingFile(logDir)
	if cfg.Debug && !cfg.Quiet {
		w = io.MultiWriter(os.Stderr, w)
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	Logger = newLogger(w, level, cfg.Debug)
	return nil
}

// InitWriter points the global logger at w.
func InitWriter(w io.Writer, level log.Level) {
	Logger = newLogger(w, level, false)
}

func rotatingFile(dir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.AppName+".log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

func newLogger(w io.Writer, level log.Level, caller bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    caller,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
