// ABOUTME: Leveled logging facade over a zap sugared logger with optional rotating file output
// ABOUTME: Console output goes to stderr so it never mixes with chat text on stdout

package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a logging severity.
type Level = zapcore.Level

// Level constants.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Options configures the logger outputs.
type Options struct {
	// Console receives human-readable lines; nil means stderr.
	Console io.Writer
	// File, when set, receives JSON lines rotated by size.
	File string
	// MaxSizeMB bounds a log file before rotation; zero means 10.
	MaxSizeMB int
}

var (
	level = zap.NewAtomicLevelAt(LevelInfo)

	mu     sync.RWMutex
	sugar  *zap.SugaredLogger
	closer io.Closer
)

func init() {
	sugar = build(Options{}, nil)
}

// Setup replaces the outputs. It keeps the current level.
func Setup(opts Options) error {
	var rotator *lumberjack.Logger
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: 3,
			MaxAge:     28,
		}
		// Touch the file so an unwritable path fails here, not on first write.
		if _, err := rotator.Write(nil); err != nil {
			return fmt.Errorf("open log file %s: %w", opts.File, err)
		}
	}

	next := build(opts, rotator)

	mu.Lock()
	prev, prevCloser := sugar, closer
	sugar = next
	closer = nil
	if rotator != nil {
		closer = rotator
	}
	mu.Unlock()

	_ = prev.Sync()
	if prevCloser != nil {
		_ = prevCloser.Close()
	}
	return nil
}

func build(opts Options, rotator *lumberjack.Logger) *zap.SugaredLogger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCfg := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      bracketLevel,
		ConsoleSeparator: " ",
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	if rotator != nil {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.TimeKey = "timestamp"
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar()
}

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// ParseLevel converts a name such as "debug" or "warn" to a Level.
func ParseLevel(name string) (Level, error) {
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return LevelInfo, fmt.Errorf("parse log level: %w", err)
	}
	return l, nil
}

// SetLevel sets the global log level.
func SetLevel(l Level) {
	level.SetLevel(l)
}

// GetLevel returns the current log level.
func GetLevel() Level {
	return level.Level()
}

// Sync flushes buffered output and closes the log file, if any. Sync
// errors from terminals are ignored; only file errors are returned.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	_ = sugar.Sync()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	logger().Debugf(format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	logger().Infof(format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logger().Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...any) {
	logger().Errorf(format, args...)
}

// With returns a structured logger carrying key-value pairs, for callers
// that log many fields about one subject.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return logger().With(keysAndValues...)
}
