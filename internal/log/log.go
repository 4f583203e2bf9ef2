// Package log wires logrus for the library and the CLI. The logger travels
// on the context so that a batch run can tag every line with its source.
package log

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	rootLogger = logrus.NewEntry(logrus.StandardLogger())

	// L accesses the current logger from the context
	L = loggerFromContext

	initAtLeastOnce atomic.Bool
)

type ctxLogKey struct{}

// Config controls log output.
type Config struct {
	Level  string     `json:"level,omitempty"`  // error, warn, info, debug, trace
	Format string     `json:"format,omitempty"` // simple, detailed, json
	Output string     `json:"output,omitempty"` // stderr, stdout, file
	UTC    bool       `json:"utc,omitempty"`
	File   FileConfig `json:"file,omitempty"`
}

// FileConfig configures the rotating log file used when Output is "file".
type FileConfig struct {
	Filename   string `json:"filename,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty"`
	MaxAgeDays int    `json:"maxAgeDays,omitempty"`
	Compress   bool   `json:"compress,omitempty"`
}

// InitConfig applies conf to the global logrus logger.
func InitConfig(conf *Config) {
	initAtLeastOnce.Store(true) // must store before SetLevel

	SetLevel(conf.Level)

	switch conf.Output {
	case "file":
		filename := conf.File.Filename
		if filename == "" {
			filename = "laxder.log"
		}
		maxSize := conf.File.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 100
		}
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    maxSize,
			MaxBackups: conf.File.MaxBackups,
			MaxAge:     conf.File.MaxAgeDays,
			Compress:   conf.File.Compress,
		})
	case "stdout":
		logrus.SetOutput(os.Stdout)
	default:
		logrus.SetOutput(os.Stderr)
	}

	setFormatting(conf.Format, conf.UTC)
}

func ensureInit() {
	if !initAtLeastOnce.Load() {
		InitConfig(&Config{})
	}
}

// WithLogger adds the specified logger to the context
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	ensureInit()
	return context.WithValue(ctx, ctxLogKey{}, logger)
}

// WithLogField adds the specified field to the logger in the context
func WithLogField(ctx context.Context, key, value string) context.Context {
	ensureInit()
	if len(value) > 61 {
		value = value[0:61] + "..."
	}
	return WithLogger(ctx, loggerFromContext(ctx).WithField(key, value))
}

func loggerFromContext(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(ctxLogKey{})
	if logger == nil {
		return rootLogger
	}
	return logger.(*logrus.Entry)
}

func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

type utcFormat struct {
	f logrus.Formatter
}

func (utc *utcFormat) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return utc.f.Format(e)
}

func setFormatting(format string, utc bool) {
	var formatter logrus.Formatter
	switch format {
	case "json":
		formatter = &logrus.JSONFormatter{}
	case "detailed":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		formatter = &prefixed.TextFormatter{
			ForceFormatting: true,
			FullTimestamp:   true,
		}
	}
	if utc {
		formatter = &utcFormat{f: formatter}
	}
	logrus.SetReportCaller(format == "detailed")
	logrus.SetFormatter(formatter)
}
