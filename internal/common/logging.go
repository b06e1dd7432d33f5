// Package common holds the logger shared by the briefing portal packages.
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// LoggingConfig selects the writers and level of a Logger.
type LoggingConfig struct {
	Level      string
	Outputs    []string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// Logger wraps arbor.ILogger so packages share one fluent logging API.
type Logger struct {
	arbor.ILogger
}

// discardWriter drops everything. It stops the silent logger from falling
// through to writers registered globally by other loggers.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// lineWriter renders arbor's JSON events as "message key=value" lines.
type lineWriter struct {
	out   io.Writer
	level log.Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}

	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(evt.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, evt.Fields[k])
	}
	if evt.Error != "" {
		fmt.Fprintf(&b, " error=%s", evt.Error)
	}
	b.WriteByte('\n')
	if _, err := w.out.Write([]byte(b.String())); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *lineWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *lineWriter) GetFilePath() string { return "" }
func (w *lineWriter) Close() error        { return nil }

// NewLoggerFromConfig builds a logger with console (stderr) and/or rotating
// file writers. A memory writer is always attached.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	l := arbor.NewLogger()
	for _, out := range outputs {
		switch strings.ToLower(strings.TrimSpace(out)) {
		case "console":
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: timeFormat,
			})
		case "file":
			filePath := cfg.FilePath
			if filePath == "" {
				filePath = "logs/briefing-portal.log"
			}
			maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
			if maxSize <= 0 {
				maxSize = 10 * 1024 * 1024
			}
			maxBackups := cfg.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 5
			}
			l = l.WithFileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   filePath,
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
				TimeFormat: timeFormat,
			})
		}
	}

	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewLogger creates a console logger at the given level.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{Level: level})
}

// NewLoggerWithOutput creates a logger whose console output goes to w as
// plain text lines. Used by tests that assert on log content.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, &lineWriter{out: w, level: log.TraceLevel})

	l := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{
			Type: models.LogWriterTypeMemory,
		}).
		WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	l := arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})
	return &Logger{ILogger: l}
}

// WithCorrelationId returns a logger tagged with a request correlation id.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}
