/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging for lstar-probe. Wraps logrus with level and format selection,
an optional timestamped log file next to the console output, retention of old log
files, and learner-specific helpers for runs, steps, overflows and summaries.
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

// filePrefix names every log file written to OutputDir
const filePrefix = "lstar-probe_"

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level     LogLevel  `json:"level"`
	Format    LogFormat `json:"format"`
	OutputDir string    `json:"output_dir"` // empty: console only
	MaxFiles  int       `json:"max_files"`  // 0 keeps every file
	Timestamp bool      `json:"timestamp"`
	Caller    bool      `json:"caller"`
	Colors    bool      `json:"colors"`

	// Console receives log output; nil means os.Stderr
	Console io.Writer `json:"-"`
}

// DefaultConfig returns console-only custom formatting at info level
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatCustom,
		MaxFiles:  10,
		Timestamp: true,
		Colors:    true,
	}
}

// Validate checks the LoggerConfig for invalid values
func (c *LoggerConfig) Validate() error {
	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files must not be negative")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

// Logger provides structured logging for learning sessions
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	filePath   string
	startTime  time.Time
}

// NewLogger creates a new logger instance. A nil config uses DefaultConfig.
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return l, nil
}

func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(l.config.Caller)

	if err := l.setFormatter(); err != nil {
		return err
	}

	console := l.config.Console
	if console == nil {
		console = os.Stderr
	}
	l.logger.SetOutput(console)

	return l.setupFileOutput(console)
}

func (l *Logger) setFormatter() error {
	callerPrettyfier := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: callerPrettyfier,
		})
	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      l.config.Colors,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: callerPrettyfier,
		})
	case LogFormatCustom:
		l.logger.SetFormatter(&CustomFormatter{
			Timestamp: l.config.Timestamp,
			Caller:    l.config.Caller,
			Colors:    l.config.Colors,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}
	return nil
}

// setupFileOutput tees console output into a timestamped file under OutputDir
func (l *Logger) setupFileOutput(console io.Writer) error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := l.startTime.Format("2006-01-02_15-04-05")
	path := filepath.Join(l.config.OutputDir, filePrefix+timestamp+".log")

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.fileHandle = file
	l.filePath = path
	l.logger.SetOutput(io.MultiWriter(console, file))

	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   path,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Debug("Logging initialized")
	return nil
}

// cleanup removes the oldest log files beyond MaxFiles
func (l *Logger) cleanup() error {
	if l.config.OutputDir == "" || l.config.MaxFiles == 0 {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(l.config.OutputDir, filePrefix+"*.log"))
	if err != nil {
		return err
	}
	if len(files) <= l.config.MaxFiles {
		return nil
	}

	// Timestamped names sort oldest first
	sort.Strings(files)
	for _, f := range files[:len(files)-l.config.MaxFiles] {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// FilePath returns the active log file, or "" when logging to console only
func (l *Logger) FilePath() string {
	return l.filePath
}

// GetLogger returns the underlying logrus logger
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// Close closes the log file and prunes old ones
func (l *Logger) Close() error {
	if l.fileHandle != nil {
		if err := l.fileHandle.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
		l.fileHandle = nil
		l.logger.SetOutput(io.Discard)
	}
	if err := l.cleanup(); err != nil {
		return fmt.Errorf("failed to cleanup log files: %w", err)
	}
	return nil
}

// Learner-specific logging methods

// LogSession logs the parameters a learning session starts with
func (l *Logger) LogSession(sessionID string, opts learner.Options, enumerate bool, workers int) {
	l.logger.WithFields(logrus.Fields{
		"session_id":       sessionID,
		"max_length":       opts.MaxLength,
		"overflow_slack":   opts.OverflowSlack,
		"table_max":        opts.TableMax(),
		"slack_sufficient": opts.SlackSufficient(),
		"enumerate":        enumerate,
		"workers":          workers,
	}).Info("Session started")
	if !opts.SlackSufficient() {
		l.logger.WithFields(logrus.Fields{
			"overflow_slack": opts.OverflowSlack,
			"required":       opts.MaxLength + 1,
		}).Warn("Overflow slack below max_length+1, some teachers will overflow")
	}
}

// LogArtifact logs a file written by the session
func (l *Logger) LogArtifact(kind, path string) {
	l.logger.WithFields(logrus.Fields{
		"kind": kind,
		"path": path,
	}).Info("Artifact written")
}

// LogSummary logs the aggregate statistics of a session
func (l *Logger) LogSummary(s metrics.Summary) {
	l.logger.WithFields(logrus.Fields{
		"total_runs":       s.TotalRuns,
		"matched_runs":     s.MatchedRuns,
		"failed_runs":      s.FailedRuns,
		"column_overflows": s.ColumnOverflows,
		"row_overflows":    s.RowOverflows,
		"total_steps":      s.TotalSteps,
		"average_steps":    s.AverageSteps,
		"mi_decreases":     s.MIDecreaseSteps,
		"good_oracle_mi":   s.MIDecreaseGoodOracleRatio,
		"uptime":           time.Since(l.startTime),
	}).Info("Summary")
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}
