/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the lstar-probe commands. Loads configuration,
sets up logging and assembles a learning session with its reporters and output
files.
*/

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/kleascm/lstar-probe/pkg/config"
	"github.com/kleascm/lstar-probe/pkg/enumerate"
	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/logging"
	"github.com/kleascm/lstar-probe/pkg/report"
	"github.com/kleascm/lstar-probe/pkg/telemetry"
	"github.com/spf13/viper"
)

// Version is reported by --version and stamped into result file names
const Version = "1.0.0"

// LoadConfig resolves configuration from file, environment and flags
func LoadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), viper.GetString("config"))
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// SetupLogging creates the session logger
func SetupLogging(cfg config.Config) (*logging.Logger, error) {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(cfg.Log.Level),
		Format:    logging.LogFormat(cfg.Log.Format),
		OutputDir: cfg.Log.Dir,
		MaxFiles:  10,
		Timestamp: true,
		Colors:    cfg.Log.Format == string(logging.LogFormatCustom),
	})
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "🚀 lstar-probe - %s\n", title)
	fmt.Fprintln(w, "============================================")
	fmt.Fprintln(w)
}

// session owns everything a learn or enumerate invocation writes
type session struct {
	id        string
	cfg       config.Config
	logger    *logging.Logger
	collector *telemetry.Collector
	driver    *enumerate.Driver
	trace     *os.File
	closed    bool
}

// newSession validates cfg and wires the learner with its reporters. traceOut
// receives the analysis trace when no trace file is configured; nil disables it.
func newSession(cfg config.Config, traceOut io.Writer) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := SetupLogging(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	s := &session{id: uuid.New().String(), cfg: cfg, logger: logger}

	reporters := []learner.Reporter{learner.NewLoggerReporter(logger.GetLogger())}

	if cfg.TraceFile != "" {
		f, err := os.Create(cfg.TraceFile)
		if err != nil {
			logger.Close()
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		s.trace = f
		traceOut = f
	}
	if traceOut != nil {
		reporters = append(reporters, report.NewTraceReporter(traceOut, cfg.Verbose))
	}

	if cfg.MetricsFile != "" {
		collector, err := telemetry.NewCollector()
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to create metrics collector: %w", err)
		}
		s.collector = collector
		reporters = append(reporters, collector)
	}

	l, err := learner.New(cfg.LearnerOptions(), reporters...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create learner: %w", err)
	}
	s.driver = enumerate.NewDriver(l, cfg.Workers, logger.GetLogger())

	logger.LogSession(s.id, cfg.LearnerOptions(), cfg.Enumerate, s.driver.Workers())
	return s, nil
}

// writeJSON stores result under the output directory when one is configured
func (s *session) writeJSON(kind string, result interface{}) error {
	if s.cfg.OutputDir == "" {
		return nil
	}
	path, err := report.WriteJSON(s.cfg.OutputDir, kind, Version, result)
	if err != nil {
		return err
	}
	s.logger.LogArtifact(kind, path)
	return nil
}

// Close flushes metrics and closes the trace and log files. Later calls are no-ops.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if s.collector != nil {
		if err := s.collector.WriteTextfile(s.cfg.MetricsFile); err != nil {
			firstErr = fmt.Errorf("failed to write metrics file: %w", err)
		} else {
			s.logger.LogArtifact("metrics", s.cfg.MetricsFile)
		}
	}
	if s.trace != nil {
		if err := s.trace.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close trace file: %w", err)
		}
		s.logger.LogArtifact("trace", s.cfg.TraceFile)
	}
	if err := s.logger.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
