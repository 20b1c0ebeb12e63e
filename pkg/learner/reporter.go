/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter hooks for learner telemetry. Reporters are notified after every
equivalence check and once per finished run.
*/

package learner

import (
	"github.com/sirupsen/logrus"
)

// Reporter receives learner events. Implementations used by a parallel enumeration
// must be safe for concurrent use.
type Reporter interface {
	// OnStep is called after each equivalence check
	OnStep(run *RunResult, step *Step)
	// OnRunComplete is called once the run reached MATCHED or FAILED
	OnRunComplete(run *RunResult)
}

// LoggerReporter logs learner events through logrus
type LoggerReporter struct {
	logger *logrus.Logger
}

// NewLoggerReporter creates a new LoggerReporter
func NewLoggerReporter(logger *logrus.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnStep logs each measurement at debug level
func (r *LoggerReporter) OnStep(run *RunResult, step *Step) {
	fields := logrus.Fields{
		"run_id":      run.ID,
		"teacher":     run.TeacherBits,
		"step":        step.Index,
		"max_row":     step.MaxRow,
		"max_col":     step.MaxCol,
		"mutual_info": step.Measurement.MutualInfo,
		"oracle":      step.Measurement.Oracle,
		"matched":     step.Equivalence.Matched,
	}
	if !step.Equivalence.Matched {
		fields["counterexample"] = step.Equivalence.Counterexample
	}
	r.logger.WithFields(fields).Debug("Equivalence check")
}

// OnRunComplete logs the run outcome; overflows are warnings
func (r *LoggerReporter) OnRunComplete(run *RunResult) {
	fields := logrus.Fields{
		"run_id":   run.ID,
		"teacher":  run.TeacherBits,
		"steps":    len(run.Steps),
		"outcome":  run.Outcome.String(),
		"duration": run.Duration,
	}
	if run.Failure != nil {
		r.logger.WithFields(fields).Warn("Learning run failed")
		return
	}
	r.logger.WithFields(fields).Debug("Learning run matched")
}
