/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: collector.go
Description: Prometheus instrumentation for learning runs. The collector owns a
dedicated registry, implements the learner Reporter hooks and can dump the registry
in the text exposition format for offline analysis.
*/

package telemetry

import (
	"fmt"

	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lstar"

// Collector records learner events into Prometheus metrics. Safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	Runs            *prometheus.CounterVec
	Steps           prometheus.Counter
	MIDecreases     *prometheus.CounterVec
	FPFNImprovement prometheus.Counter
	StepsPerRun     prometheus.Histogram
	MutualInfo      prometheus.Gauge
}

// NewCollector creates and registers all metrics on a fresh registry
func NewCollector() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Learning runs by outcome (matched, column_overflow, row_overflow)",
		}, []string{"outcome"}),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Equivalence checks performed across all runs",
		}),
		MIDecreases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutual_info_decreases_total",
			Help:      "Steps where mutual information decreased, by the previous oracle sign",
		}, []string{"oracle"}),
		FPFNImprovement: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fp_fn_improvement_steps_total",
			Help:      "Steps where false positives and false negatives both decreased",
		}),
		StepsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "steps_per_run",
			Help:      "Equivalence checks per learning run",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		MutualInfo: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_mutual_info_bits",
			Help:      "Mutual information of the most recent equivalence check",
		}),
	}

	for _, m := range []prometheus.Collector{c.Runs, c.Steps, c.MIDecreases, c.FPFNImprovement, c.StepsPerRun, c.MutualInfo} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return c, nil
}

// Registry returns the registry the metrics live in
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// OnStep records one equivalence check
func (c *Collector) OnStep(run *learner.RunResult, step *learner.Step) {
	m := step.Measurement
	c.Steps.Inc()
	c.MutualInfo.Set(m.MutualInfo)
	if m.MIDecreased {
		if m.PreviousOracleGood {
			c.MIDecreases.WithLabelValues("good").Inc()
		} else {
			c.MIDecreases.WithLabelValues("bad").Inc()
		}
	}
	if m.FPFNImproved {
		c.FPFNImprovement.Inc()
	}
}

// OnRunComplete records the run outcome and its length
func (c *Collector) OnRunComplete(run *learner.RunResult) {
	c.Runs.WithLabelValues(run.Outcome.String()).Inc()
	c.StepsPerRun.Observe(float64(len(run.Steps)))
}

// WriteTextfile dumps the registry to path in the Prometheus text format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
