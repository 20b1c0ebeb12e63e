/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learn.go
Description: Learn command. Runs the learner against one fixed teacher, writes its
analysis trace and prints the run statistics.
*/

package commands

import (
	"context"
	"fmt"

	"github.com/kleascm/lstar-probe/pkg/config"
	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/kleascm/lstar-probe/pkg/report"
	"github.com/spf13/cobra"
)

// learnResult is the JSON document of a learn session
type learnResult struct {
	SessionID string             `json:"session_id"`
	Config    config.Config      `json:"config"`
	Run       *learner.RunResult `json:"run"`
	Summary   metrics.Summary    `json:"summary"`
}

// RunLearn learns the configured teacher
func RunLearn(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Enumerate = false
	return learn(cmd.Context(), cmd, cfg)
}

func learn(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	printHeader(out, "Learning Session")

	s, err := newSession(cfg, out)
	if err != nil {
		return err
	}
	defer s.Close()

	v, err := cfg.TeacherVector()
	if err != nil {
		return fmt.Errorf("invalid teacher: %w", err)
	}

	run, summary, err := s.driver.RunSingle(ctx, v)
	if err != nil {
		return fmt.Errorf("learning failed: %w", err)
	}

	if err := report.WriteSummary(out, summary); err != nil {
		return err
	}
	s.logger.LogSummary(summary)

	if err := s.writeJSON("learn", learnResult{
		SessionID: s.id,
		Config:    cfg,
		Run:       run,
		Summary:   summary,
	}); err != nil {
		return err
	}
	return s.Close()
}
