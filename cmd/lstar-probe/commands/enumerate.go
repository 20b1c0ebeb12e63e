/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: enumerate.go
Description: Enumerate command. Learns every teacher of length max-length+1 and
prints the aggregate statistics. Interrupts cancel the enumeration.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kleascm/lstar-probe/pkg/config"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/kleascm/lstar-probe/pkg/report"
	"github.com/spf13/cobra"
)

// enumerateResult is the JSON document of an enumeration session
type enumerateResult struct {
	SessionID string          `json:"session_id"`
	Config    config.Config   `json:"config"`
	Summary   metrics.Summary `json:"summary"`
	Duration  time.Duration   `json:"duration"`
}

// RunEnumerate learns every teacher
func RunEnumerate(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Enumerate = true
	return enumerateAll(cmd.Context(), cmd, cfg)
}

func enumerateAll(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	printHeader(out, "Enumeration Session")

	// The trace of every run only goes to a file
	s, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	start := time.Now()
	summary, err := s.driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("enumeration failed: %w", err)
	}

	if err := report.WriteSummary(out, summary); err != nil {
		return err
	}
	s.logger.LogSummary(summary)

	if err := s.writeJSON("enumerate", enumerateResult{
		SessionID: s.id,
		Config:    cfg,
		Summary:   summary,
		Duration:  time.Since(start),
	}); err != nil {
		return err
	}
	return s.Close()
}
