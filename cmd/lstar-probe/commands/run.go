/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: run.go
Description: Run command. Learns the configured teacher or enumerates every teacher
depending on the enumerate setting.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RunConfigured dispatches on cfg.Enumerate
func RunConfigured(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Enumerate {
		return enumerateAll(cmd.Context(), cmd, cfg)
	}
	return learn(cmd.Context(), cmd, cfg)
}
