/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

var (
	runAt           string
	runInvocationID string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a single scheduler invocation and exit",
	Long: `Run one invocation against the config table, exactly as the scheduled
trigger would, and print the resulting summary as JSON.

Examples:
  # Invoke for the current time
  workscheduler run

  # Replay a specific slot
  workscheduler run --at 2026-03-02T09:00:00Z

  # Pin the invocation id to reproduce idempotency tokens
  workscheduler run --at 2026-03-02T09:00:00Z --invocation-id evt-1
`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runAt, "at", "", "Invocation time in RFC 3339 (default: now, UTC)")
	runCmd.Flags().StringVar(&runInvocationID, "invocation-id", "", "Invocation id (default: a fresh UUID)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	at := time.Now().UTC()
	if runAt != "" {
		parsed, err := time.Parse(time.RFC3339, runAt)
		if err != nil {
			return fmt.Errorf("parse --at: %w", err)
		}
		at = parsed.UTC()
	}

	id := runInvocationID
	if id == "" {
		id = uuid.NewString()
	}

	ctx := context.Background()
	scheduler, err := newScheduler(ctx)
	if err != nil {
		return err
	}

	summary, err := scheduler.RunOnce(ctx, models.Invocation{ID: id, Time: at})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
