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

	"github.com/spf13/cobra"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/awsclient"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/rule"
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage the scheduled trigger rule",
	Long:  "Pause or resume the deployed scheduler without touching stored configurations by toggling its scheduled trigger rule.",
}

var ruleEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable the scheduled trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRule(func(ctx context.Context, c *rule.Client) error {
			return c.Enable(ctx)
		})
	},
}

var ruleDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable the scheduled trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRule(func(ctx context.Context, c *rule.Client) error {
			return c.Disable(ctx)
		})
	},
}

var ruleStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the trigger's state and schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRule(func(ctx context.Context, c *rule.Client) error {
			status, err := c.State(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		})
	},
}

func init() {
	ruleCmd.AddCommand(ruleEnableCmd, ruleDisableCmd, ruleStatusCmd)
	rootCmd.AddCommand(ruleCmd)
}

func withRule(fn func(context.Context, *rule.Client) error) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx := context.Background()
	awsCfg, err := awsclient.Load(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	return fn(ctx, rule.NewClient(awsCfg, cfg.RuleName, logger))
}
