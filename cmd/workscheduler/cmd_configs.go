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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/awsclient"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/identity"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/store"
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Manage stored launch configurations",
}

var (
	configsListUser    string
	configsListStudio  string
	configsListEnabled string
	configsListJSON    bool
)

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List launch configurations",
	RunE:  runConfigsList,
}

var (
	configsSetUserID      string
	configsSetUserName    string
	configsSetIDStores    []string
	configsSetStartTime   string
	configsSetDays        string
	configsSetStudioID    string
	configsSetProfile     string
	configsSetImageID     string
	configsSetInstance    string
	configsSetDisabled    bool
	configsSetOverride    bool
)

var configsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update a launch configuration",
	Long: `Store a launch configuration for one user and time slot.

A user may only hold one configuration per weekday; conflicting days on
existing configurations are rejected unless --override is given, in which
case the overlapping days are taken over by the new configuration.

Examples:
  workscheduler configs set --user-id 906724... --start-time 09:00 \
    --days MONDAY,TUESDAY --studio-id stu-1 --launch-profile lp-1 \
    --streaming-image si-1 --instance-type g4dn.xlarge

  # Resolve the principal id from a directory user name
  workscheduler configs set --user-name jdoe --identity-store d-1234 ...
`,
	RunE: runConfigsSet,
}

var (
	configsDeleteID   string
	configsDeleteUser string
)

var configsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a launch configuration by id, or all of a user's",
	RunE:  runConfigsDelete,
}

var (
	configsToggleUsers  []string
	configsToggleStudio string
	configsToggleAll    bool
)

var configsEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable launch configurations without editing their schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigsToggle(true)
	},
}

var configsDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable launch configurations without deleting them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigsToggle(false)
	},
}

var (
	configsApplyFile     string
	configsApplyOverride bool
)

var configsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a YAML file of launch configurations",
	RunE:  runConfigsApply,
}

func init() {
	configsListCmd.Flags().StringVar(&configsListUser, "user-id", "", "Only this user's configurations")
	configsListCmd.Flags().StringVar(&configsListStudio, "studio-id", "", "Only this studio's configurations")
	configsListCmd.Flags().StringVar(&configsListEnabled, "enabled", "", "Filter by enabled state (true|false)")
	configsListCmd.Flags().BoolVar(&configsListJSON, "json", false, "Emit JSON instead of a table")

	configsSetCmd.Flags().StringVar(&configsSetUserID, "user-id", "", "Principal id of the workstation owner")
	configsSetCmd.Flags().StringVar(&configsSetUserName, "user-name", "", "Directory user name to resolve to a principal id")
	configsSetCmd.Flags().StringSliceVar(&configsSetIDStores, "identity-store", nil, "Identity store ids searched by --user-name")
	configsSetCmd.Flags().StringVar(&configsSetStartTime, "start-time", "", "Target launch time as HH:MM UTC, on a 15 minute boundary")
	configsSetCmd.Flags().StringVar(&configsSetDays, "days", "", "Comma separated weekdays, e.g. MONDAY,WEDNESDAY")
	configsSetCmd.Flags().StringVar(&configsSetStudioID, "studio-id", "", "Studio id")
	configsSetCmd.Flags().StringVar(&configsSetProfile, "launch-profile", "", "Launch profile id")
	configsSetCmd.Flags().StringVar(&configsSetImageID, "streaming-image", "", "Streaming image id")
	configsSetCmd.Flags().StringVar(&configsSetInstance, "instance-type", "", "EC2 streaming instance type")
	configsSetCmd.Flags().BoolVar(&configsSetDisabled, "disabled", false, "Store the configuration disabled")
	configsSetCmd.Flags().BoolVar(&configsSetOverride, "override", false, "Take over conflicting days on existing configurations")

	configsDeleteCmd.Flags().StringVar(&configsDeleteID, "id", "", "Configuration id to delete")
	configsDeleteCmd.Flags().StringVar(&configsDeleteUser, "user-id", "", "Principal id whose configurations are deleted")

	for _, c := range []*cobra.Command{configsEnableCmd, configsDisableCmd} {
		c.Flags().StringSliceVar(&configsToggleUsers, "user-id", nil, "Principal ids to toggle")
		c.Flags().StringVar(&configsToggleStudio, "studio-id", "", "Restrict to one studio")
		c.Flags().BoolVar(&configsToggleAll, "all", false, "Toggle every stored configuration")
	}

	configsApplyCmd.Flags().StringVarP(&configsApplyFile, "file", "f", "", "YAML file of configurations (required)")
	configsApplyCmd.Flags().BoolVar(&configsApplyOverride, "override", false, "Take over conflicting days on existing configurations")
	_ = configsApplyCmd.MarkFlagRequired("file")

	configsCmd.AddCommand(configsListCmd, configsSetCmd, configsDeleteCmd, configsEnableCmd, configsDisableCmd, configsApplyCmd)
	rootCmd.AddCommand(configsCmd)
}

// newManager wires the config manager against the live table.
func newManager(ctx context.Context) (*store.Manager, error) {
	awsCfg, err := awsclient.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return store.NewManager(store.NewDynamo(awsCfg, cfg.ConfigTableName), logger), nil
}

func runConfigsList(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx := context.Background()
	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	filter := store.ListFilter{UserID: configsListUser, StudioID: configsListStudio}
	switch strings.ToLower(configsListEnabled) {
	case "":
	case "true":
		v := true
		filter.Enabled = &v
	case "false":
		v := false
		filter.Enabled = &v
	default:
		return fmt.Errorf("--enabled must be true or false, got %q", configsListEnabled)
	}

	configs, err := manager.List(ctx, filter)
	if err != nil {
		return err
	}

	if configsListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(configs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tSTART\tSTUDIO\tINSTANCE\tENABLED\tDAYS")
	for _, c := range configs {
		days := make([]string, len(c.Days))
		for i, d := range c.Days {
			days[i] = string(d)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			c.ID, c.UserID, c.StartTime, c.StudioID, c.InstanceType, c.Enabled, strings.Join(days, ","))
	}
	return w.Flush()
}

func runConfigsSet(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	if configsSetUserID == "" && configsSetUserName == "" {
		return fmt.Errorf("one of --user-id or --user-name is required")
	}
	if configsSetUserID != "" && configsSetUserName != "" {
		return fmt.Errorf("--user-id and --user-name are mutually exclusive")
	}

	ctx := context.Background()

	userID := configsSetUserID
	if configsSetUserName != "" {
		if len(configsSetIDStores) == 0 {
			return fmt.Errorf("--identity-store is required with --user-name")
		}
		awsCfg, err := awsclient.Load(ctx, cfg)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		userID, err = identity.NewClient(awsCfg, logger).ResolveUserName(ctx, configsSetIDStores, configsSetUserName)
		if err != nil {
			return err
		}
		logger.Info().Str("user_name", configsSetUserName).Str("user_id", userID).Msg("resolved user name")
	}

	startTime, err := store.NormalizeStartTime(configsSetStartTime)
	if err != nil {
		return fmt.Errorf("--start-time: %w", err)
	}
	days, err := models.ParseWeekdays(configsSetDays)
	if err != nil {
		return fmt.Errorf("--days: %w", err)
	}
	if configsSetStudioID == "" || configsSetProfile == "" || configsSetImageID == "" || configsSetInstance == "" {
		return fmt.Errorf("--studio-id, --launch-profile, --streaming-image and --instance-type are required")
	}

	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	saved, err := manager.Apply(ctx, models.LaunchConfig{
		UserID:           userID,
		StartTime:        startTime,
		StudioID:         configsSetStudioID,
		LaunchProfile:    configsSetProfile,
		StreamingImageID: configsSetImageID,
		InstanceType:     configsSetInstance,
		Enabled:          !configsSetDisabled,
		Days:             days,
	}, configsSetOverride)
	if err != nil {
		return err
	}

	fmt.Printf("stored configuration %s for %s at %s\n", saved.ID, saved.UserID, saved.StartTime)
	return nil
}

func runConfigsDelete(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if (configsDeleteID == "") == (configsDeleteUser == "") {
		return fmt.Errorf("exactly one of --id or --user-id is required")
	}

	ctx := context.Background()
	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	if configsDeleteID != "" {
		if err := manager.Delete(ctx, configsDeleteID); err != nil {
			return err
		}
		fmt.Printf("deleted configuration %s\n", configsDeleteID)
		return nil
	}

	deleted, err := manager.DeleteByUser(ctx, configsDeleteUser)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d configuration(s)\n", deleted)
	return nil
}

func runConfigsToggle(enabled bool) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx := context.Background()
	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	updated, err := manager.Toggle(ctx, configsToggleUsers, configsToggleStudio, configsToggleAll, enabled)
	if err != nil {
		return err
	}
	fmt.Printf("updated %d configuration(s)\n", updated)
	return nil
}

func runConfigsApply(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	f, err := os.Open(configsApplyFile)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := context.Background()
	manager, err := newManager(ctx)
	if err != nil {
		return err
	}

	applied, err := manager.ApplyFile(ctx, f, configsApplyOverride)
	if err != nil {
		return err
	}
	fmt.Printf("applied %d configuration(s)\n", applied)
	return nil
}
