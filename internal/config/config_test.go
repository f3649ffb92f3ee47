/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ConfigTableName != "nimble_studio_auto_workstation_scheduler_config" {
		t.Fatalf("unexpected default table name: %q", cfg.ConfigTableName)
	}
	if cfg.SessionLookupFailure != SessionLookupAbort {
		t.Fatalf("unexpected default session lookup failure mode: %q", cfg.SessionLookupFailure)
	}
}

func TestLoadReadsCriticalEnvKeys(t *testing.T) {
	t.Setenv("SCHEDULER_TABLE_NAME", "scheduler_test_table")
	t.Setenv("SCHEDULER_AWS_REGION", "eu-west-1")
	t.Setenv("SCHEDULER_SESSION_LOOKUP_FAILURE_MODE", "skip-studio")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ConfigTableName != "scheduler_test_table" {
		t.Fatalf("unexpected table name: %q", cfg.ConfigTableName)
	}
	if cfg.AWSRegion != "eu-west-1" {
		t.Fatalf("unexpected region: %q", cfg.AWSRegion)
	}
	if cfg.SessionLookupFailure != SessionLookupSkipStudio {
		t.Fatalf("unexpected session lookup failure mode: %q", cfg.SessionLookupFailure)
	}
}

func TestLoadHonorsLegacyEnvKeys(t *testing.T) {
	t.Setenv("TABLE_NAME", "legacy_table")
	t.Setenv("AWS_REGION", "ap-southeast-2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ConfigTableName != "legacy_table" {
		t.Fatalf("unexpected table name: %q", cfg.ConfigTableName)
	}
	if cfg.AWSRegion != "ap-southeast-2" {
		t.Fatalf("unexpected region: %q", cfg.AWSRegion)
	}
}

func TestLoadRejectsUnknownFailureMode(t *testing.T) {
	t.Setenv("SCHEDULER_SESSION_LOOKUP_FAILURE_MODE", "ignore")

	if _, err := Load(); err == nil {
		t.Fatal("expected config load to fail for unknown session lookup failure mode")
	}
}
