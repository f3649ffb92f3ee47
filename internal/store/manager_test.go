/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

func testConfig(id, user, startTime string, days ...models.Weekday) models.LaunchConfig {
	return models.LaunchConfig{
		ID:               id,
		UserID:           user,
		StartTime:        startTime,
		StudioID:         "studio-1",
		LaunchProfile:    "lp-1",
		StreamingImageID: "img-1",
		InstanceType:     "g4dn.xlarge",
		Enabled:          true,
		Days:             days,
	}
}

func TestApplyCreatesNewConfig(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())

	cfg := testConfig("", "user-1", "0900", models.Monday, models.Tuesday)
	saved, err := mgr.Apply(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated config id")
	}

	got, err := mem.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StartTime != "0900" || len(got.Days) != 2 {
		t.Fatalf("unexpected stored config: %+v", got)
	}
}

func TestApplyReportsConflictsWithoutOverride(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	existing := testConfig("cfg-1", "user-1", "0700", models.Monday, models.Wednesday)
	existing.LaunchProfile = "lp-other"
	if err := mem.Put(ctx, existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := mgr.Apply(ctx, testConfig("", "user-1", "0900", models.Monday), false)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflictErr.Conflicts) != 1 || len(conflictErr.Conflicts[0].Days) != 1 {
		t.Fatalf("unexpected conflicts: %+v", conflictErr.Conflicts)
	}
	if conflictErr.Conflicts[0].Days[0] != models.Monday {
		t.Fatalf("expected MONDAY overlap, got %v", conflictErr.Conflicts[0].Days)
	}

	// Nothing should have been written.
	all, _ := mem.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 stored config, got %d", len(all))
	}
}

func TestApplyOverrideTrimsOverlappingDays(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	existing := testConfig("cfg-1", "user-1", "0700", models.Monday, models.Wednesday)
	existing.LaunchProfile = "lp-other"
	if err := mem.Put(ctx, existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := mgr.Apply(ctx, testConfig("", "user-1", "0900", models.Monday), true); err != nil {
		t.Fatalf("apply: %v", err)
	}

	kept, err := mem.Get(ctx, "cfg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(kept.Days) != 1 || kept.Days[0] != models.Wednesday {
		t.Fatalf("expected MONDAY trimmed from existing config, got %v", kept.Days)
	}
	if !kept.Enabled {
		t.Fatal("existing config with remaining days should stay enabled")
	}
}

func TestApplyOverrideDisablesFullyOverlappedConfig(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	existing := testConfig("cfg-1", "user-1", "0700", models.Monday)
	existing.LaunchProfile = "lp-other"
	if err := mem.Put(ctx, existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := mgr.Apply(ctx, testConfig("", "user-1", "0900", models.Monday), true); err != nil {
		t.Fatalf("apply: %v", err)
	}

	kept, err := mem.Get(ctx, "cfg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(kept.Days) != 0 {
		t.Fatalf("expected all days trimmed, got %v", kept.Days)
	}
	if kept.Enabled {
		t.Fatal("config left with no days should be disabled")
	}
}

func TestApplyMergesIntoMatchingSlot(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	// Same start time and launch target: the new days fold into this record.
	if err := mem.Put(ctx, testConfig("cfg-1", "user-1", "0900", models.Monday)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	saved, err := mgr.Apply(ctx, testConfig("", "user-1", "0900", models.Tuesday), false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if saved.ID != "cfg-1" {
		t.Fatalf("expected merge into cfg-1, got new id %s", saved.ID)
	}

	got, _ := mem.Get(ctx, "cfg-1")
	if len(got.Days) != 2 {
		t.Fatalf("expected merged day set, got %v", got.Days)
	}

	all, _ := mem.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected a single stored config after merge, got %d", len(all))
	}
}

func TestToggleScopesToUsersAndStudio(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	a := testConfig("cfg-a", "user-a", "0900", models.Monday)
	b := testConfig("cfg-b", "user-b", "0915", models.Monday)
	c := testConfig("cfg-c", "user-a", "0930", models.Tuesday)
	c.StudioID = "studio-2"
	for _, cfg := range []models.LaunchConfig{a, b, c} {
		if err := mem.Put(ctx, cfg); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	updated, err := mgr.Toggle(ctx, []string{"user-a"}, "studio-1", false, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 update, got %d", updated)
	}

	got, _ := mem.Get(ctx, "cfg-a")
	if got.Enabled {
		t.Fatal("cfg-a should be disabled")
	}
	for _, id := range []string{"cfg-b", "cfg-c"} {
		got, _ := mem.Get(ctx, id)
		if !got.Enabled {
			t.Fatalf("%s should remain enabled", id)
		}
	}
}

func TestToggleAllIsIdempotent(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	cfg := testConfig("cfg-a", "user-a", "0900", models.Monday)
	cfg.Enabled = false
	if err := mem.Put(ctx, cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := mgr.Toggle(ctx, nil, "", true, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected no updates for already-disabled config, got %d", updated)
	}
}

func TestToggleRequiresUsersOrAll(t *testing.T) {
	mgr := NewManager(NewMemory(), zerolog.Nop())
	if _, err := mgr.Toggle(context.Background(), nil, "", false, true); err == nil {
		t.Fatal("expected error when neither users nor all given")
	}
}

func TestListFiltersInMemory(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	enabled := testConfig("cfg-a", "user-a", "0900", models.Monday)
	disabled := testConfig("cfg-b", "user-a", "0915", models.Monday)
	disabled.Enabled = false
	other := testConfig("cfg-c", "user-b", "0930", models.Tuesday)
	for _, cfg := range []models.LaunchConfig{enabled, disabled, other} {
		if err := mem.Put(ctx, cfg); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	wantEnabled := true
	got, err := mgr.List(ctx, ListFilter{UserID: "user-a", Enabled: &wantEnabled})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "cfg-a" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestDeleteByUser(t *testing.T) {
	mem := NewMemory()
	mgr := NewManager(mem, zerolog.Nop())
	ctx := context.Background()

	for _, cfg := range []models.LaunchConfig{
		testConfig("cfg-a", "user-a", "0900", models.Monday),
		testConfig("cfg-b", "user-a", "0915", models.Tuesday),
		testConfig("cfg-c", "user-b", "0930", models.Friday),
	} {
		if err := mem.Put(ctx, cfg); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	deleted, err := mgr.DeleteByUser(ctx, "user-a")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deletions, got %d", deleted)
	}
	all, _ := mem.List(ctx)
	if len(all) != 1 || all[0].ID != "cfg-c" {
		t.Fatalf("unexpected remaining configs: %+v", all)
	}
}
