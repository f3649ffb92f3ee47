/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// Manager implements the write-path operations of the management tooling on
// top of a Store: upserts with overlap handling, enable/disable toggles, and
// filtered listings.
type Manager struct {
	store  Store
	logger zerolog.Logger
}

// NewManager constructs a Manager.
func NewManager(s Store, logger zerolog.Logger) *Manager {
	return &Manager{store: s, logger: logger}
}

// Conflict names an existing config whose day set overlaps a pending upsert.
type Conflict struct {
	Config models.LaunchConfig
	Days   []models.Weekday
}

// ConflictError reports overlapping configs that the caller declined to
// override.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("existing config overlaps the requested days:")
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, " [start_time=%s launch_profile=%s days=%v]", c.Config.StartTime, c.Config.LaunchProfile, c.Days)
	}
	return b.String()
}

// Apply upserts a config for a user. A user may hold at most one config per
// weekday: existing configs sharing a day with cfg are conflicts. Without
// override the apply fails and reports them; with override the overlapping
// days are trimmed from the existing records (records left with no days are
// disabled). When an existing record matches cfg's start time and launch
// target exactly, cfg is merged into it instead of creating a new record.
func (m *Manager) Apply(ctx context.Context, cfg models.LaunchConfig, override bool) (models.LaunchConfig, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	existing, err := m.store.ListByUser(ctx, cfg.UserID)
	if err != nil {
		return models.LaunchConfig{}, fmt.Errorf("list configs for user %s: %w", cfg.UserID, err)
	}

	conflicts := findConflicts(existing, cfg)
	if len(conflicts) > 0 && !override {
		return models.LaunchConfig{}, &ConflictError{Conflicts: conflicts}
	}

	trimmed := make(map[string]models.LaunchConfig, len(conflicts))
	for _, c := range conflicts {
		kept := c.Config
		kept.Days = subtractDays(kept.Days, cfg.Days)
		if len(kept.Days) == 0 {
			kept.Enabled = false
		}
		trimmed[kept.ID] = kept
	}

	// Fold into an existing record when the slot and launch target match.
	for _, ex := range existing {
		if ex.ID == cfg.ID {
			continue
		}
		if current, ok := trimmed[ex.ID]; ok {
			ex = current
		}
		if ex.StartTime == cfg.StartTime &&
			ex.StudioID == cfg.StudioID &&
			ex.LaunchProfile == cfg.LaunchProfile &&
			ex.StreamingImageID == cfg.StreamingImageID &&
			ex.InstanceType == cfg.InstanceType {
			cfg.ID = ex.ID
			cfg.Days = unionDays(cfg.Days, ex.Days)
			delete(trimmed, ex.ID)
			break
		}
	}

	for _, kept := range trimmed {
		if err := m.store.Put(ctx, kept); err != nil {
			return models.LaunchConfig{}, fmt.Errorf("trim overlapping config %s: %w", kept.ID, err)
		}
		m.logger.Info().
			Str("config_id", kept.ID).
			Str("user_id", kept.UserID).
			Bool("enabled", kept.Enabled).
			Msg("trimmed overlapping days from existing config")
	}

	if err := m.store.Put(ctx, cfg); err != nil {
		return models.LaunchConfig{}, fmt.Errorf("put config %s: %w", cfg.ID, err)
	}
	return cfg, nil
}

func findConflicts(existing []models.LaunchConfig, cfg models.LaunchConfig) []Conflict {
	var conflicts []Conflict
	for _, ex := range existing {
		if ex.ID == cfg.ID {
			continue
		}
		var overlap []models.Weekday
		for _, day := range ex.Days {
			if cfg.AppliesOn(day) {
				overlap = append(overlap, day)
			}
		}
		if len(overlap) > 0 {
			conflicts = append(conflicts, Conflict{Config: ex, Days: overlap})
		}
	}
	return conflicts
}

func subtractDays(days, remove []models.Weekday) []models.Weekday {
	var out []models.Weekday
	for _, d := range days {
		removed := false
		for _, r := range remove {
			if d == r {
				removed = true
				break
			}
		}
		if !removed {
			out = append(out, d)
		}
	}
	return out
}

func unionDays(days, extra []models.Weekday) []models.Weekday {
	out := append([]models.Weekday(nil), days...)
	for _, e := range extra {
		present := false
		for _, d := range out {
			if d == e {
				present = true
				break
			}
		}
		if !present {
			out = append(out, e)
		}
	}
	return out
}

// Toggle sets the enabled flag on configs for the given users, optionally
// scoped to one studio. With all set, every user's configs are touched.
// Returns the number of records updated.
func (m *Manager) Toggle(ctx context.Context, userIDs []string, studioID string, all bool, enabled bool) (int, error) {
	if !all && len(userIDs) == 0 {
		return 0, fmt.Errorf("no users given and all not set")
	}

	configs, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list configs: %w", err)
	}

	users := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		users[id] = struct{}{}
	}

	updated := 0
	for _, cfg := range configs {
		if studioID != "" && cfg.StudioID != studioID {
			continue
		}
		if !all {
			if _, ok := users[cfg.UserID]; !ok {
				continue
			}
		}
		if cfg.Enabled == enabled {
			continue
		}
		cfg.Enabled = enabled
		if err := m.store.Put(ctx, cfg); err != nil {
			return updated, fmt.Errorf("toggle config %s: %w", cfg.ID, err)
		}
		m.logger.Info().
			Str("user_id", cfg.UserID).
			Str("start_time", cfg.StartTime).
			Bool("enabled", enabled).
			Msg("updated auto launch config")
		updated++
	}
	return updated, nil
}

// ListFilter narrows a listing. Filters apply in memory after a single
// unconditional fetch.
type ListFilter struct {
	UserID   string
	StudioID string
	Enabled  *bool
}

// List returns configs matching the filter.
func (m *Manager) List(ctx context.Context, f ListFilter) ([]models.LaunchConfig, error) {
	var (
		configs []models.LaunchConfig
		err     error
	)
	if f.UserID != "" {
		configs, err = m.store.ListByUser(ctx, f.UserID)
	} else {
		configs, err = m.store.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}

	var out []models.LaunchConfig
	for _, cfg := range configs {
		if f.StudioID != "" && cfg.StudioID != f.StudioID {
			continue
		}
		if f.Enabled != nil && cfg.Enabled != *f.Enabled {
			continue
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Delete removes a single record by id.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete config %s: %w", id, err)
	}
	return nil
}

// DeleteByUser removes every record belonging to a user. Returns the number
// of records deleted.
func (m *Manager) DeleteByUser(ctx context.Context, userID string) (int, error) {
	configs, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list configs for user %s: %w", userID, err)
	}
	deleted := 0
	for _, cfg := range configs {
		if err := m.store.Delete(ctx, cfg.ID); err != nil {
			return deleted, fmt.Errorf("delete config %s: %w", cfg.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
