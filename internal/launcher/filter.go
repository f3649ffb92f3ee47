/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package launcher

import (
	"sort"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// matchEnabled keeps configs with the enabled flag set.
func matchEnabled(configs []models.LaunchConfig) []models.LaunchConfig {
	var out []models.LaunchConfig
	for _, cfg := range configs {
		if cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}

// matchWeekday keeps configs that apply on the given day.
func matchWeekday(configs []models.LaunchConfig, day models.Weekday) []models.LaunchConfig {
	var out []models.LaunchConfig
	for _, cfg := range configs {
		if cfg.AppliesOn(day) {
			out = append(out, cfg)
		}
	}
	return out
}

// studioIDs collects the distinct studios referenced by configs, sorted for
// deterministic iteration.
func studioIDs(configs []models.LaunchConfig) []string {
	seen := make(map[string]struct{})
	for _, cfg := range configs {
		seen[cfg.StudioID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// excludeConfigs drops configs whose user already has an active session or
// whose studio could not be checked.
func excludeConfigs(configs []models.LaunchConfig, activeUsers, unverifiedStudios map[string]struct{}) []models.LaunchConfig {
	var out []models.LaunchConfig
	for _, cfg := range configs {
		if _, ok := activeUsers[cfg.UserID]; ok {
			continue
		}
		if _, ok := unverifiedStudios[cfg.StudioID]; ok {
			continue
		}
		out = append(out, cfg)
	}
	return out
}
