/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// configDocument is the YAML shape consumed by bulk apply.
type configDocument struct {
	Configs []configEntry `yaml:"configs"`
}

type configEntry struct {
	ID               string   `yaml:"id"`
	UserID           string   `yaml:"user_id"`
	StartTime        string   `yaml:"start_time"` // HH:MM
	StudioID         string   `yaml:"studio_id"`
	LaunchProfile    string   `yaml:"launch_profile"`
	StreamingImageID string   `yaml:"streaming_image_id"`
	InstanceType     string   `yaml:"instance_type"`
	Enabled          *bool    `yaml:"enabled"`
	Days             []string `yaml:"days"`
}

// ApplyFile bulk-upserts configs from a YAML document. Entries are validated
// and applied in order; the first failure stops processing and reports how
// many entries landed.
func (m *Manager) ApplyFile(ctx context.Context, r io.Reader, override bool) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read config document: %w", err)
	}

	var doc configDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse config document: %w", err)
	}
	if len(doc.Configs) == 0 {
		return 0, fmt.Errorf("config document holds no configs")
	}

	applied := 0
	for i, entry := range doc.Configs {
		cfg, err := entry.model()
		if err != nil {
			return applied, fmt.Errorf("config %d: %w", i, err)
		}
		if _, err := m.Apply(ctx, cfg, override); err != nil {
			return applied, fmt.Errorf("config %d (user %s): %w", i, cfg.UserID, err)
		}
		applied++
	}
	return applied, nil
}

func (e configEntry) model() (models.LaunchConfig, error) {
	if e.UserID == "" {
		return models.LaunchConfig{}, fmt.Errorf("user_id is required")
	}
	if e.StudioID == "" || e.LaunchProfile == "" || e.StreamingImageID == "" || e.InstanceType == "" {
		return models.LaunchConfig{}, fmt.Errorf("studio_id, launch_profile, streaming_image_id and instance_type are required")
	}

	startTime, err := NormalizeStartTime(e.StartTime)
	if err != nil {
		return models.LaunchConfig{}, err
	}

	var days []models.Weekday
	for _, d := range e.Days {
		day, err := models.ParseWeekday(d)
		if err != nil {
			return models.LaunchConfig{}, err
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return models.LaunchConfig{}, fmt.Errorf("days is required")
	}

	enabled := true
	if e.Enabled != nil {
		enabled = *e.Enabled
	}

	return models.LaunchConfig{
		ID:               e.ID,
		UserID:           e.UserID,
		StartTime:        startTime,
		StudioID:         e.StudioID,
		LaunchProfile:    e.LaunchProfile,
		StreamingImageID: e.StreamingImageID,
		InstanceType:     e.InstanceType,
		Enabled:          enabled,
		Days:             days,
	}, nil
}
