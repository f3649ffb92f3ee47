/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"sync"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// Memory is an in-process Store used by tests and dry runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string]models.LaunchConfig
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]models.LaunchConfig)}
}

func copyConfig(cfg models.LaunchConfig) models.LaunchConfig {
	out := cfg
	out.Days = append([]models.Weekday(nil), cfg.Days...)
	return out
}

func (m *Memory) ListByStartTime(_ context.Context, startTime string) ([]models.LaunchConfig, error) {
	return m.filter(func(cfg models.LaunchConfig) bool { return cfg.StartTime == startTime }), nil
}

func (m *Memory) ListByUser(_ context.Context, userID string) ([]models.LaunchConfig, error) {
	return m.filter(func(cfg models.LaunchConfig) bool { return cfg.UserID == userID }), nil
}

func (m *Memory) List(context.Context) ([]models.LaunchConfig, error) {
	return m.filter(func(models.LaunchConfig) bool { return true }), nil
}

func (m *Memory) filter(keep func(models.LaunchConfig) bool) []models.LaunchConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.LaunchConfig
	for _, cfg := range m.records {
		if keep(cfg) {
			out = append(out, copyConfig(cfg))
		}
	}
	return out
}

func (m *Memory) Get(_ context.Context, id string) (models.LaunchConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.records[id]
	if !ok {
		return models.LaunchConfig{}, ErrNotFound
	}
	return copyConfig(cfg), nil
}

func (m *Memory) Put(_ context.Context, cfg models.LaunchConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[cfg.ID] = copyConfig(cfg)
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}
