/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package store persists launch configuration records. The launch path only
// ever scans by start time; the remaining operations exist for the
// management tooling.
package store

import (
	"context"
	"errors"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("launch config not found")

// Store is a queryable collection of launch configuration records.
type Store interface {
	// ListByStartTime returns every record whose start time equals the
	// given HHMM bucket, in no particular order.
	ListByStartTime(ctx context.Context, startTime string) ([]models.LaunchConfig, error)
	ListByUser(ctx context.Context, userID string) ([]models.LaunchConfig, error)
	List(ctx context.Context) ([]models.LaunchConfig, error)
	Get(ctx context.Context, id string) (models.LaunchConfig, error)
	Put(ctx context.Context, cfg models.LaunchConfig) error
	Delete(ctx context.Context, id string) error
}
