/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package models holds the record and value types shared across the
// scheduler: stored launch configurations, session projections, and the
// per-invocation request/outcome shapes.
package models

import "time"

// LaunchConfig is a stored auto-launch configuration record for one user at
// one start time. Records are read-only on the launch path; they are written
// only by the management tooling.
type LaunchConfig struct {
	ID               string
	UserID           string
	StartTime        string // canonical HHMM, 15-minute aligned
	StudioID         string
	LaunchProfile    string
	StreamingImageID string
	InstanceType     string
	Enabled          bool
	Days             []Weekday
}

// AppliesOn reports whether the config is set to fire on the given weekday.
func (c LaunchConfig) AppliesOn(day Weekday) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Invocation is the ephemeral context of a single scheduler firing.
type Invocation struct {
	// ID seeds the idempotency tokens for this firing. Retried deliveries of
	// the same scheduled event carry the same ID and therefore produce the
	// same tokens.
	ID   string
	Time time.Time
}

// SessionState is the lifecycle state reported by the session service.
type SessionState string

const (
	SessionStateCreateInProgress SessionState = "CREATE_IN_PROGRESS"
	SessionStateReady            SessionState = "READY"
)

// Active reports whether a session in this state should suppress a new
// launch for its owner.
func (s SessionState) Active() bool {
	return s == SessionStateCreateInProgress || s == SessionStateReady
}

// ActiveSession is a read-only projection of a streaming session owned by
// the session service.
type ActiveSession struct {
	UserID string
	State  SessionState
}

// LaunchRequest carries everything the session service needs to start one
// workstation. It is derived per eligible config and never persisted.
type LaunchRequest struct {
	ClientToken      string
	UserID           string
	StudioID         string
	LaunchProfile    string
	StreamingImageID string
	InstanceType     string
	Tags             map[string]string
}

// LaunchOutcome is the per-config result of one invocation.
type LaunchOutcome struct {
	ConfigID  string
	UserID    string
	StudioID  string
	SessionID string
	Err       error
}

// Launched reports whether the launch call succeeded.
func (o LaunchOutcome) Launched() bool {
	return o.Err == nil
}
