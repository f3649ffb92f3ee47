/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package launcher holds the scheduler core: it turns an invocation
// timestamp into a launch slot, narrows the stored configs down to the ones
// that should fire, and issues one idempotent launch call per survivor.
package launcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/clock"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/config"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/sessions"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/telemetry"
)

// Tags attached to every automated launch so sessions are attributable in
// the console.
const (
	TagAutomatedLaunch  = "NimbleStudioAutoWorkstationSchedulerLaunched"
	TagOwner            = "WorkstationOwnedBy"
	TagTargetLaunchTime = "WorkstationTargetLaunchTimeUTC"
)

// ConfigSource is the slice of the store the launch path needs.
type ConfigSource interface {
	ListByStartTime(ctx context.Context, startTime string) ([]models.LaunchConfig, error)
}

// Service drives one invocation end to end.
type Service struct {
	configs     ConfigSource
	sessions    sessions.Service
	failureMode config.SessionLookupFailureMode
	logger      zerolog.Logger
}

// New constructs the launch service.
func New(configs ConfigSource, svc sessions.Service, failureMode config.SessionLookupFailureMode, logger zerolog.Logger) *Service {
	if failureMode == "" {
		failureMode = config.SessionLookupAbort
	}
	return &Service{
		configs:     configs,
		sessions:    svc,
		failureMode: failureMode,
		logger:      logger,
	}
}

// Summary is the human-readable result of one invocation.
type Summary struct {
	InvocationID string                 `json:"invocation_id"`
	StartTime    string                 `json:"start_time"`
	Weekday      models.Weekday         `json:"weekday"`
	Date         string                 `json:"date"`
	Matched      int                    `json:"matched"`
	Eligible     int                    `json:"eligible"`
	Launched     int                    `json:"launched"`
	Failed       int                    `json:"failed"`
	Outcomes     []models.LaunchOutcome `json:"-"`
}

// RunOnce executes a single invocation. Storage and session lookup failures
// abort the invocation (subject to the configured failure mode); individual
// launch failures do not.
func (s *Service) RunOnce(ctx context.Context, inv models.Invocation) (*Summary, error) {
	telemetry.InvocationsTotal.Inc()

	ctx, span := telemetry.Tracer().Start(ctx, "scheduler.invocation",
		trace.WithAttributes(attribute.String("invocation.id", inv.ID)))
	defer span.End()

	bucket := clock.At(inv.Time)
	summary := &Summary{
		InvocationID: inv.ID,
		StartTime:    bucket.StartTime(),
		Weekday:      bucket.Weekday,
		Date:         bucket.Date,
	}

	logger := s.logger.With().
		Str("invocation_id", inv.ID).
		Str("start_time", bucket.StartTime()).
		Str("weekday", string(bucket.Weekday)).
		Logger()

	logger.Info().Str("date", bucket.Date).Msg("discovering workstation sessions to launch")

	configs, err := s.configs.ListByStartTime(ctx, bucket.StartTime())
	if err != nil {
		telemetry.InvocationErrorsTotal.WithLabelValues("config_scan").Inc()
		return nil, fmt.Errorf("scan launch configs for %s: %w", bucket.StartTime(), err)
	}
	summary.Matched = len(configs)

	configs = matchEnabled(configs)
	configs = matchWeekday(configs, bucket.Weekday)

	if len(configs) == 0 {
		// Nothing survived the cheap filters; the session service is not
		// consulted at all in this case.
		telemetry.EligibleConfigs.Set(0)
		logger.Info().Int("matched", summary.Matched).Msg("no workstations to launch at this time")
		return summary, nil
	}

	activeUsers, unverified, err := s.activeUsers(ctx, logger, studioIDs(configs))
	if err != nil {
		telemetry.InvocationErrorsTotal.WithLabelValues("session_lookup").Inc()
		return nil, err
	}

	eligible := excludeConfigs(configs, activeUsers, unverified)
	summary.Eligible = len(eligible)
	telemetry.EligibleConfigs.Set(float64(len(eligible)))

	for _, cfg := range eligible {
		if ctx.Err() != nil {
			break
		}
		outcome := s.launch(ctx, inv, bucket.StartTime(), cfg)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Launched() {
			summary.Launched++
		} else {
			summary.Failed++
		}
	}

	logger.Info().
		Int("matched", summary.Matched).
		Int("eligible", summary.Eligible).
		Int("launched", summary.Launched).
		Int("failed", summary.Failed).
		Msg("invocation complete")

	return summary, nil
}

// activeUsers queries the session service once per distinct studio and
// returns the users holding an active session. Studios whose listing failed
// are returned separately in skip-studio mode; in abort mode the first
// failure ends the invocation.
func (s *Service) activeUsers(ctx context.Context, logger zerolog.Logger, studios []string) (map[string]struct{}, map[string]struct{}, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "scheduler.active_sessions",
		trace.WithAttributes(attribute.Int("studios", len(studios))))
	defer span.End()

	active := make(map[string]struct{})
	unverified := make(map[string]struct{})

	for _, studioID := range studios {
		sessions, err := s.sessions.ListSessions(ctx, studioID)
		if err != nil {
			telemetry.SessionLookupErrorsTotal.Inc()
			if s.failureMode == config.SessionLookupSkipStudio {
				// The studio cannot be verified; its configs are dropped for
				// this invocation rather than launched blind.
				logger.Warn().Err(err).Str("studio_id", studioID).
					Msg("session listing failed, skipping studio this invocation")
				unverified[studioID] = struct{}{}
				continue
			}
			return nil, nil, fmt.Errorf("list active sessions for studio %s: %w", studioID, err)
		}
		for _, session := range sessions {
			if session.State.Active() {
				active[session.UserID] = struct{}{}
			}
		}
	}
	return active, unverified, nil
}

// launch issues one launch call. Failures are captured in the outcome and
// never abort the remaining configs.
func (s *Service) launch(ctx context.Context, inv models.Invocation, startTime string, cfg models.LaunchConfig) models.LaunchOutcome {
	ctx, span := telemetry.Tracer().Start(ctx, "scheduler.launch",
		trace.WithAttributes(
			attribute.String("config.id", cfg.ID),
			attribute.String("studio.id", cfg.StudioID),
		))
	defer span.End()

	outcome := models.LaunchOutcome{
		ConfigID: cfg.ID,
		UserID:   cfg.UserID,
		StudioID: cfg.StudioID,
	}

	req := models.LaunchRequest{
		ClientToken:      ClientToken(inv.ID, startTime, cfg.UserID),
		UserID:           cfg.UserID,
		StudioID:         cfg.StudioID,
		LaunchProfile:    cfg.LaunchProfile,
		StreamingImageID: cfg.StreamingImageID,
		InstanceType:     cfg.InstanceType,
		Tags: map[string]string{
			TagAutomatedLaunch:  "true",
			TagOwner:            cfg.UserID,
			TagTargetLaunchTime: startTime,
		},
	}

	sessionID, err := s.sessions.CreateSession(ctx, req)
	if err != nil {
		telemetry.LaunchesTotal.WithLabelValues("failed").Inc()
		span.RecordError(err)
		s.logger.Error().Err(err).
			Str("config_id", cfg.ID).
			Str("user_id", cfg.UserID).
			Str("studio_id", cfg.StudioID).
			Msg("error launching session")
		outcome.Err = err
		return outcome
	}

	telemetry.LaunchesTotal.WithLabelValues("launched").Inc()
	s.logger.Info().
		Str("user_id", cfg.UserID).
		Str("session_id", sessionID).
		Msg("launched session")
	outcome.SessionID = sessionID
	return outcome
}
