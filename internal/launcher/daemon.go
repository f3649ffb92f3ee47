/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package launcher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/clock"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// Run executes one invocation per quarter-hour grid line until the context
// is cancelled. Deployments that cannot use a managed scheduled trigger run
// this loop instead; each tick gets a fresh invocation id.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info().Msg("scheduler loop started")
	for {
		next := clock.NextGridTime(time.Now().UTC())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("scheduler loop stopped")
			return ctx.Err()
		case <-timer.C:
			inv := models.Invocation{ID: uuid.NewString(), Time: next}
			if _, err := s.RunOnce(ctx, inv); err != nil {
				s.logger.Error().Err(err).Str("invocation_id", inv.ID).Msg("invocation failed")
			}
		}
	}
}
