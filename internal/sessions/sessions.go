/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package sessions binds the scheduler to the streaming session service. The
// launch path consumes it through the Service interface so tests can swap in
// fakes.
package sessions

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/nimble"
	"github.com/aws/aws-sdk-go-v2/service/nimble/types"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// Service lists a studio's streaming sessions and launches new ones.
type Service interface {
	// ListSessions returns every session of the studio, across all pages,
	// in whatever lifecycle state the service reports.
	ListSessions(ctx context.Context, studioID string) ([]models.ActiveSession, error)
	// CreateSession starts one workstation session and returns its id. The
	// request's client token lets the service deduplicate repeated calls.
	CreateSession(ctx context.Context, req models.LaunchRequest) (string, error)
}

// Client is the Nimble Studio backed Service.
type Client struct {
	api *nimble.Client
}

// NewClient constructs a Client from shared AWS configuration.
func NewClient(awsCfg aws.Config) *Client {
	return &Client{api: nimble.NewFromConfig(awsCfg)}
}

// ListSessions drains the paginated session listing for one studio.
func (c *Client) ListSessions(ctx context.Context, studioID string) ([]models.ActiveSession, error) {
	var sessions []models.ActiveSession
	paginator := nimble.NewListStreamingSessionsPaginator(c.api, &nimble.ListStreamingSessionsInput{
		StudioId: aws.String(studioID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list streaming sessions for studio %s: %w", studioID, err)
		}
		for _, s := range page.Sessions {
			sessions = append(sessions, models.ActiveSession{
				UserID: aws.ToString(s.OwnedBy),
				State:  models.SessionState(s.State),
			})
		}
	}
	return sessions, nil
}

// CreateSession issues one launch call.
func (c *Client) CreateSession(ctx context.Context, req models.LaunchRequest) (string, error) {
	out, err := c.api.CreateStreamingSession(ctx, &nimble.CreateStreamingSessionInput{
		StudioId:         aws.String(req.StudioID),
		ClientToken:      aws.String(req.ClientToken),
		Ec2InstanceType:  types.StreamingInstanceType(req.InstanceType),
		LaunchProfileId:  aws.String(req.LaunchProfile),
		OwnedBy:          aws.String(req.UserID),
		StreamingImageId: aws.String(req.StreamingImageID),
		Tags:             req.Tags,
	})
	if err != nil {
		return "", fmt.Errorf("create streaming session for user %s: %w", req.UserID, err)
	}
	if out.Session == nil || out.Session.SessionId == nil {
		return "", fmt.Errorf("create streaming session for user %s: response carries no session id", req.UserID)
	}
	return aws.ToString(out.Session.SessionId), nil
}
