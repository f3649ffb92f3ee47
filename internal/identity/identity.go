/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package identity resolves studio user names to identity store principal
// ids for the management tooling.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	"github.com/aws/aws-sdk-go-v2/service/identitystore/types"
	"github.com/rs/zerolog"
)

// ErrUserNotFound is returned when no identity store knows the user name.
var ErrUserNotFound = errors.New("user name not found in any identity store")

// Client wraps the identity store directory.
type Client struct {
	api    *identitystore.Client
	logger zerolog.Logger
}

// NewClient constructs a Client from shared AWS configuration.
func NewClient(awsCfg aws.Config, logger zerolog.Logger) *Client {
	return &Client{
		api:    identitystore.NewFromConfig(awsCfg),
		logger: logger,
	}
}

// ResolveUserName searches the given identity stores for an exact user name
// match and returns its principal id. Stores that fail to answer are logged
// and skipped; the lookup only fails when no store yields a match.
func (c *Client) ResolveUserName(ctx context.Context, storeIDs []string, userName string) (string, error) {
	for _, storeID := range storeIDs {
		userID, err := c.lookup(ctx, storeID, userName)
		if err != nil {
			c.logger.Warn().Err(err).Str("identity_store_id", storeID).Msg("identity store lookup failed")
			continue
		}
		if userID != "" {
			return userID, nil
		}
	}
	return "", fmt.Errorf("resolve %q: %w", userName, ErrUserNotFound)
}

func (c *Client) lookup(ctx context.Context, storeID, userName string) (string, error) {
	// The directory cannot list without a filter.
	paginator := identitystore.NewListUsersPaginator(c.api, &identitystore.ListUsersInput{
		IdentityStoreId: aws.String(storeID),
		Filters: []types.Filter{
			{
				AttributePath:  aws.String("UserName"),
				AttributeValue: aws.String(userName),
			},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("list users in %s: %w", storeID, err)
		}
		for _, user := range page.Users {
			if aws.ToString(user.UserName) == userName {
				return aws.ToString(user.UserId), nil
			}
		}
	}
	return "", nil
}
