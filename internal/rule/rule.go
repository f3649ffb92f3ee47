/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package rule toggles the scheduled trigger that drives invocations in
// managed deployments.
package rule

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/rs/zerolog"
)

// Client manages a single scheduled rule by name.
type Client struct {
	api    *eventbridge.Client
	name   string
	logger zerolog.Logger
}

// NewClient constructs a Client for the named rule.
func NewClient(awsCfg aws.Config, name string, logger zerolog.Logger) *Client {
	return &Client{
		api:    eventbridge.NewFromConfig(awsCfg),
		name:   name,
		logger: logger,
	}
}

// Name returns the rule name the client manages.
func (c *Client) Name() string { return c.name }

// Enable turns the scheduled trigger on.
func (c *Client) Enable(ctx context.Context) error {
	if _, err := c.api.EnableRule(ctx, &eventbridge.EnableRuleInput{Name: aws.String(c.name)}); err != nil {
		return fmt.Errorf("enable rule %s: %w", c.name, err)
	}
	c.logger.Info().Str("rule", c.name).Msg("scheduled trigger enabled")
	return nil
}

// Disable turns the scheduled trigger off. Stored configs are untouched.
func (c *Client) Disable(ctx context.Context) error {
	if _, err := c.api.DisableRule(ctx, &eventbridge.DisableRuleInput{Name: aws.String(c.name)}); err != nil {
		return fmt.Errorf("disable rule %s: %w", c.name, err)
	}
	c.logger.Info().Str("rule", c.name).Msg("scheduled trigger disabled")
	return nil
}

// Status describes the rule as deployed.
type Status struct {
	Name               string `json:"name"`
	State              string `json:"state"`
	ScheduleExpression string `json:"schedule_expression"`
}

// State fetches the rule's current state and schedule expression.
func (c *Client) State(ctx context.Context) (*Status, error) {
	out, err := c.api.DescribeRule(ctx, &eventbridge.DescribeRuleInput{Name: aws.String(c.name)})
	if err != nil {
		return nil, fmt.Errorf("describe rule %s: %w", c.name, err)
	}
	return &Status{
		Name:               aws.ToString(out.Name),
		State:              string(out.State),
		ScheduleExpression: aws.ToString(out.ScheduleExpression),
	}, nil
}
