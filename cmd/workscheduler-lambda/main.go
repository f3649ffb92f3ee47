/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Lambda entrypoint: the scheduled trigger delivers one event per quarter
// hour and each event becomes one scheduler invocation. The event id seeds
// the idempotency tokens, so retried deliveries of the same event cannot
// launch a second session for the same user and slot.
package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/awsclient"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/config"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/launcher"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/logging"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/sessions"
	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/store"
)

var scheduler *launcher.Service

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	logger := logging.Setup("lambda")

	awsCfg, err := awsclient.Load(context.Background(), cfg)
	if err != nil {
		panic(fmt.Sprintf("load aws config: %v", err))
	}

	configs := store.NewDynamo(awsCfg, cfg.ConfigTableName)
	nimble := sessions.NewClient(awsCfg)
	scheduler = launcher.New(configs, nimble, cfg.SessionLookupFailure, logger)

	lambda.Start(handler)
}

func handler(ctx context.Context, event events.CloudWatchEvent) error {
	inv := models.Invocation{ID: event.ID, Time: event.Time.UTC()}
	_, err := scheduler.RunOnce(ctx, inv)
	return err
}
