/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/aws-samples/nimblestudio-auto-workstation-scheduler/internal/models"
)

// record is the stored shape of a launch config. The days list is a fixed
// nested attribute, not an open map.
type record struct {
	UUID             string      `dynamodbav:"uuid"`
	UserID           string      `dynamodbav:"user_id"`
	StartTime        string      `dynamodbav:"start_time"`
	StudioID         string      `dynamodbav:"studio_id"`
	LaunchProfile    string      `dynamodbav:"launch_profile"`
	StreamingImageID string      `dynamodbav:"streaming_image_id"`
	InstanceType     string      `dynamodbav:"instance_type"`
	Enabled          bool        `dynamodbav:"enabled"`
	DatesApplied     datesRecord `dynamodbav:"dates_applied"`
}

type datesRecord struct {
	Days []string `dynamodbav:"days"`
}

func toRecord(cfg models.LaunchConfig) record {
	days := make([]string, len(cfg.Days))
	for i, d := range cfg.Days {
		days[i] = string(d)
	}
	return record{
		UUID:             cfg.ID,
		UserID:           cfg.UserID,
		StartTime:        cfg.StartTime,
		StudioID:         cfg.StudioID,
		LaunchProfile:    cfg.LaunchProfile,
		StreamingImageID: cfg.StreamingImageID,
		InstanceType:     cfg.InstanceType,
		Enabled:          cfg.Enabled,
		DatesApplied:     datesRecord{Days: days},
	}
}

func (r record) model() models.LaunchConfig {
	days := make([]models.Weekday, 0, len(r.DatesApplied.Days))
	for _, d := range r.DatesApplied.Days {
		days = append(days, models.Weekday(d))
	}
	return models.LaunchConfig{
		ID:               r.UUID,
		UserID:           r.UserID,
		StartTime:        r.StartTime,
		StudioID:         r.StudioID,
		LaunchProfile:    r.LaunchProfile,
		StreamingImageID: r.StreamingImageID,
		InstanceType:     r.InstanceType,
		Enabled:          r.Enabled,
		Days:             days,
	}
}

// Dynamo is the DynamoDB backed Store.
type Dynamo struct {
	api   *dynamodb.Client
	table string
}

// NewDynamo constructs a Store over the given table.
func NewDynamo(awsCfg aws.Config, table string) *Dynamo {
	return &Dynamo{
		api:   dynamodb.NewFromConfig(awsCfg),
		table: table,
	}
}

// ListByStartTime scans with a single start_time equality filter. Every
// other predicate is applied in memory by the callers.
func (d *Dynamo) ListByStartTime(ctx context.Context, startTime string) ([]models.LaunchConfig, error) {
	return d.scan(ctx, expression.Name("start_time").Equal(expression.Value(startTime)))
}

// ListByUser scans for a single user's records.
func (d *Dynamo) ListByUser(ctx context.Context, userID string) ([]models.LaunchConfig, error) {
	return d.scan(ctx, expression.Name("user_id").Equal(expression.Value(userID)))
}

// List scans the whole table.
func (d *Dynamo) List(ctx context.Context) ([]models.LaunchConfig, error) {
	return d.scanInput(ctx, &dynamodb.ScanInput{TableName: aws.String(d.table)})
}

func (d *Dynamo) scan(ctx context.Context, filter expression.ConditionBuilder) ([]models.LaunchConfig, error) {
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("build scan expression: %w", err)
	}
	return d.scanInput(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(d.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (d *Dynamo) scanInput(ctx context.Context, input *dynamodb.ScanInput) ([]models.LaunchConfig, error) {
	var configs []models.LaunchConfig
	paginator := dynamodb.NewScanPaginator(d.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", d.table, err)
		}
		var records []record
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &records); err != nil {
			return nil, fmt.Errorf("unmarshal %s items: %w", d.table, err)
		}
		for _, r := range records {
			configs = append(configs, r.model())
		}
	}
	return configs, nil
}

// Get fetches a single record by id.
func (d *Dynamo) Get(ctx context.Context, id string) (models.LaunchConfig, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"uuid": id})
	if err != nil {
		return models.LaunchConfig{}, fmt.Errorf("marshal key: %w", err)
	}
	out, err := d.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       key,
	})
	if err != nil {
		return models.LaunchConfig{}, fmt.Errorf("get %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return models.LaunchConfig{}, ErrNotFound
	}
	var r record
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return models.LaunchConfig{}, fmt.Errorf("unmarshal %s: %w", id, err)
	}
	return r.model(), nil
}

// Put writes the record, replacing any existing item with the same id.
func (d *Dynamo) Put(ctx context.Context, cfg models.LaunchConfig) error {
	item, err := attributevalue.MarshalMap(toRecord(cfg))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", cfg.ID, err)
	}
	if _, err := d.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put %s: %w", cfg.ID, err)
	}
	return nil
}

// Delete removes the record by id. Deleting an absent id is not an error.
func (d *Dynamo) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"uuid": id})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	if _, err := d.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       key,
	}); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}
