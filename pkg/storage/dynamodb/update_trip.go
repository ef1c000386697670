package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lorrylink/lorrylink/pkg/keys"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// buildTripUpdate folds a typed patch into one update expression. Only set
// fields produce clauses. Reassigning the driver or lorry recomputes the
// matching index keys from the trip's scheduled date, never in isolation.
func buildTripUpdate(trip *models.Trip, patch storage.TripPatch, now time.Time) (expression.UpdateBuilder, bool, error) {
	update := expression.UpdateBuilder{}
	touched := false

	set := func(name string, value interface{}) {
		update = update.Set(expression.Name(name), expression.Value(value))
		touched = true
	}

	if patch.DriverID != nil {
		gsi1pk, gsi1sk, err := keys.TripDriverKey(*patch.DriverID, trip.ScheduledPickupAt, trip.TripID)
		if err != nil {
			return expression.UpdateBuilder{}, false, fmt.Errorf("failed to rebuild driver key: %w", err)
		}
		set("driver_id", *patch.DriverID)
		set("GSI1PK", gsi1pk)
		set("GSI1SK", gsi1sk)
	}
	if patch.LorryID != nil {
		gsi2pk, gsi2sk, err := keys.TripLorryKey(*patch.LorryID, trip.ScheduledPickupAt, trip.TripID)
		if err != nil {
			return expression.UpdateBuilder{}, false, fmt.Errorf("failed to rebuild lorry key: %w", err)
		}
		set("lorry_id", *patch.LorryID)
		set("GSI2PK", gsi2pk)
		set("GSI2SK", gsi2sk)
	}
	if patch.BrokerID != nil {
		set("broker_id", *patch.BrokerID)
	}
	if patch.BrokerName != nil {
		set("broker_name", *patch.BrokerName)
	}
	if patch.Origin != nil {
		set("origin", *patch.Origin)
	}
	if patch.Destination != nil {
		set("destination", *patch.Destination)
	}
	if patch.BrokerPayment != nil {
		set("broker_payment", *patch.BrokerPayment)
	}
	if patch.DriverPayment != nil {
		set("driver_payment", *patch.DriverPayment)
	}
	if patch.LorryOwnerPayment != nil {
		set("lorry_owner_payment", *patch.LorryOwnerPayment)
	}
	if patch.DistanceKm != nil {
		set("distance_km", *patch.DistanceKm)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}

	if !touched {
		return expression.UpdateBuilder{}, false, nil
	}
	update = update.Set(expression.Name("updated_at"), expression.Value(now))
	return update, true, nil
}

// UpdateTrip applies a patch to a trip owned by the dispatcher. The write is
// conditional on the record still existing; concurrent field updates are
// last-write-wins.
func (s *Store) UpdateTrip(ctx context.Context, dispatcherID, tripID string, patch storage.TripPatch) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, dispatcherID, tripID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update, touched, err := buildTripUpdate(trip, patch, now)
	if err != nil {
		return nil, err
	}
	if !touched {
		return trip, nil
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build trip update expression: %w", err)
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: trip.PK},
			"SK": &types.AttributeValueMemberS{Value: trip.SK},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("trip %s disappeared during update: %w", tripID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	var updated models.Trip
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated trip: %w", err)
	}
	return &updated, nil
}
