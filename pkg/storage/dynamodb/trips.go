package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/keys"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/notifier"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// CreateTrip persists a new trip in status SCHEDULED. All key material is
// derived from the trip's own attributes; the conditional put rejects an id
// collision.
func (s *Store) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	now := time.Now().UTC()
	if trip.TripID == "" {
		trip.TripID = uuid.New().String()
	}
	trip.Status = models.StatusScheduled
	trip.DeliveredAt = nil
	trip.CreatedAt = now
	trip.UpdatedAt = now

	var err error
	trip.PK, trip.SK, err = keys.TripKey(trip.DispatcherID, trip.ScheduledPickupAt, trip.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to build trip key: %w", err)
	}
	trip.GSI1PK, trip.GSI1SK, err = keys.TripDriverKey(trip.DriverID, trip.ScheduledPickupAt, trip.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to build trip driver key: %w", err)
	}
	trip.GSI2PK, trip.GSI2SK, err = keys.TripLorryKey(trip.LorryID, trip.ScheduledPickupAt, trip.TripID)
	if err != nil {
		return nil, fmt.Errorf("failed to build trip lorry key: %w", err)
	}

	item, err := attributevalue.MarshalMap(trip)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trip: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("trip %s: %w", trip.TripID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to put trip: %w", err)
	}

	if s.Notifier != nil {
		event := notifier.TripEvent{
			Kind:         notifier.EventTripCreated,
			TripID:       trip.TripID,
			DispatcherID: trip.DispatcherID,
			DriverID:     trip.DriverID,
			LorryID:      trip.LorryID,
			Status:       trip.Status,
			OccurredAt:   now,
		}
		if err := s.Notifier.PublishTripEvent(ctx, event); err != nil {
			log.Printf("CRITICAL: trip %s created but event not enqueued: %v", trip.TripID, err)
		}
	}

	return trip, nil
}

// GetTrip finds a trip inside a dispatcher's partition by trip id. The sort
// key embeds the scheduled date, which the caller does not know, so the
// partition is scanned by trip prefix with a trip_id filter.
func (s *Store) GetTrip(ctx context.Context, dispatcherID, tripID string) (*models.Trip, error) {
	if dispatcherID == "" || tripID == "" {
		return nil, fmt.Errorf("trip lookup needs dispatcher and trip ids: %w", storage.ErrNotFound)
	}

	var startKey map[string]types.AttributeValue
	for {
		result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.TableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			FilterExpression:       aws.String("trip_id = :tid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: keys.PrefixDispatcher + dispatcherID},
				":prefix": &types.AttributeValueMemberS{Value: keys.TripSortPrefix()},
				":tid":    &types.AttributeValueMemberS{Value: tripID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query for trip %s: %w", tripID, err)
		}

		if len(result.Items) > 0 {
			var trip models.Trip
			if err := attributevalue.UnmarshalMap(result.Items[0], &trip); err != nil {
				return nil, fmt.Errorf("failed to unmarshal trip: %w", err)
			}
			return &trip, nil
		}

		if result.LastEvaluatedKey == nil {
			return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
		}
		startKey = result.LastEvaluatedKey
	}
}

// UpdateTripStatus advances a trip one step through its lifecycle. The update
// is conditional on the current status so a concurrent transition loses
// cleanly, and delivered_at is written through if_not_exists so the first
// transition into DELIVERED fixes it permanently.
func (s *Store) UpdateTripStatus(ctx context.Context, identity auth.Identity, dispatcherID, tripID string, target models.TripStatus) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, dispatcherID, tripID)
	if err != nil {
		return nil, err
	}

	switch identity.Role {
	case models.RoleDispatcher:
		if identity.UserID != trip.DispatcherID {
			return nil, fmt.Errorf("trip %s belongs to another dispatcher: %w", tripID, storage.ErrForbidden)
		}
	case models.RoleDriver:
		if identity.UserID != trip.DriverID {
			return nil, fmt.Errorf("trip %s is assigned to another driver: %w", tripID, storage.ErrForbidden)
		}
	case models.RoleAdmin:
		// Admins may drive any transition a dispatcher could.
	default:
		return nil, fmt.Errorf("role %q may not update trip status: %w", identity.Role, storage.ErrForbidden)
	}

	if !models.CanTransition(identity.Role, trip.Status, target) {
		return nil, fmt.Errorf("%s -> %s as %s: %w", trip.Status, target, identity.Role, storage.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}

	update := "SET #status = :to, updated_at = :now"
	if target == models.StatusDelivered {
		update += ", delivered_at = if_not_exists(delivered_at, :now)"
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: trip.PK},
			"SK": &types.AttributeValueMemberS{Value: trip.SK},
		},
		UpdateExpression:    aws.String(update),
		ConditionExpression: aws.String("attribute_exists(PK) AND #status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to":   &types.AttributeValueMemberS{Value: string(target)},
			":from": &types.AttributeValueMemberS{Value: string(trip.Status)},
			":now":  nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("trip %s status moved concurrently: %w", tripID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update trip status: %w", err)
	}

	var updated models.Trip
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated trip: %w", err)
	}

	if s.Notifier != nil {
		event := notifier.TripEvent{
			Kind:         notifier.EventTripStatusChanged,
			TripID:       updated.TripID,
			DispatcherID: updated.DispatcherID,
			DriverID:     updated.DriverID,
			LorryID:      updated.LorryID,
			Status:       updated.Status,
			OccurredAt:   now,
		}
		if err := s.Notifier.PublishTripEvent(ctx, event); err != nil {
			log.Printf("CRITICAL: trip %s status changed but event not enqueued: %v", updated.TripID, err)
		}
	}

	return &updated, nil
}
