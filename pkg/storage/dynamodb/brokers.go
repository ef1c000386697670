package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/lorrylink/lorrylink/pkg/keys"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// CreateBroker persists a new active broker.
func (s *Store) CreateBroker(ctx context.Context, broker *models.Broker) (*models.Broker, error) {
	now := time.Now().UTC()
	if broker.BrokerID == "" {
		broker.BrokerID = uuid.New().String()
	}
	broker.IsActive = true
	broker.CreatedAt = now
	broker.UpdatedAt = now

	var err error
	broker.PK, broker.SK, err = keys.BrokerKey(broker.BrokerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build broker key: %w", err)
	}
	broker.GSI3PK, broker.GSI3SK, err = keys.BrokerListKey(broker.BrokerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build broker list key: %w", err)
	}

	item, err := attributevalue.MarshalMap(broker)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal broker: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("broker %s: %w", broker.BrokerID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to put broker: %w", err)
	}

	return broker, nil
}

// GetBroker retrieves a broker by id, active or not.
func (s *Store) GetBroker(ctx context.Context, brokerID string) (*models.Broker, error) {
	pk, sk, err := keys.BrokerKey(brokerID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, storage.ErrNotFound)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get broker %s: %w", brokerID, err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("broker %s: %w", brokerID, storage.ErrNotFound)
	}

	var broker models.Broker
	if err := attributevalue.UnmarshalMap(result.Item, &broker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal broker: %w", err)
	}
	return &broker, nil
}

// ListBrokers returns active brokers from the static list partition.
func (s *Store) ListBrokers(ctx context.Context, limit int32) ([]models.Broker, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(lookupGSI),
		KeyConditionExpression: aws.String("GSI3PK = :pk"),
		FilterExpression:       aws.String("is_active = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: keys.BrokersPartition},
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
		Limit: aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query brokers: %w", err)
	}

	var brokers []models.Broker
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &brokers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal brokers: %w", err)
	}
	return brokers, nil
}

// DeactivateBroker soft-deletes a broker; the record stays for historical
// trips that reference it.
func (s *Store) DeactivateBroker(ctx context.Context, brokerID string) error {
	pk, sk, err := keys.BrokerKey(brokerID)
	if err != nil {
		return fmt.Errorf("%v: %w", err, storage.ErrNotFound)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
		UpdateExpression:    aws.String("SET is_active = :inactive, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inactive": &types.AttributeValueMemberBOOL{Value: false},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("broker %s: %w", brokerID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to deactivate broker: %w", err)
	}
	return nil
}
