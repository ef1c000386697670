package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// CreateLorry persists a new lorry in verification status PENDING.
func (s *Store) CreateLorry(ctx context.Context, lorry *models.Lorry) (*models.Lorry, error) {
	now := time.Now().UTC()
	if lorry.LorryID == "" {
		lorry.LorryID = uuid.New().String()
	}
	lorry.VerificationStatus = models.VerificationPending
	lorry.RejectionReason = ""
	lorry.CreatedAt = now
	lorry.UpdatedAt = now

	var err error
	lorry.PK, lorry.SK, err = keys.LorryKey(lorry.OwnerID, lorry.LorryID)
	if err != nil {
		return nil, fmt.Errorf("failed to build lorry key: %w", err)
	}
	lorry.GSI3PK, lorry.GSI3SK, err = keys.LorryStatusKey(string(lorry.VerificationStatus), lorry.LorryID)
	if err != nil {
		return nil, fmt.Errorf("failed to build lorry status key: %w", err)
	}

	item, err := attributevalue.MarshalMap(lorry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lorry: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("lorry %s: %w", lorry.LorryID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to put lorry: %w", err)
	}

	return lorry, nil
}

// GetLorry retrieves one lorry from its owner's partition.
func (s *Store) GetLorry(ctx context.Context, ownerID, lorryID string) (*models.Lorry, error) {
	pk, sk, err := keys.LorryKey(ownerID, lorryID)
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
		return nil, fmt.Errorf("failed to get lorry %s: %w", lorryID, err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("lorry %s: %w", lorryID, storage.ErrNotFound)
	}

	var lorry models.Lorry
	if err := attributevalue.UnmarshalMap(result.Item, &lorry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lorry: %w", err)
	}
	return &lorry, nil
}

// ListLorriesByOwner returns an owner's lorries, optionally narrowed to one
// verification status. Owners hold a handful of lorries, so the partition is
// walked to the end.
func (s *Store) ListLorriesByOwner(ctx context.Context, ownerID string, status models.VerificationStatus) ([]models.Lorry, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("empty owner id: %w", storage.ErrNotFound)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: keys.PrefixLorryOwner + ownerID},
			":prefix": &types.AttributeValueMemberS{Value: keys.PrefixLorry},
		},
	}
	if status != "" {
		input.FilterExpression = aws.String("verification_status = :status")
		input.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: string(status)}
	}

	lorries := []models.Lorry{}
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query lorries for owner %s: %w", ownerID, err)
		}
		var page []models.Lorry
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lorries: %w", err)
		}
		lorries = append(lorries, page...)
		if result.LastEvaluatedKey == nil {
			return lorries, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// SetLorryVerification moves a lorry through the review queue. Rejection and
// needs-more-evidence require a reason; approval clears any stored reason.
// The status projection key is recomputed from the new status in the same
// write.
func (s *Store) SetLorryVerification(ctx context.Context, ownerID, lorryID string, status models.VerificationStatus, reason string) (*models.Lorry, error) {
	reason = strings.TrimSpace(reason)
	switch status {
	case models.VerificationRejected, models.VerificationNeedsMoreEvidence:
		if reason == "" {
			return nil, fmt.Errorf("status %s: %w", status, storage.ErrReasonRequired)
		}
	case models.VerificationApproved, models.VerificationPending:
		reason = ""
	default:
		return nil, fmt.Errorf("unknown verification status %q: %w", status, storage.ErrInvalidTransition)
	}

	pk, sk, err := keys.LorryKey(ownerID, lorryID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, storage.ErrNotFound)
	}
	gsi3pk, gsi3sk, err := keys.LorryStatusKey(string(status), lorryID)
	if err != nil {
		return nil, fmt.Errorf("failed to build lorry status key: %w", err)
	}

	update := "SET verification_status = :status, GSI3PK = :gsi3pk, GSI3SK = :gsi3sk, updated_at = :now"
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(status)},
		":gsi3pk": &types.AttributeValueMemberS{Value: gsi3pk},
		":gsi3sk": &types.AttributeValueMemberS{Value: gsi3sk},
		":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}
	if reason != "" {
		update += ", rejection_reason = :reason"
		values[":reason"] = &types.AttributeValueMemberS{Value: reason}
	} else {
		update += " REMOVE rejection_reason"
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("lorry %s: %w", lorryID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update lorry verification: %w", err)
	}

	var lorry models.Lorry
	if err := attributevalue.UnmarshalMap(result.Attributes, &lorry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lorry: %w", err)
	}
	return &lorry, nil
}

// ListPendingLorries serves the admin review queue through the status
// projection.
func (s *Store) ListPendingLorries(ctx context.Context, limit int32) ([]models.Lorry, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(lookupGSI),
		KeyConditionExpression: aws.String("GSI3PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: keys.PrefixLorryStatus + string(models.VerificationPending)},
		},
		Limit: aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pending lorries: %w", err)
	}

	var lorries []models.Lorry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &lorries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending lorries: %w", err)
	}
	return lorries, nil
}
