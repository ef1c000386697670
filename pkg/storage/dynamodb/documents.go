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
	"github.com/lorrylink/lorrylink/pkg/blobs"
	"github.com/lorrylink/lorrylink/pkg/keys"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// CreateDocument persists document metadata. The object key is derived here,
// once the id exists, so the record and the blob location never diverge; the
// bytes are uploaded under it via a presigned URL.
func (s *Store) CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error) {
	now := time.Now().UTC()
	if doc.DocumentID == "" {
		doc.DocumentID = uuid.New().String()
	}
	doc.IsActive = true
	doc.CreatedAt = now
	doc.UpdatedAt = now

	var err error
	doc.PK, doc.SK, err = keys.DocumentKey(doc.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to build document key: %w", err)
	}
	doc.GSI3PK, doc.GSI3SK, err = keys.DocumentEntityKey(doc.EntityType, doc.EntityID, doc.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to build document entity key: %w", err)
	}
	doc.ObjectKey, err = blobs.ObjectKey(doc.EntityType, doc.EntityID, doc.DocumentID, doc.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build document object key: %w", err)
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("document %s: %w", doc.DocumentID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to put document: %w", err)
	}

	return doc, nil
}

// ListDocumentsForEntity returns the active documents attached to one entity,
// walking all pages of the lookup index.
func (s *Store) ListDocumentsForEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error) {
	if entityType == "" || entityID == "" {
		return nil, fmt.Errorf("entity reference required: %w", storage.ErrNotFound)
	}
	partition := keys.PrefixDocEntity + entityType + "#" + entityID

	var docs []models.Document
	var startKey map[string]types.AttributeValue
	for {
		result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.TableName),
			IndexName:              aws.String(lookupGSI),
			KeyConditionExpression: aws.String("GSI3PK = :pk"),
			FilterExpression:       aws.String("is_active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: partition},
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query documents: %w", err)
		}

		var page []models.Document
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal documents: %w", err)
		}
		docs = append(docs, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return docs, nil
}

// DeactivateDocument soft-deletes a document record. The stored object is
// left in place.
func (s *Store) DeactivateDocument(ctx context.Context, documentID string) error {
	pk, sk, err := keys.DocumentKey(documentID)
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
			return fmt.Errorf("document %s: %w", documentID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to deactivate document: %w", err)
	}
	return nil
}
