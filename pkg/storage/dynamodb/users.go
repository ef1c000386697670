package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log"
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

const lookupGSI = "GSI3"

// emailGuardSK marks the uniqueness-guard item written alongside a profile.
const emailGuardSK = "UNIQUE"

// CreateUser persists a new account. The email pre-check fails open: a store
// error during the lookup is treated as "no such email" so a flaky read
// cannot block signup. The transactional guard item below stays the
// authoritative uniqueness check.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if !models.ValidRole(user.Role) {
		return nil, fmt.Errorf("unknown role %q: %w", user.Role, storage.ErrForbidden)
	}

	existing, err := s.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("warning: email pre-check failed for %s, proceeding: %v", user.Email, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", user.Email, storage.ErrEmailTaken)
	}

	now := time.Now().UTC()
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now

	user.PK, user.SK, err = keys.UserKey(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to build user key: %w", err)
	}
	user.GSI3PK, user.GSI3SK, err = keys.UserEmailKey(user.Email, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to build user email key: %w", err)
	}

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	guard, err := attributevalue.MarshalMap(map[string]string{
		"PK":      keys.PrefixEmail + user.Email,
		"SK":      emailGuardSK,
		"user_id": user.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email guard: %w", err)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.TableName),
					Item:                item,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.TableName),
					Item:                guard,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
		},
	})
	if err != nil {
		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			for _, reason := range txc.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return nil, fmt.Errorf("email %s: %w", user.Email, storage.ErrEmailTaken)
				}
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user profile by id.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	pk, sk, err := keys.UserKey(userID)
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
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail looks a profile up through the email projection.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("empty email: %w", storage.ErrNotFound)
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(lookupGSI),
		KeyConditionExpression: aws.String("GSI3PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: keys.PrefixEmail + email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("email %s: %w", email, storage.ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}
