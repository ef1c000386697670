package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/cursor"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/notifier"
	"github.com/lorrylink/lorrylink/pkg/query"
	"github.com/lorrylink/lorrylink/pkg/storage"
	"github.com/lorrylink/lorrylink/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func tripItem(t *testing.T, dispatcherID, lorryID, tripID, date string) map[string]types.AttributeValue {
	t.Helper()
	pickup, err := time.Parse("2006-01-02", date)
	assert.NoError(t, err)
	trip := models.Trip{
		PK:                "DISPATCHER#" + dispatcherID,
		SK:                "TRIP#" + date + "#" + tripID,
		GSI2PK:            "LORRY#" + lorryID,
		GSI2SK:            "TRIP#" + date + "#" + tripID,
		TripID:            tripID,
		DispatcherID:      dispatcherID,
		LorryID:           lorryID,
		ScheduledPickupAt: pickup,
		Status:            models.StatusScheduled,
	}
	av, err := attributevalue.MarshalMap(&trip)
	assert.NoError(t, err)
	return av
}

// hasValue reports whether any expression attribute value equals want. The
// expression builder assigns opaque placeholder names, so matching on values
// is the stable way to tell sub-queries apart.
func hasValue(input *dynamodb.QueryInput, want string) bool {
	for _, v := range input.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == want {
			return true
		}
	}
	return false
}

func TestListTrips_Dispatcher(t *testing.T) {
	identity := auth.Identity{UserID: "disp-1", Role: models.RoleDispatcher}

	t.Run("Single Partition On Primary Index", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.IndexName == nil &&
				hasValue(input, "DISPATCHER#disp-1") &&
				!aws.ToBool(input.ScanIndexForward)
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-1", "lorry-1", "trip-b", "2026-03-20"),
				tripItem(t, "disp-1", "lorry-1", "trip-a", "2026-03-18"),
			},
			LastEvaluatedKey: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: "DISPATCHER#disp-1"},
				"SK": &types.AttributeValueMemberS{Value: "TRIP#2026-03-18#trip-a"},
			},
		}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 20)

		assert.NoError(t, err)
		assert.Len(t, page.Trips, 2)
		assert.NotEmpty(t, page.NextCursor)

		// The cursor must survive a decode round trip.
		startKey, err := cursor.Decode(page.NextCursor)
		assert.NoError(t, err)
		assert.Contains(t, startKey, "SK")
		mockClient.AssertExpectations(t)
	})

	t.Run("Status Filter Becomes Residual Filter", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.FilterExpression != nil && hasValue(input, "DELIVERED")
		})).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		_, err := store.ListTrips(context.Background(), identity, query.Filters{Status: models.StatusDelivered}, "", 20)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Invalid Cursor Fails Closed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		_, err := store.ListTrips(context.Background(), identity, query.Filters{}, "not-a-cursor", 20)

		assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
		mockClient.AssertExpectations(t)
	})
}

func TestListTrips_Driver(t *testing.T) {
	identity := auth.Identity{UserID: "driver-1", Role: models.RoleDriver}

	t.Run("Routed To Driver Index", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "GSI1" && hasValue(input, "DRIVER#driver-1")
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-1", "lorry-1", "trip-a", "2026-03-18"),
			},
		}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 20)

		assert.NoError(t, err)
		assert.Len(t, page.Trips, 1)
		assert.Empty(t, page.NextCursor)
		mockClient.AssertExpectations(t)
	})
}

func TestListTrips_AdminRejected(t *testing.T) {
	identity := auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}

	mockClient := new(mocks.DynamoDBAPI)
	store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
	_, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 20)

	assert.ErrorIs(t, err, storage.ErrForbidden)
	mockClient.AssertExpectations(t)
}

func approvedLorryItems(t *testing.T, ownerID string, lorryIDs ...string) []map[string]types.AttributeValue {
	t.Helper()
	var items []map[string]types.AttributeValue
	for _, id := range lorryIDs {
		av, err := attributevalue.MarshalMap(&models.Lorry{
			PK:                 "LORRY_OWNER#" + ownerID,
			SK:                 "LORRY#" + id,
			LorryID:            id,
			OwnerID:            ownerID,
			VerificationStatus: models.VerificationApproved,
		})
		assert.NoError(t, err)
		items = append(items, av)
	}
	return items
}

func TestListTrips_OwnerFanOut(t *testing.T) {
	identity := auth.Identity{UserID: "owner-1", Role: models.RoleLorryOwner}

	// The lorry enumeration is the one query without an index name.
	lorryEnum := func(input *dynamodb.QueryInput) bool {
		return input.IndexName == nil && hasValue(input, "LORRY_OWNER#owner-1")
	}

	t.Run("Merges And Resorts Across Lorries", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(lorryEnum)).Return(&dynamodb.QueryOutput{
			Items: approvedLorryItems(t, "owner-1", "lorry-1", "lorry-2"),
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "GSI2" && hasValue(input, "LORRY#lorry-1")
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-1", "lorry-1", "trip-old", "2026-03-10"),
			},
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "GSI2" && hasValue(input, "LORRY#lorry-2")
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-2", "lorry-2", "trip-new", "2026-03-21"),
			},
		}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 20)

		assert.NoError(t, err)
		if assert.Len(t, page.Trips, 2) {
			// Newest scheduled date first, regardless of which lorry it came from.
			assert.Equal(t, "trip-new", page.Trips[0].TripID)
			assert.Equal(t, "trip-old", page.Trips[1].TripID)
		}
		mockClient.AssertExpectations(t)
	})

	t.Run("Only Approved Lorries Are Fanned Out", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return lorryEnum(input) &&
				input.FilterExpression != nil &&
				hasValue(input, string(models.VerificationApproved))
		})).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 20)

		// No approved lorries means an empty page, not an error.
		assert.NoError(t, err)
		assert.Empty(t, page.Trips)
		assert.Empty(t, page.NextCursor)
		mockClient.AssertExpectations(t)
	})

	t.Run("Remaining Limit Shrinks Per Lorry", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(lorryEnum)).Return(&dynamodb.QueryOutput{
			Items: approvedLorryItems(t, "owner-1", "lorry-1", "lorry-2"),
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return hasValue(input, "LORRY#lorry-1") && aws.ToInt32(input.Limit) == 3
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-1", "lorry-1", "trip-1", "2026-03-20"),
				tripItem(t, "disp-1", "lorry-1", "trip-2", "2026-03-19"),
			},
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return hasValue(input, "LORRY#lorry-2") && aws.ToInt32(input.Limit) == 1
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-2", "lorry-2", "trip-3", "2026-03-21"),
			},
		}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 3)

		assert.NoError(t, err)
		assert.Len(t, page.Trips, 3)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lorry Filter Narrows The Fan Out", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(lorryEnum)).Return(&dynamodb.QueryOutput{
			Items: approvedLorryItems(t, "owner-1", "lorry-1", "lorry-2"),
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "GSI2" && hasValue(input, "LORRY#lorry-2")
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-2", "lorry-2", "trip-3", "2026-03-21"),
			},
		}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{LorryID: "lorry-2"}, "", 20)

		assert.NoError(t, err)
		assert.Len(t, page.Trips, 1)
		// No query for lorry-1 may have happened.
		mockClient.AssertNumberOfCalls(t, "Query", 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("Exhausted Later Lorry Keeps The Continuation", func(t *testing.T) {
		// lorry-1 still has data behind its LastEvaluatedKey; lorry-2 comes
		// back empty. The returned cursor must carry lorry-1's key instead of
		// being wiped by the empty final sub-query.
		moreKey := map[string]types.AttributeValue{
			"GSI2PK": &types.AttributeValueMemberS{Value: "LORRY#lorry-1"},
			"GSI2SK": &types.AttributeValueMemberS{Value: "TRIP#2026-03-18#trip-2"},
			"PK":     &types.AttributeValueMemberS{Value: "DISPATCHER#disp-1"},
			"SK":     &types.AttributeValueMemberS{Value: "TRIP#2026-03-18#trip-2"},
		}

		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(lorryEnum)).Return(&dynamodb.QueryOutput{
			Items: approvedLorryItems(t, "owner-1", "lorry-1", "lorry-2"),
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "GSI2" && hasValue(input, "LORRY#lorry-1")
		})).Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				tripItem(t, "disp-1", "lorry-1", "trip-2", "2026-03-18"),
			},
			LastEvaluatedKey: moreKey,
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return aws.ToString(input.IndexName) == "GSI2" && hasValue(input, "LORRY#lorry-2")
		})).Return(&dynamodb.QueryOutput{}, nil)

		store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
		page, err := store.ListTrips(context.Background(), identity, query.Filters{}, "", 20)

		assert.NoError(t, err)
		assert.Len(t, page.Trips, 1)
		if assert.NotEmpty(t, page.NextCursor) {
			startKey, err := cursor.Decode(page.NextCursor)
			assert.NoError(t, err)
			pk, ok := startKey["GSI2PK"].(*types.AttributeValueMemberS)
			assert.True(t, ok)
			assert.Equal(t, "LORRY#lorry-1", pk.Value)
		}
		mockClient.AssertExpectations(t)
	})
}

func TestListTrips_OwnerFanOut_CursorResumesSingleLorry(t *testing.T) {
	identity := auth.Identity{UserID: "owner-1", Role: models.RoleLorryOwner}

	// A continuation cursor from lorry-2's partition must resume only
	// lorry-2's sub-query; the other lorries restart from the top.
	resumeKey := map[string]types.AttributeValue{
		"GSI2PK": &types.AttributeValueMemberS{Value: "LORRY#lorry-2"},
		"GSI2SK": &types.AttributeValueMemberS{Value: "TRIP#2026-03-15#trip-7"},
		"PK":     &types.AttributeValueMemberS{Value: "DISPATCHER#disp-2"},
		"SK":     &types.AttributeValueMemberS{Value: "TRIP#2026-03-15#trip-7"},
	}
	cursorStr, err := cursor.Encode(resumeKey)
	assert.NoError(t, err)

	mockClient := new(mocks.DynamoDBAPI)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return input.IndexName == nil && hasValue(input, "LORRY_OWNER#owner-1")
	})).Return(&dynamodb.QueryOutput{
		Items: approvedLorryItems(t, "owner-1", "lorry-1", "lorry-2"),
	}, nil)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return hasValue(input, "LORRY#lorry-1") && input.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{}, nil)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		if !hasValue(input, "LORRY#lorry-2") || input.ExclusiveStartKey == nil {
			return false
		}
		sk, ok := input.ExclusiveStartKey["GSI2SK"].(*types.AttributeValueMemberS)
		return ok && sk.Value == "TRIP#2026-03-15#trip-7"
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			tripItem(t, "disp-2", "lorry-2", "trip-8", "2026-03-14"),
		},
	}, nil)

	store := New(mockClient, notifier.NoOpNotifier{}, "lorrylink")
	page, err := store.ListTrips(context.Background(), identity, query.Filters{}, cursorStr, 20)

	assert.NoError(t, err)
	assert.Len(t, page.Trips, 1)
	assert.Equal(t, "trip-8", page.Trips[0].TripID)
	mockClient.AssertExpectations(t)
}
