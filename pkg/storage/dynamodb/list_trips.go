package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/cursor"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/query"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

const (
	defaultPageSize int32 = 20
	maxPageSize     int32 = 100
)

// ListTrips answers the routed trip listing: the requester's role picks the
// physical index, date filters become the sort-key range, everything else is
// filtered server-side, and results come back newest first with an opaque
// continuation cursor.
func (s *Store) ListTrips(ctx context.Context, identity auth.Identity, filters query.Filters, cursorStr string, limit int32) (*storage.TripPage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	startKey, err := cursor.Decode(cursorStr)
	if err != nil {
		return nil, err
	}

	plan, err := query.Build(identity.Role, identity.UserID, filters)
	if err != nil {
		if errors.Is(err, query.ErrUnknownRole) {
			return nil, fmt.Errorf("%v: %w", err, storage.ErrForbidden)
		}
		return nil, err
	}

	if plan.FanOut {
		return s.listTripsFanOut(ctx, identity, plan, startKey, limit)
	}
	return s.listTripsSingle(ctx, plan, startKey, limit)
}

// listTripsSingle runs the dispatcher and driver paths: one partition on one
// index, ordering guaranteed by the index itself.
func (s *Store) listTripsSingle(ctx context.Context, plan *query.Plan, startKey map[string]types.AttributeValue, limit int32) (*storage.TripPage, error) {
	trips, lastKey, err := s.queryTripPartition(ctx, plan, plan.PartitionValue, startKey, limit)
	if err != nil {
		return nil, err
	}

	nextCursor, err := cursor.Encode(lastKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode continuation cursor: %w", err)
	}
	return &storage.TripPage{Trips: trips, NextCursor: nextCursor}, nil
}

// listTripsFanOut runs the lorry-owner path: one bounded sub-query per
// approved lorry with a shrinking remaining limit, then a merge, re-sort and
// truncate. Ordering across partitions is not index-guaranteed, hence the
// re-sort. A cursor resumes only the sub-query whose partition it came from;
// resuming a merged page is not guaranteed complete across the other lorries.
func (s *Store) listTripsFanOut(ctx context.Context, identity auth.Identity, plan *query.Plan, startKey map[string]types.AttributeValue, limit int32) (*storage.TripPage, error) {
	lorries, err := s.ListLorriesByOwner(ctx, identity.UserID, models.VerificationApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate approved lorries: %w", err)
	}
	if plan.LorryFilter != "" {
		narrowed := lorries[:0]
		for _, l := range lorries {
			if l.LorryID == plan.LorryFilter {
				narrowed = append(narrowed, l)
			}
		}
		lorries = narrowed
	}

	var resumePartition string
	if startKey != nil {
		if pk, ok := startKey[plan.PartitionAttr].(*types.AttributeValueMemberS); ok {
			resumePartition = pk.Value
		}
	}

	var merged []models.Trip
	var lastKey map[string]types.AttributeValue
	for _, lorry := range lorries {
		remaining := limit - int32(len(merged))
		if remaining <= 0 {
			break
		}
		partition := plan.PartitionFor(lorry.LorryID)
		var subStart map[string]types.AttributeValue
		if resumePartition == partition {
			subStart = startKey
		}

		trips, subLast, err := s.queryTripPartition(ctx, plan, partition, subStart, remaining)
		if err != nil {
			return nil, err
		}
		merged = append(merged, trips...)
		// A non-nil sub-key means that partition still has data. Keep the
		// first one seen so a later exhausted lorry cannot erase the
		// continuation signal.
		if lastKey == nil {
			lastKey = subLast
		}
	}

	// Merged partitions carry no combined ordering; restore newest-first by
	// the shared sort key before truncating to the page size.
	sort.Slice(merged, func(i, j int) bool { return merged[i].SK > merged[j].SK })
	if int32(len(merged)) > limit {
		merged = merged[:limit]
	}

	nextCursor, err := cursor.Encode(lastKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode continuation cursor: %w", err)
	}
	return &storage.TripPage{Trips: merged, NextCursor: nextCursor}, nil
}

// queryTripPartition executes one partition of a plan.
func (s *Store) queryTripPartition(ctx context.Context, plan *query.Plan, partitionValue string, startKey map[string]types.AttributeValue, limit int32) ([]models.Trip, map[string]types.AttributeValue, error) {
	expr, err := plan.Expression(partitionValue)
	if err != nil {
		return nil, nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(limit),
		ScanIndexForward:          aws.Bool(false), // newest scheduled date first
		ExclusiveStartKey:         startKey,
	}
	if plan.Index != query.IndexPrimary {
		input.IndexName = aws.String(plan.Index)
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query trips: %w", err)
	}

	var trips []models.Trip
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &trips); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal trips: %w", err)
	}
	return trips, result.LastEvaluatedKey, nil
}
