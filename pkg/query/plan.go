// Package query routes a trip-list request to the physical index that can
// answer it. Each role owns exactly one access pattern: dispatchers read the
// primary table, drivers read the driver projection (GSI1), and lorry owners
// fan out over the lorry projection (GSI2), one sub-query per approved lorry.
// Whatever the chosen index cannot express through its keys becomes a
// conjunction of equality filters evaluated server-side.
package query

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/lorrylink/lorrylink/pkg/keys"
	"github.com/lorrylink/lorrylink/pkg/models"
)

// Index names as created on the table. The empty string selects the primary
// table itself.
const (
	IndexPrimary = ""
	IndexDriver  = "GSI1"
	IndexLorry   = "GSI2"
)

// ErrUnknownRole is returned when the requester's role has no trip access
// pattern.
var ErrUnknownRole = errors.New("role has no trip access pattern")

// ErrMissingRequester is returned when no requester id accompanies the role.
var ErrMissingRequester = errors.New("missing requester id")

// Plan describes one routed query: which index, which key attributes, the
// partition value (or deferred fan-out), the sort-key range and the residual
// filter. It carries no connection state; the store executes it.
type Plan struct {
	// Index is the secondary index to query; empty means the primary table.
	Index string
	// PartitionAttr / SortAttr are the key attribute names of that index.
	PartitionAttr string
	SortAttr      string
	// PartitionValue is set for single-partition plans. For fan-out plans it
	// is empty and PartitionFor derives the value per lorry.
	PartitionValue string
	// FanOut marks the lorry-owner path: partitions are enumerated from the
	// requester's approved lorries at execution time.
	FanOut bool
	// LorryFilter narrows a fan-out to a single owned lorry when the lorryId
	// filter is present.
	LorryFilter string

	filters Filters
}

// Build resolves a role and filter set to a query plan. Role strategies are a
// closed set; anything else is rejected.
func Build(role models.Role, requesterID string, f Filters) (*Plan, error) {
	if requesterID == "" {
		return nil, ErrMissingRequester
	}
	strategy, ok := strategies[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return strategy.plan(requesterID, f)
}

// PartitionFor returns the GSI2 partition value for one lorry in a fan-out.
func (p *Plan) PartitionFor(lorryID string) string {
	return keys.PrefixLorry + lorryID
}

// KeyCondition builds the key-condition expression for the given partition
// value: equality on the partition attribute plus the sort-key range derived
// from the date filters. With both bounds present the range is a BETWEEN over
// the encoder's day bounds; with one bound it is an open-ended comparison;
// with neither it is a begins_with prefix scan over trip sort keys.
func (p *Plan) KeyCondition(partitionValue string) expression.KeyConditionBuilder {
	cond := expression.Key(p.PartitionAttr).Equal(expression.Value(partitionValue))
	sortKey := expression.Key(p.SortAttr)

	switch {
	case p.filters.StartDate != nil && p.filters.EndDate != nil:
		return cond.And(sortKey.Between(
			expression.Value(keys.TripDateLowerBound(*p.filters.StartDate)),
			expression.Value(keys.TripDateUpperBound(*p.filters.EndDate)),
		))
	case p.filters.StartDate != nil:
		return cond.And(sortKey.GreaterThanEqual(
			expression.Value(keys.TripDateLowerBound(*p.filters.StartDate))))
	case p.filters.EndDate != nil:
		return cond.And(sortKey.LessThanEqual(
			expression.Value(keys.TripDateUpperBound(*p.filters.EndDate))))
	default:
		return cond.And(sortKey.BeginsWith(keys.TripSortPrefix()))
	}
}

// ResidualFilter builds the conjunction of equality checks for every filter
// that is not answered by the chosen index's keys. The second return is false
// when no residual filtering is needed.
func (p *Plan) ResidualFilter() (expression.ConditionBuilder, bool) {
	var conds []expression.ConditionBuilder
	if p.filters.Status != "" {
		conds = append(conds, expression.Name("status").Equal(expression.Value(string(p.filters.Status))))
	}
	if p.filters.BrokerID != "" {
		conds = append(conds, expression.Name("broker_id").Equal(expression.Value(p.filters.BrokerID)))
	}
	// On the lorry index the lorryId filter narrows the fan-out itself.
	if p.filters.LorryID != "" && p.Index != IndexLorry {
		conds = append(conds, expression.Name("lorry_id").Equal(expression.Value(p.filters.LorryID)))
	}
	// Kept even on the driver index: a driverId filter naming someone else
	// must produce an empty page, not the requester's own trips.
	if p.filters.DriverID != "" {
		conds = append(conds, expression.Name("driver_id").Equal(expression.Value(p.filters.DriverID)))
	}

	if len(conds) == 0 {
		return expression.ConditionBuilder{}, false
	}
	combined := conds[0]
	for _, c := range conds[1:] {
		combined = combined.And(c)
	}
	return combined, true
}

// Expression assembles the full DynamoDB expression for one partition of the
// plan.
func (p *Plan) Expression(partitionValue string) (expression.Expression, error) {
	builder := expression.NewBuilder().WithKeyCondition(p.KeyCondition(partitionValue))
	if filter, ok := p.ResidualFilter(); ok {
		builder = builder.WithFilter(filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return expression.Expression{}, fmt.Errorf("failed to build query expression: %w", err)
	}
	return expr, nil
}

// roleStrategy is the closed set of per-role query builders, resolved once
// through the lookup table below.
type roleStrategy interface {
	plan(requesterID string, f Filters) (*Plan, error)
}

var strategies = map[models.Role]roleStrategy{
	models.RoleDispatcher: dispatcherStrategy{},
	models.RoleDriver:     driverStrategy{},
	models.RoleLorryOwner: lorryOwnerStrategy{},
}

type dispatcherStrategy struct{}

func (dispatcherStrategy) plan(requesterID string, f Filters) (*Plan, error) {
	return &Plan{
		Index:          IndexPrimary,
		PartitionAttr:  "PK",
		SortAttr:       "SK",
		PartitionValue: keys.PrefixDispatcher + requesterID,
		filters:        f,
	}, nil
}

type driverStrategy struct{}

func (driverStrategy) plan(requesterID string, f Filters) (*Plan, error) {
	return &Plan{
		Index:          IndexDriver,
		PartitionAttr:  "GSI1PK",
		SortAttr:       "GSI1SK",
		PartitionValue: keys.PrefixDriver + requesterID,
		filters:        f,
	}, nil
}

type lorryOwnerStrategy struct{}

func (lorryOwnerStrategy) plan(requesterID string, f Filters) (*Plan, error) {
	return &Plan{
		Index:         IndexLorry,
		PartitionAttr: "GSI2PK",
		SortAttr:      "GSI2SK",
		FanOut:        true,
		LorryFilter:   f.LorryID,
		filters:       f,
	}, nil
}
