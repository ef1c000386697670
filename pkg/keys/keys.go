// Package keys derives the composite partition/sort keys and secondary-index
// keys for every entity in the single table. All functions are pure; key
// material is always recomputed from the entity's own attributes so an index
// key can never drift from the record it projects.
package keys

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Key prefixes for partition and sort keys.
const (
	PrefixDispatcher  = "DISPATCHER#"
	PrefixDriver      = "DRIVER#"
	PrefixLorry       = "LORRY#"
	PrefixLorryOwner  = "LORRY_OWNER#"
	PrefixLorryStatus = "LORRY_STATUS#"
	PrefixUser        = "USER#"
	PrefixEmail       = "EMAIL#"
	PrefixBroker      = "BROKER#"
	PrefixDocument    = "DOCUMENT#"
	PrefixDocEntity   = "DOC_ENTITY#"
	PrefixTrip        = "TRIP#"

	SKProfile  = "PROFILE"
	SKMetadata = "METADATA"
)

// dateSentinel caps an inclusive upper bound for a date prefix. '~' (0x7E)
// sorts after every byte of a generated trip id (lowercase hex UUID), so all
// keys for day N sort strictly before the sentinel-suffixed bound.
const dateSentinel = "~~~~~~~~"

// ErrEmptyID is returned when a key component that must identify an entity is blank.
var ErrEmptyID = errors.New("empty id in key")

// ErrZeroTime is returned when a sort key would embed the zero timestamp.
var ErrZeroTime = errors.New("zero timestamp in key")

// DateSegment truncates a timestamp to the fixed-width UTC calendar date used
// in trip sort keys. Lexicographic order of the segment matches chronological
// order of the days.
func DateSegment(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TripSK builds the sort key shared by the primary table and both trip GSIs.
func TripSK(scheduledPickupAt time.Time, tripID string) (string, error) {
	if strings.TrimSpace(tripID) == "" {
		return "", ErrEmptyID
	}
	if scheduledPickupAt.IsZero() {
		return "", ErrZeroTime
	}
	return fmt.Sprintf("%s%s#%s", PrefixTrip, DateSegment(scheduledPickupAt), tripID), nil
}

// TripKey returns the primary PK/SK pair for a trip.
func TripKey(dispatcherID string, scheduledPickupAt time.Time, tripID string) (pk, sk string, err error) {
	if strings.TrimSpace(dispatcherID) == "" {
		return "", "", ErrEmptyID
	}
	sk, err = TripSK(scheduledPickupAt, tripID)
	if err != nil {
		return "", "", err
	}
	return PrefixDispatcher + dispatcherID, sk, nil
}

// TripDriverKey returns the GSI1 key pair projecting a trip by its driver.
func TripDriverKey(driverID string, scheduledPickupAt time.Time, tripID string) (pk, sk string, err error) {
	if strings.TrimSpace(driverID) == "" {
		return "", "", ErrEmptyID
	}
	sk, err = TripSK(scheduledPickupAt, tripID)
	if err != nil {
		return "", "", err
	}
	return PrefixDriver + driverID, sk, nil
}

// TripLorryKey returns the GSI2 key pair projecting a trip by its lorry.
func TripLorryKey(lorryID string, scheduledPickupAt time.Time, tripID string) (pk, sk string, err error) {
	if strings.TrimSpace(lorryID) == "" {
		return "", "", ErrEmptyID
	}
	sk, err = TripSK(scheduledPickupAt, tripID)
	if err != nil {
		return "", "", err
	}
	return PrefixLorry + lorryID, sk, nil
}

// TripSortPrefix is the begins_with prefix matching every trip sort key.
func TripSortPrefix() string { return PrefixTrip }

// TripDateLowerBound builds the minimal sort key for a calendar day. Every
// trip scheduled on that day sorts at or after it.
func TripDateLowerBound(day time.Time) string {
	return PrefixTrip + DateSegment(day)
}

// TripDateUpperBound builds an inclusive upper bound for a calendar day by
// appending the maximal sentinel. Every trip scheduled on that day sorts
// strictly before it, and the bound itself sorts before the next day's
// minimal key.
func TripDateUpperBound(day time.Time) string {
	return PrefixTrip + DateSegment(day) + "#" + dateSentinel
}

// UserKey returns the primary PK/SK pair for a user profile.
func UserKey(userID string) (pk, sk string, err error) {
	if strings.TrimSpace(userID) == "" {
		return "", "", ErrEmptyID
	}
	return PrefixUser + userID, SKProfile, nil
}

// UserEmailKey returns the GSI3 key pair backing email-uniqueness lookups.
func UserEmailKey(email, userID string) (pk, sk string, err error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(userID) == "" {
		return "", "", ErrEmptyID
	}
	return PrefixEmail + strings.ToLower(email), PrefixUser + userID, nil
}

// LorryKey returns the primary PK/SK pair for a lorry.
func LorryKey(ownerID, lorryID string) (pk, sk string, err error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(lorryID) == "" {
		return "", "", ErrEmptyID
	}
	return PrefixLorryOwner + ownerID, PrefixLorry + lorryID, nil
}

// LorryStatusKey returns the GSI3 key pair for the admin verification queue.
func LorryStatusKey(status, lorryID string) (pk, sk string, err error) {
	if strings.TrimSpace(status) == "" || strings.TrimSpace(lorryID) == "" {
		return "", "", ErrEmptyID
	}
	return PrefixLorryStatus + status, PrefixLorry + lorryID, nil
}

// BrokerKey returns the primary PK/SK pair for a broker.
func BrokerKey(brokerID string) (pk, sk string, err error) {
	if strings.TrimSpace(brokerID) == "" {
		return "", "", ErrEmptyID
	}
	return PrefixBroker + brokerID, SKProfile, nil
}

// BrokersPartition is the static GSI3 partition collecting all brokers for
// listing.
const BrokersPartition = "BROKERS"

// BrokerListKey returns the GSI3 key pair that lists all brokers in one
// partition.
func BrokerListKey(brokerID string) (pk, sk string, err error) {
	if strings.TrimSpace(brokerID) == "" {
		return "", "", ErrEmptyID
	}
	return BrokersPartition, PrefixBroker + brokerID, nil
}

// DocumentKey returns the primary PK/SK pair for a document record.
func DocumentKey(documentID string) (pk, sk string, err error) {
	if strings.TrimSpace(documentID) == "" {
		return "", "", ErrEmptyID
	}
	return PrefixDocument + documentID, SKMetadata, nil
}

// DocumentEntityKey returns the GSI3 key pair listing documents attached to
// an entity.
func DocumentEntityKey(entityType, entityID, documentID string) (pk, sk string, err error) {
	if strings.TrimSpace(entityType) == "" || strings.TrimSpace(entityID) == "" || strings.TrimSpace(documentID) == "" {
		return "", "", ErrEmptyID
	}
	return fmt.Sprintf("%s%s#%s", PrefixDocEntity, entityType, entityID), PrefixDocument + documentID, nil
}
