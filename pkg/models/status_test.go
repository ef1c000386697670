package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("Driver advances forward", func(t *testing.T) {
		assert.True(t, CanTransition(RoleDriver, StatusScheduled, StatusPickedUp))
		assert.True(t, CanTransition(RoleDriver, StatusPickedUp, StatusInTransit))
		assert.True(t, CanTransition(RoleDriver, StatusInTransit, StatusDelivered))
	})

	t.Run("Driver cannot mark paid", func(t *testing.T) {
		assert.False(t, CanTransition(RoleDriver, StatusDelivered, StatusPaid))
	})

	t.Run("Dispatcher marks paid", func(t *testing.T) {
		assert.True(t, CanTransition(RoleDispatcher, StatusDelivered, StatusPaid))
	})

	t.Run("No reverts", func(t *testing.T) {
		assert.False(t, CanTransition(RoleDispatcher, StatusDelivered, StatusScheduled))
		assert.False(t, CanTransition(RoleDriver, StatusPickedUp, StatusScheduled))
		assert.False(t, CanTransition(RoleAdmin, StatusPaid, StatusDelivered))
	})

	t.Run("No skipping states", func(t *testing.T) {
		assert.False(t, CanTransition(RoleDispatcher, StatusScheduled, StatusDelivered))
		assert.False(t, CanTransition(RoleAdmin, StatusPickedUp, StatusPaid))
	})

	t.Run("Same state is not a transition", func(t *testing.T) {
		assert.False(t, CanTransition(RoleDriver, StatusDelivered, StatusDelivered))
	})

	t.Run("LorryOwner cannot transition", func(t *testing.T) {
		assert.False(t, CanTransition(RoleLorryOwner, StatusScheduled, StatusPickedUp))
	})

	t.Run("Unknown states rejected", func(t *testing.T) {
		assert.False(t, CanTransition(RoleDispatcher, "BOGUS", StatusPickedUp))
		assert.False(t, CanTransition(RoleDispatcher, StatusScheduled, "BOGUS"))
	})
}
