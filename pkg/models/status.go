package models

// statusOrder fixes the monotonic trip lifecycle. A transition is only legal
// to the immediately following state.
var statusOrder = map[TripStatus]int{
	StatusScheduled: 0,
	StatusPickedUp:  1,
	StatusInTransit: 2,
	StatusDelivered: 3,
	StatusPaid:      4,
}

// ValidTripStatus reports whether s is a known lifecycle state.
func ValidTripStatus(s TripStatus) bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransition reports whether a caller with the given role may move a trip
// from one status to the next. Transitions are strictly forward, one step at a
// time. Drivers may advance a trip up to DELIVERED but may not mark it PAID;
// dispatchers and admins may perform any forward step.
func CanTransition(role Role, from, to TripStatus) bool {
	fromOrd, ok := statusOrder[from]
	if !ok {
		return false
	}
	toOrd, ok := statusOrder[to]
	if !ok {
		return false
	}
	if toOrd != fromOrd+1 {
		return false
	}
	switch role {
	case RoleDriver:
		return to != StatusPaid
	case RoleDispatcher, RoleAdmin:
		return true
	}
	return false
}
