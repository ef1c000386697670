// Package analytics computes the reporting rollups from a set of trips that
// has already been access-controlled and filtered. All functions are pure and
// deterministic: amounts are summed at full precision and rounded to two
// decimals only when a report is assembled.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/lorrylink/lorrylink/pkg/models"
)

// FleetOverview summarizes driver and vehicle activity across a trip set.
type FleetOverview struct {
	TotalDrivers       int     `json:"total_drivers"`
	ActiveDrivers      int     `json:"active_drivers"`
	DriversOnTrip      int     `json:"drivers_on_trip"`
	DriverUtilization  float64 `json:"driver_utilization"`
	TotalVehicles      int     `json:"total_vehicles"`
	ActiveVehicles     int     `json:"active_vehicles"`
	VehiclesOnTrip     int     `json:"vehicles_on_trip"`
	VehicleUtilization float64 `json:"vehicle_utilization"`
	TotalTrips         int     `json:"total_trips"`
}

// TripAnalytics is the revenue/expense rollup across a trip set.
type TripAnalytics struct {
	TotalTrips         int     `json:"total_trips"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalExpenses      float64 `json:"total_expenses"`
	TotalProfit        float64 `json:"total_profit"`
	AverageRevenue     float64 `json:"average_revenue"`
	AverageDistanceKm  float64 `json:"average_distance_km"`
	OnTimeDeliveryRate float64 `json:"on_time_delivery_rate"`
}

// GroupStats is one per-driver or per-vehicle row.
type GroupStats struct {
	ID              string  `json:"id"`
	TotalTrips      int     `json:"total_trips"`
	CompletedTrips  int     `json:"completed_trips"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageRevenue  float64 `json:"average_revenue"`
}

// MonthlyRevenue is one calendar-month row of the revenue report.
type MonthlyRevenue struct {
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
	Trips    int     `json:"trips"`
}

// RevenueReport is the month-by-month revenue rollup.
type RevenueReport struct {
	Months                []MonthlyRevenue `json:"months"`
	TotalRevenue          float64          `json:"total_revenue"`
	AverageMonthlyRevenue float64          `json:"average_monthly_revenue"`
}

// onTrip reports whether a trip currently occupies its driver and lorry.
func onTrip(t models.Trip) bool {
	return t.Status == models.StatusPickedUp || t.Status == models.StatusInTransit
}

// completed reports whether a trip has reached delivery.
func completed(t models.Trip) bool {
	return t.Status == models.StatusDelivered || t.Status == models.StatusPaid
}

// round2 rounds to two decimals for presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ratio divides, returning 0 instead of dividing by zero.
func ratio(numerator float64, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / float64(denominator)
}

// Fleet computes the fleet overview. Totals are distinct driver and lorry ids
// seen in the trip set; a driver or vehicle is active when any of its trips
// has not yet reached Delivered, and on-trip when any of its trips is
// currently picked up or in transit.
func Fleet(trips []models.Trip) FleetOverview {
	type activity struct{ active, onTrip bool }
	drivers := map[string]*activity{}
	vehicles := map[string]*activity{}
	mark := func(m map[string]*activity, id string, t models.Trip) {
		if id == "" {
			return
		}
		a, ok := m[id]
		if !ok {
			a = &activity{}
			m[id] = a
		}
		a.active = a.active || !completed(t)
		a.onTrip = a.onTrip || onTrip(t)
	}
	for _, t := range trips {
		mark(drivers, t.DriverID, t)
		mark(vehicles, t.LorryID, t)
	}

	overview := FleetOverview{
		TotalDrivers:  len(drivers),
		TotalVehicles: len(vehicles),
		TotalTrips:    len(trips),
	}
	for _, a := range drivers {
		if a.active {
			overview.ActiveDrivers++
		}
		if a.onTrip {
			overview.DriversOnTrip++
		}
	}
	for _, a := range vehicles {
		if a.active {
			overview.ActiveVehicles++
		}
		if a.onTrip {
			overview.VehiclesOnTrip++
		}
	}
	overview.DriverUtilization = round2(ratio(float64(overview.DriversOnTrip), overview.TotalDrivers))
	overview.VehicleUtilization = round2(ratio(float64(overview.VehiclesOnTrip), overview.TotalVehicles))
	return overview
}

// Trips computes the revenue rollup. The on-time rate is a completion proxy:
// the share of trips that have reached Delivered or Paid, since no promised
// delivery time exists to measure lateness against.
func Trips(trips []models.Trip) TripAnalytics {
	var revenue, expenses, distance float64
	var delivered int
	for _, t := range trips {
		revenue += t.BrokerPayment
		expenses += t.DriverPayment + t.LorryOwnerPayment
		distance += t.DistanceKm
		if completed(t) {
			delivered++
		}
	}
	return TripAnalytics{
		TotalTrips:         len(trips),
		TotalRevenue:       round2(revenue),
		TotalExpenses:      round2(expenses),
		TotalProfit:        round2(revenue - expenses),
		AverageRevenue:     round2(ratio(revenue, len(trips))),
		AverageDistanceKm:  round2(ratio(distance, len(trips))),
		OnTimeDeliveryRate: round2(ratio(float64(delivered)*100, len(trips))),
	}
}

// ByDriver groups the trip set per driver. Every trip lands in exactly one
// group, so group totals always sum back to len(trips).
func ByDriver(trips []models.Trip) []GroupStats {
	return groupBy(trips, func(t models.Trip) string { return t.DriverID })
}

// ByVehicle groups the trip set per lorry.
func ByVehicle(trips []models.Trip) []GroupStats {
	return groupBy(trips, func(t models.Trip) string { return t.LorryID })
}

func groupBy(trips []models.Trip, key func(models.Trip) string) []GroupStats {
	groups := map[string]*GroupStats{}
	order := []string{}
	for _, t := range trips {
		id := key(t)
		g, ok := groups[id]
		if !ok {
			g = &GroupStats{ID: id}
			groups[id] = g
			order = append(order, id)
		}
		g.TotalTrips++
		g.TotalDistanceKm += t.DistanceKm
		g.TotalRevenue += t.BrokerPayment
		if completed(t) {
			g.CompletedTrips++
		}
	}

	sort.Strings(order)
	out := make([]GroupStats, 0, len(order))
	for _, id := range order {
		g := groups[id]
		g.AverageRevenue = round2(ratio(g.TotalRevenue, g.TotalTrips))
		g.TotalRevenue = round2(g.TotalRevenue)
		g.TotalDistanceKm = round2(g.TotalDistanceKm)
		out = append(out, *g)
	}
	return out
}

// Revenue groups the trip set by the UTC calendar month of the scheduled
// pickup. Months appear in chronological order labelled "January 2006".
func Revenue(trips []models.Trip) RevenueReport {
	type bucket struct {
		month    time.Time
		revenue  float64
		expenses float64
		trips    int
	}
	buckets := map[time.Time]*bucket{}
	var total float64
	for _, t := range trips {
		pickup := t.ScheduledPickupAt.UTC()
		month := time.Date(pickup.Year(), pickup.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[month]
		if !ok {
			b = &bucket{month: month}
			buckets[month] = b
		}
		b.revenue += t.BrokerPayment
		b.expenses += t.DriverPayment + t.LorryOwnerPayment
		b.trips++
		total += t.BrokerPayment
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].month.Before(ordered[j].month) })

	report := RevenueReport{Months: []MonthlyRevenue{}}
	for _, b := range ordered {
		report.Months = append(report.Months, MonthlyRevenue{
			Label:    b.month.Format("January 2006"),
			Revenue:  round2(b.revenue),
			Expenses: round2(b.expenses),
			Profit:   round2(b.revenue - b.expenses),
			Trips:    b.trips,
		})
	}
	report.TotalRevenue = round2(total)
	report.AverageMonthlyRevenue = round2(ratio(total, len(buckets)))
	return report
}
