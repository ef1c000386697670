package query

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/lorrylink/lorrylink/pkg/models"
)

// Filters is the set of optional trip-list filters. Dates are calendar days;
// the zero pointer means "unbounded" on that side.
type Filters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    models.TripStatus
	BrokerID  string
	LorryID   string
	DriverID  string
}

// ErrInvalidFilter is returned for filter values that cannot be interpreted.
// It is rejected before any store call is made.
var ErrInvalidFilter = errors.New("invalid filter")

const filterDateLayout = "2006-01-02"

// ParseFilters extracts and validates trip filters from request query
// parameters.
func ParseFilters(values url.Values) (Filters, error) {
	var f Filters

	if raw := values.Get("startDate"); raw != "" {
		day, err := time.ParseInLocation(filterDateLayout, raw, time.UTC)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: startDate %q is not YYYY-MM-DD", ErrInvalidFilter, raw)
		}
		f.StartDate = &day
	}
	if raw := values.Get("endDate"); raw != "" {
		day, err := time.ParseInLocation(filterDateLayout, raw, time.UTC)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: endDate %q is not YYYY-MM-DD", ErrInvalidFilter, raw)
		}
		f.EndDate = &day
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return Filters{}, fmt.Errorf("%w: endDate precedes startDate", ErrInvalidFilter)
	}

	if raw := values.Get("status"); raw != "" {
		status := models.TripStatus(raw)
		if !models.ValidTripStatus(status) {
			return Filters{}, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, raw)
		}
		f.Status = status
	}

	f.BrokerID = values.Get("brokerId")
	f.LorryID = values.Get("lorryId")
	f.DriverID = values.Get("driverId")
	return f, nil
}
