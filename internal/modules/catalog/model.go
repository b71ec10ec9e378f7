// README: Catalog entries (restaurants, activities, tips) read by the plan engine.
package catalog

import (
	"time"

	"github.com/CodeCary80/obviousplan/internal/types"
)

type VenueKind string

const (
	KindRestaurant VenueKind = "restaurant"
	KindActivity   VenueKind = "activity"
)

// Venue is the shared shape for restaurant and activity catalog entries.
// Restaurants leave the activity-specific fields zero.
type Venue struct {
	ID       int64
	Kind     VenueKind
	Name     string
	Address  string
	Lat      *float64
	Lng      *float64
	IsActive bool

	BudgetTag         types.BudgetTag
	BudgetDisplayText string
	EnergyTag         types.EnergyLevel
	PeopleTag         types.CompanyType
	PeopleDisplayText string

	Description string
	WebsiteURL  string
	BookingURL  string

	// Restaurant only.
	CuisineType string

	// Activity only.
	ActivityType             string
	EstimatedDurationMinutes int
	IndoorOutdoorStatus      string

	CreatedAt time.Time
}

// HasLocation reports whether the venue carries a full coordinate pair.
func (v Venue) HasLocation() bool {
	return v.Lat != nil && v.Lng != nil
}

// Position returns the venue coordinates; only valid when HasLocation.
func (v Venue) Position() types.Point {
	return types.Point{Lat: *v.Lat, Lng: *v.Lng}
}

// TagFilter selects venues whose three tags all match.
type TagFilter struct {
	Budget types.BudgetTag
	Energy types.EnergyLevel
	People types.CompanyType
}

// Matches reports whether the venue satisfies the filter. Inactive venues
// never match.
func (f TagFilter) Matches(v Venue) bool {
	return v.IsActive &&
		v.BudgetTag == f.Budget &&
		v.EnergyTag == f.Energy &&
		v.PeopleTag == f.People
}

// Tip is an advisory text with optional applicability filters. Generic tips
// apply to any plan.
type Tip struct {
	ID                    int64
	Text                  string
	AppliesToActivityType *string
	AppliesToBudgetTag    *types.BudgetTag
	AppliesToEnergyTag    *types.EnergyLevel
	IsGeneric             bool
	IsActive              bool
}
