// README: Plan request and generated schedule aggregates.
package plan

import (
	"time"

	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/types"
)

// PlanRequest records a single user ask. It is created once per submission
// and never mutated; shuffle re-reads it to find alternatives.
type PlanRequest struct {
	ID               int64
	EnergyLevel      types.EnergyLevel
	BudgetPreference types.BudgetTag
	CompanyType      types.CompanyType
	UserLat          *float64
	UserLng          *float64
	LocationShared   bool
	SessionID        string
	CreatedAt        time.Time
}

// HasLocation reports whether the request opted into proximity matching and
// carries a full coordinate pair.
func (r PlanRequest) HasLocation() bool {
	return r.LocationShared && r.UserLat != nil && r.UserLng != nil
}

// Origin returns the user's coordinates; only valid when HasLocation.
func (r PlanRequest) Origin() types.Point {
	return types.Point{Lat: *r.UserLat, Lng: *r.UserLng}
}

// TagFilter returns the catalog filter matching this request.
func (r PlanRequest) TagFilter() catalog.TagFilter {
	return catalog.TagFilter{Budget: r.BudgetPreference, Energy: r.EnergyLevel, People: r.CompanyType}
}

// GeneratedSchedule is the durable output of plan generation. ScheduleHash
// is assigned at creation and never changes; restaurant and activity ids
// change only through shuffle.
type GeneratedSchedule struct {
	ID                   int64
	PlanRequestID        int64
	RestaurantID         int64
	ActivityID           int64
	TipID                int64
	TotalEstimatedBudget float64
	ScheduleHash         string
	WasViewed            bool
	WasConfirmed         bool
	CreatedAt            time.Time
}
