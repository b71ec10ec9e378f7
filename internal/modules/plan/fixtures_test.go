package plan

import (
	"context"
	"fmt"
	"sync"

	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/types"
)

// venueFixture returns an active restaurant with the default test tags and
// no coordinates.
func venueFixture(id int64) catalog.Venue {
	return catalog.Venue{
		ID:                id,
		Kind:              catalog.KindRestaurant,
		Name:              fmt.Sprintf("venue-%d", id),
		IsActive:          true,
		BudgetTag:         types.BudgetCheap,
		BudgetDisplayText: "$25-40",
		EnergyTag:         types.EnergyMedium,
		PeopleTag:         types.CompanySmallGroup,
	}
}

// venueAt pins a fixture venue to coordinates.
func venueAt(id int64, lat, lng float64) catalog.Venue {
	v := venueFixture(id)
	v.Lat, v.Lng = &lat, &lng
	return v
}

// activityFixture returns an active activity with the default test tags.
func activityFixture(id int64, activityType string) catalog.Venue {
	v := venueFixture(id)
	v.Kind = catalog.KindActivity
	v.ActivityType = activityType
	return v
}

func genericTipFixture(id int64) catalog.Tip {
	return catalog.Tip{
		ID:        id,
		Text:      fmt.Sprintf("tip-%d", id),
		IsGeneric: true,
		IsActive:  true,
	}
}

func specificTipFixture(id int64, activityType string, budget types.BudgetTag, energy types.EnergyLevel) catalog.Tip {
	return catalog.Tip{
		ID:                    id,
		Text:                  fmt.Sprintf("tip-%d", id),
		AppliesToActivityType: &activityType,
		AppliesToBudgetTag:    &budget,
		AppliesToEnergyTag:    &energy,
		IsActive:              true,
	}
}

// requestFixture matches the default venue fixtures, no location.
func requestFixture() PlanRequest {
	return PlanRequest{
		EnergyLevel:      types.EnergyMedium,
		BudgetPreference: types.BudgetCheap,
		CompanyType:      types.CompanySmallGroup,
	}
}

func requestAt(lat, lng float64) PlanRequest {
	req := requestFixture()
	req.UserLat, req.UserLng = &lat, &lng
	req.LocationShared = true
	return req
}

// memStore is an in-memory ScheduleStore double.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	requests  map[int64]PlanRequest
	schedules map[int64]*GeneratedSchedule
}

func newMemStore() *memStore {
	return &memStore{
		requests:  make(map[int64]PlanRequest),
		schedules: make(map[int64]*GeneratedSchedule),
	}
}

func (m *memStore) CreatePlanRequest(_ context.Context, r *PlanRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.requests[r.ID] = *r
	return nil
}

func (m *memStore) PlanRequest(_ context.Context, id int64) (PlanRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return PlanRequest{}, ErrScheduleNotFound
	}
	return r, nil
}

func (m *memStore) CreateSchedule(_ context.Context, s *GeneratedSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	clone := *s
	m.schedules[s.ID] = &clone
	return nil
}

func (m *memStore) ScheduleByHash(_ context.Context, hash string) (GeneratedSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.schedules {
		if s.ScheduleHash == hash {
			return *s, nil
		}
	}
	return GeneratedSchedule{}, ErrScheduleNotFound
}

func (m *memStore) SetRestaurant(_ context.Context, scheduleID, restaurantID int64) error {
	return m.update(scheduleID, func(s *GeneratedSchedule) { s.RestaurantID = restaurantID })
}

func (m *memStore) SetActivity(_ context.Context, scheduleID, activityID int64) error {
	return m.update(scheduleID, func(s *GeneratedSchedule) { s.ActivityID = activityID })
}

func (m *memStore) MarkViewed(_ context.Context, scheduleID int64) error {
	return m.update(scheduleID, func(s *GeneratedSchedule) { s.WasViewed = true })
}

func (m *memStore) MarkConfirmed(_ context.Context, scheduleID int64) error {
	return m.update(scheduleID, func(s *GeneratedSchedule) { s.WasConfirmed = true })
}

func (m *memStore) update(scheduleID int64, fn func(*GeneratedSchedule)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[scheduleID]
	if !ok {
		return ErrScheduleNotFound
	}
	fn(s)
	return nil
}

func (m *memStore) scheduleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.schedules)
}
