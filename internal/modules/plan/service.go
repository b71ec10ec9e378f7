// README: Plan service orchestrates matching, budget totals, and schedule persistence.
package plan

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
)

var (
	ErrNoMatchingRestaurant = errors.New("no matching restaurant")
	ErrNoMatchingActivity   = errors.New("no matching activity")
	ErrNoTipAvailable       = errors.New("no tip available")
	ErrNoAlternativeFound   = errors.New("no alternative found")
	ErrScheduleNotFound     = errors.New("schedule not found")
)

// ScheduleStore persists plan requests and generated schedules. Implemented
// by Store; tests use an in-memory double.
type ScheduleStore interface {
	CreatePlanRequest(ctx context.Context, r *PlanRequest) error
	PlanRequest(ctx context.Context, id int64) (PlanRequest, error)
	CreateSchedule(ctx context.Context, s *GeneratedSchedule) error
	ScheduleByHash(ctx context.Context, hash string) (GeneratedSchedule, error)
	SetRestaurant(ctx context.Context, scheduleID, restaurantID int64) error
	SetActivity(ctx context.Context, scheduleID, activityID int64) error
	MarkViewed(ctx context.Context, scheduleID int64) error
	MarkConfirmed(ctx context.Context, scheduleID int64) error
}

// ScheduleDetail is a schedule with its referenced catalog entries loaded.
type ScheduleDetail struct {
	Schedule   GeneratedSchedule
	Restaurant catalog.Venue
	Activity   catalog.Venue
	Tip        catalog.Tip
}

type Service struct {
	store   ScheduleStore
	catalog Catalog
	matcher *Matcher
	logger  zerolog.Logger
}

func NewService(store ScheduleStore, cat Catalog, matcher *Matcher, logger zerolog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: cat,
		matcher: matcher,
		logger:  logger.With().Str("component", "plan").Logger(),
	}
}

// GenerateSchedule matches a restaurant, an activity, and a tip for the
// request and persists the result. Generation is all-or-nothing: if any of
// the three matches fails, nothing is written.
func (s *Service) GenerateSchedule(ctx context.Context, req PlanRequest) (*ScheduleDetail, error) {
	restaurant, err := s.matcher.MatchVenue(ctx, req, catalog.KindRestaurant, 0)
	if err != nil {
		return nil, err
	}
	activity, err := s.matcher.MatchVenue(ctx, req, catalog.KindActivity, 0)
	if err != nil {
		return nil, err
	}
	// Tip matching depends on the chosen activity's type.
	tip, err := s.matcher.MatchTip(ctx, req, activity.ActivityType)
	if err != nil {
		return nil, err
	}

	total := EstimateBudget(restaurant.BudgetDisplayText, restaurant.BudgetTag) +
		EstimateBudget(activity.BudgetDisplayText, activity.BudgetTag)

	hash, err := newScheduleHash()
	if err != nil {
		return nil, err
	}

	if err := s.store.CreatePlanRequest(ctx, &req); err != nil {
		return nil, fmt.Errorf("persist plan request: %w", err)
	}
	schedule := GeneratedSchedule{
		PlanRequestID:        req.ID,
		RestaurantID:         restaurant.ID,
		ActivityID:           activity.ID,
		TipID:                tip.ID,
		TotalEstimatedBudget: total,
		ScheduleHash:         hash,
	}
	if err := s.store.CreateSchedule(ctx, &schedule); err != nil {
		return nil, fmt.Errorf("persist schedule: %w", err)
	}

	s.logger.Info().
		Str("hash", schedule.ScheduleHash).
		Int64("restaurant_id", restaurant.ID).
		Int64("activity_id", activity.ID).
		Int64("tip_id", tip.ID).
		Float64("total_budget", total).
		Bool("location_based", req.HasLocation()).
		Msg("schedule generated")

	return &ScheduleDetail{
		Schedule:   schedule,
		Restaurant: restaurant,
		Activity:   activity,
		Tip:        tip,
	}, nil
}

// FindAlternativeRestaurant re-runs restaurant matching for the request,
// excluding the current choice. It never mutates stored state.
func (s *Service) FindAlternativeRestaurant(ctx context.Context, req PlanRequest, excludeID int64) (catalog.Venue, error) {
	v, err := s.matcher.MatchVenue(ctx, req, catalog.KindRestaurant, excludeID)
	if errors.Is(err, ErrNoMatchingRestaurant) {
		return catalog.Venue{}, ErrNoAlternativeFound
	}
	return v, err
}

// FindAlternativeActivity re-runs activity matching for the request,
// excluding the current choice. It never mutates stored state.
func (s *Service) FindAlternativeActivity(ctx context.Context, req PlanRequest, excludeID int64) (catalog.Venue, error) {
	v, err := s.matcher.MatchVenue(ctx, req, catalog.KindActivity, excludeID)
	if errors.Is(err, ErrNoMatchingActivity) {
		return catalog.Venue{}, ErrNoAlternativeFound
	}
	return v, err
}

// GetScheduleByHash fetches a schedule by its shareable hash and marks it
// viewed on first retrieval.
func (s *Service) GetScheduleByHash(ctx context.Context, hash string) (*ScheduleDetail, error) {
	schedule, err := s.store.ScheduleByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !schedule.WasViewed {
		if err := s.store.MarkViewed(ctx, schedule.ID); err != nil {
			return nil, err
		}
		schedule.WasViewed = true
	}
	return s.loadDetail(ctx, schedule)
}

// ShuffleRestaurant swaps the schedule's restaurant for an alternative
// matching the original request. Only the restaurant reference changes; the
// hash, flags, and budget total stay as generated. When no alternative
// exists the current selection is left untouched.
func (s *Service) ShuffleRestaurant(ctx context.Context, hash string) (catalog.Venue, error) {
	schedule, err := s.store.ScheduleByHash(ctx, hash)
	if err != nil {
		return catalog.Venue{}, err
	}
	req, err := s.store.PlanRequest(ctx, schedule.PlanRequestID)
	if err != nil {
		return catalog.Venue{}, err
	}
	alt, err := s.FindAlternativeRestaurant(ctx, req, schedule.RestaurantID)
	if err != nil {
		return catalog.Venue{}, err
	}
	if err := s.store.SetRestaurant(ctx, schedule.ID, alt.ID); err != nil {
		return catalog.Venue{}, err
	}
	s.logger.Info().Str("hash", hash).Int64("restaurant_id", alt.ID).Msg("restaurant shuffled")
	return alt, nil
}

// ShuffleActivity swaps the schedule's activity for an alternative matching
// the original request, under the same rules as ShuffleRestaurant.
func (s *Service) ShuffleActivity(ctx context.Context, hash string) (catalog.Venue, error) {
	schedule, err := s.store.ScheduleByHash(ctx, hash)
	if err != nil {
		return catalog.Venue{}, err
	}
	req, err := s.store.PlanRequest(ctx, schedule.PlanRequestID)
	if err != nil {
		return catalog.Venue{}, err
	}
	alt, err := s.FindAlternativeActivity(ctx, req, schedule.ActivityID)
	if err != nil {
		return catalog.Venue{}, err
	}
	if err := s.store.SetActivity(ctx, schedule.ID, alt.ID); err != nil {
		return catalog.Venue{}, err
	}
	s.logger.Info().Str("hash", hash).Int64("activity_id", alt.ID).Msg("activity shuffled")
	return alt, nil
}

// ConfirmSchedule marks the schedule confirmed. Confirmation is terminal
// for the viewed/confirmed flags, though shuffle stays available.
func (s *Service) ConfirmSchedule(ctx context.Context, hash string) error {
	schedule, err := s.store.ScheduleByHash(ctx, hash)
	if err != nil {
		return err
	}
	if err := s.store.MarkConfirmed(ctx, schedule.ID); err != nil {
		return err
	}
	s.logger.Info().Str("hash", hash).Msg("schedule confirmed")
	return nil
}

func (s *Service) loadDetail(ctx context.Context, schedule GeneratedSchedule) (*ScheduleDetail, error) {
	restaurant, err := s.catalog.Venue(ctx, catalog.KindRestaurant, schedule.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	activity, err := s.catalog.Venue(ctx, catalog.KindActivity, schedule.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	tip, err := s.catalog.Tip(ctx, schedule.TipID)
	if err != nil {
		return nil, fmt.Errorf("load tip: %w", err)
	}
	return &ScheduleDetail{
		Schedule:   schedule,
		Restaurant: restaurant,
		Activity:   activity,
		Tip:        tip,
	}, nil
}

// newScheduleHash returns a 32-character opaque identifier for sharing a
// generated schedule.
func newScheduleHash() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate schedule hash: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
