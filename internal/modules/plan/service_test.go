// README: Plan service tests (generation flow, all-or-nothing persistence, fetch and shuffle lifecycle).
package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/CodeCary80/obviousplan/internal/config"
	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/types"
)

// defaultCatalog has one matching restaurant, one matching activity, and one
// generic tip, each priced at a $25-40 display range (estimate 32.50).
func defaultCatalog() *catalog.MemCatalog {
	return &catalog.MemCatalog{
		Venues: []catalog.Venue{venueFixture(1), activityFixture(2, "Movie")},
		Tips:   []catalog.Tip{genericTipFixture(3)},
	}
}

func newTestService(store ScheduleStore, cat Catalog) *Service {
	m := NewMatcher(cat, config.MatchingConfig{Seed: 1})
	return NewService(store, cat, m, zerolog.Nop())
}

func TestGenerateSchedule(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, defaultCatalog())

	detail, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	if detail.Restaurant.ID != 1 || detail.Activity.ID != 2 || detail.Tip.ID != 3 {
		t.Errorf("unexpected selections: restaurant=%d activity=%d tip=%d",
			detail.Restaurant.ID, detail.Activity.ID, detail.Tip.ID)
	}
	if detail.Schedule.TotalEstimatedBudget != 65 {
		t.Errorf("total budget = %v, want 65 (32.50 + 32.50)", detail.Schedule.TotalEstimatedBudget)
	}
	if len(detail.Schedule.ScheduleHash) != 32 {
		t.Errorf("hash length = %d, want 32", len(detail.Schedule.ScheduleHash))
	}
	if detail.Schedule.WasViewed || detail.Schedule.WasConfirmed {
		t.Error("fresh schedule should be unviewed and unconfirmed")
	}
	if detail.Schedule.ID == 0 || detail.Schedule.PlanRequestID == 0 {
		t.Error("schedule and plan request should be persisted with ids")
	}
}

func TestGenerateSchedule_AllOrNothing(t *testing.T) {
	cases := []struct {
		name    string
		catalog *catalog.MemCatalog
		wantErr error
	}{
		{
			name: "no restaurant",
			catalog: &catalog.MemCatalog{
				Venues: []catalog.Venue{activityFixture(2, "Movie")},
				Tips:   []catalog.Tip{genericTipFixture(3)},
			},
			wantErr: ErrNoMatchingRestaurant,
		},
		{
			name: "no activity",
			catalog: &catalog.MemCatalog{
				Venues: []catalog.Venue{venueFixture(1)},
				Tips:   []catalog.Tip{genericTipFixture(3)},
			},
			wantErr: ErrNoMatchingActivity,
		},
		{
			name: "no tip",
			catalog: &catalog.MemCatalog{
				Venues: []catalog.Venue{venueFixture(1), activityFixture(2, "Movie")},
			},
			wantErr: ErrNoTipAvailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			svc := newTestService(store, tc.catalog)

			_, err := svc.GenerateSchedule(context.Background(), requestFixture())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if store.scheduleCount() != 0 || len(store.requests) != 0 {
				t.Errorf("failed generation wrote state: %d schedules, %d requests",
					store.scheduleCount(), len(store.requests))
			}
		})
	}
}

func TestGenerateSchedule_HashesUnique(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, defaultCatalog())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		detail, err := svc.GenerateSchedule(context.Background(), requestFixture())
		if err != nil {
			t.Fatalf("GenerateSchedule: %v", err)
		}
		if seen[detail.Schedule.ScheduleHash] {
			t.Fatalf("duplicate hash %q", detail.Schedule.ScheduleHash)
		}
		seen[detail.Schedule.ScheduleHash] = true
	}
}

func TestGetScheduleByHash_MarksViewedOnce(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, defaultCatalog())

	generated, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	first, err := svc.GetScheduleByHash(context.Background(), generated.Schedule.ScheduleHash)
	if err != nil {
		t.Fatalf("GetScheduleByHash: %v", err)
	}
	if !first.Schedule.WasViewed {
		t.Error("first fetch should report the schedule as viewed")
	}

	second, err := svc.GetScheduleByHash(context.Background(), generated.Schedule.ScheduleHash)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if !second.Schedule.WasViewed {
		t.Error("viewed flag should persist")
	}
	if second.Restaurant.ID != first.Restaurant.ID || second.Tip.ID != first.Tip.ID {
		t.Error("repeated fetches should return the same selections")
	}
}

func TestGetScheduleByHash_NotFound(t *testing.T) {
	svc := newTestService(newMemStore(), defaultCatalog())

	_, err := svc.GetScheduleByHash(context.Background(), "0000000000000000bbbbbbbbbbbbbbbb")
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("err = %v, want ErrScheduleNotFound", err)
	}
}

func TestShuffleRestaurant(t *testing.T) {
	cat := defaultCatalog()
	cat.Venues = append(cat.Venues, venueFixture(4))

	store := newMemStore()
	svc := newTestService(store, cat)

	generated, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	before := generated.Schedule

	alt, err := svc.ShuffleRestaurant(context.Background(), before.ScheduleHash)
	if err != nil {
		t.Fatalf("ShuffleRestaurant: %v", err)
	}
	if alt.ID == before.RestaurantID {
		t.Errorf("shuffle returned the current restaurant %d", alt.ID)
	}

	after, err := store.ScheduleByHash(context.Background(), before.ScheduleHash)
	if err != nil {
		t.Fatalf("ScheduleByHash: %v", err)
	}
	if after.RestaurantID != alt.ID {
		t.Errorf("stored restaurant = %d, want %d", after.RestaurantID, alt.ID)
	}
	if after.ActivityID != before.ActivityID || after.TipID != before.TipID {
		t.Error("shuffle changed the activity or tip")
	}
	if after.ScheduleHash != before.ScheduleHash || after.TotalEstimatedBudget != before.TotalEstimatedBudget {
		t.Error("shuffle changed the hash or budget total")
	}
}

func TestShuffleActivity(t *testing.T) {
	cat := defaultCatalog()
	cat.Venues = append(cat.Venues, activityFixture(4, "Bowling"))

	store := newMemStore()
	svc := newTestService(store, cat)

	generated, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	before := generated.Schedule

	alt, err := svc.ShuffleActivity(context.Background(), before.ScheduleHash)
	if err != nil {
		t.Fatalf("ShuffleActivity: %v", err)
	}
	if alt.ID == before.ActivityID {
		t.Errorf("shuffle returned the current activity %d", alt.ID)
	}

	after, err := store.ScheduleByHash(context.Background(), before.ScheduleHash)
	if err != nil {
		t.Fatalf("ScheduleByHash: %v", err)
	}
	if after.ActivityID != alt.ID {
		t.Errorf("stored activity = %d, want %d", after.ActivityID, alt.ID)
	}
	if after.RestaurantID != before.RestaurantID || after.TipID != before.TipID {
		t.Error("shuffle changed the restaurant or tip")
	}
}

// A shuffle with no alternative leaves the stored selection alone.
func TestShuffle_NoAlternative(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, defaultCatalog())

	generated, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	before := generated.Schedule

	if _, err := svc.ShuffleRestaurant(context.Background(), before.ScheduleHash); !errors.Is(err, ErrNoAlternativeFound) {
		t.Errorf("restaurant shuffle err = %v, want ErrNoAlternativeFound", err)
	}
	if _, err := svc.ShuffleActivity(context.Background(), before.ScheduleHash); !errors.Is(err, ErrNoAlternativeFound) {
		t.Errorf("activity shuffle err = %v, want ErrNoAlternativeFound", err)
	}

	after, err := store.ScheduleByHash(context.Background(), before.ScheduleHash)
	if err != nil {
		t.Fatalf("ScheduleByHash: %v", err)
	}
	if after.RestaurantID != before.RestaurantID || after.ActivityID != before.ActivityID {
		t.Error("failed shuffle mutated the stored selections")
	}
}

func TestConfirmSchedule(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, defaultCatalog())

	generated, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}

	if err := svc.ConfirmSchedule(context.Background(), generated.Schedule.ScheduleHash); err != nil {
		t.Fatalf("ConfirmSchedule: %v", err)
	}

	after, err := store.ScheduleByHash(context.Background(), generated.Schedule.ScheduleHash)
	if err != nil {
		t.Fatalf("ScheduleByHash: %v", err)
	}
	if !after.WasConfirmed {
		t.Error("schedule should be confirmed")
	}

	if err := svc.ConfirmSchedule(context.Background(), "0000000000000000bbbbbbbbbbbbbbbb"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("confirm unknown hash err = %v, want ErrScheduleNotFound", err)
	}
}

// Generation keeps working when a matched tip exists only for some activity
// types; the tip follows the chosen activity.
func TestGenerateSchedule_TipFollowsActivityType(t *testing.T) {
	cat := &catalog.MemCatalog{
		Venues: []catalog.Venue{venueFixture(1), activityFixture(2, "Bowling")},
		Tips: []catalog.Tip{
			specificTipFixture(3, "Bowling", types.BudgetCheap, types.EnergyMedium),
			specificTipFixture(4, "Movie", types.BudgetCheap, types.EnergyMedium),
		},
	}
	svc := newTestService(newMemStore(), cat)

	detail, err := svc.GenerateSchedule(context.Background(), requestFixture())
	if err != nil {
		t.Fatalf("GenerateSchedule: %v", err)
	}
	if detail.Tip.ID != 3 {
		t.Errorf("tip = %d, want the Bowling-specific tip 3", detail.Tip.ID)
	}
}

func TestFindAlternative_ErrorMapping(t *testing.T) {
	svc := newTestService(newMemStore(), defaultCatalog())

	if _, err := svc.FindAlternativeRestaurant(context.Background(), requestFixture(), 1); !errors.Is(err, ErrNoAlternativeFound) {
		t.Errorf("restaurant err = %v, want ErrNoAlternativeFound", err)
	}
	if _, err := svc.FindAlternativeActivity(context.Background(), requestFixture(), 2); !errors.Is(err, ErrNoAlternativeFound) {
		t.Errorf("activity err = %v, want ErrNoAlternativeFound", err)
	}
}
