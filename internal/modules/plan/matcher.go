// README: Candidate matcher; tag filtering, proximity tiers, uniform random selection.
package plan

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/CodeCary80/obviousplan/internal/config"
	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/types"
)

// Catalog is the read-only repository the matcher draws candidates from.
// Implemented by catalog.Store and, for tests and benchmarks, catalog.MemCatalog.
type Catalog interface {
	ActiveVenues(ctx context.Context, kind catalog.VenueKind, f catalog.TagFilter) ([]catalog.Venue, error)
	Venue(ctx context.Context, kind catalog.VenueKind, id int64) (catalog.Venue, error)
	TipsFor(ctx context.Context, activityType string, budget types.BudgetTag, energy types.EnergyLevel) ([]catalog.Tip, error)
	GenericTips(ctx context.Context) ([]catalog.Tip, error)
	Tip(ctx context.Context, id int64) (catalog.Tip, error)
}

const (
	// nearestPoolSize is how many of the closest venues the near tier
	// samples from, so repeated requests do not always land on the same spot.
	nearestPoolSize = 3

	defaultRestaurantNearKm     = 15
	defaultRestaurantExpandedKm = 30
	defaultActivityNearKm       = 20
	defaultActivityExpandedKm   = 40
)

// Matcher selects one venue or tip per query. Selection among equal-rank
// candidates is uniformly random; the RNG is seedable for reproducible
// distribution tests. Safe for concurrent use.
type Matcher struct {
	catalog Catalog
	cfg     config.MatchingConfig

	rng   *rand.Rand
	rngMu sync.Mutex
}

func NewMatcher(cat Catalog, cfg config.MatchingConfig) *Matcher {
	if cfg.RestaurantNearKm == 0 {
		cfg.RestaurantNearKm = defaultRestaurantNearKm
	}
	if cfg.RestaurantExpandedKm == 0 {
		cfg.RestaurantExpandedKm = defaultRestaurantExpandedKm
	}
	if cfg.ActivityNearKm == 0 {
		cfg.ActivityNearKm = defaultActivityNearKm
	}
	if cfg.ActivityExpandedKm == 0 {
		cfg.ActivityExpandedKm = defaultActivityExpandedKm
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Matcher{
		catalog: cat,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// MatchVenue returns one venue of the given kind matching the request's
// tags, best-effort nearest when the request shares a location. excludeID
// removes the current selection during shuffle; pass 0 for none.
//
// Location tiers: within the near radius the pick is uniform among the
// nearestPoolSize closest venues; within the expanded radius it is uniform
// over the whole tier. When both tiers are empty the pick falls back to all
// tag matches regardless of coordinates, so a tag-valid venue somewhere is
// never reported as no match.
func (m *Matcher) MatchVenue(ctx context.Context, req PlanRequest, kind catalog.VenueKind, excludeID int64) (catalog.Venue, error) {
	venues, err := m.catalog.ActiveVenues(ctx, kind, req.TagFilter())
	if err != nil {
		return catalog.Venue{}, err
	}
	if excludeID != 0 {
		venues = withoutID(venues, excludeID)
	}
	if len(venues) == 0 {
		return catalog.Venue{}, noMatchErr(kind)
	}

	if req.HasLocation() {
		origin := req.Origin()

		near := filterByProximity(venues, origin, m.nearRadiusKm(kind))
		if len(near) > 0 {
			pool := near
			if len(pool) > nearestPoolSize {
				pool = pool[:nearestPoolSize]
			}
			return pool[m.intn(len(pool))].Venue, nil
		}

		expanded := filterByProximity(venues, origin, m.expandedRadiusKm(kind))
		if len(expanded) > 0 {
			return expanded[m.intn(len(expanded))].Venue, nil
		}
	}

	return venues[m.intn(len(venues))], nil
}

// MatchTip returns a tip for the chosen activity: a specific tip whose
// activity type, budget and energy all match when one exists, otherwise a
// generic tip.
func (m *Matcher) MatchTip(ctx context.Context, req PlanRequest, activityType string) (catalog.Tip, error) {
	tips, err := m.catalog.TipsFor(ctx, activityType, req.BudgetPreference, req.EnergyLevel)
	if err != nil {
		return catalog.Tip{}, err
	}
	if len(tips) == 0 {
		tips, err = m.catalog.GenericTips(ctx)
		if err != nil {
			return catalog.Tip{}, err
		}
	}
	if len(tips) == 0 {
		return catalog.Tip{}, ErrNoTipAvailable
	}
	return tips[m.intn(len(tips))], nil
}

func (m *Matcher) nearRadiusKm(kind catalog.VenueKind) float64 {
	if kind == catalog.KindActivity {
		return m.cfg.ActivityNearKm
	}
	return m.cfg.RestaurantNearKm
}

func (m *Matcher) expandedRadiusKm(kind catalog.VenueKind) float64 {
	if kind == catalog.KindActivity {
		return m.cfg.ActivityExpandedKm
	}
	return m.cfg.RestaurantExpandedKm
}

func (m *Matcher) intn(n int) int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Intn(n)
}

func withoutID(venues []catalog.Venue, id int64) []catalog.Venue {
	out := venues[:0:0]
	for _, v := range venues {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}

func noMatchErr(kind catalog.VenueKind) error {
	if kind == catalog.KindActivity {
		return ErrNoMatchingActivity
	}
	return ErrNoMatchingRestaurant
}
