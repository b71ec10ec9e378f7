// README: Matcher benchmark over a synthetic in-memory catalog; prints latency and pick spread.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/CodeCary80/obviousplan/internal/config"
	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/modules/plan"
	"github.com/CodeCary80/obviousplan/internal/types"
)

type benchConfig struct {
	Venues     int
	Iterations int
	Seed       int64
	WithCoords bool
}

func loadConfig() benchConfig {
	var cfg benchConfig
	flag.IntVar(&cfg.Venues, "venues", 500, "synthetic venues per kind")
	flag.IntVar(&cfg.Iterations, "iterations", 10000, "matcher calls per kind")
	flag.Int64Var(&cfg.Seed, "seed", 1, "RNG seed for catalog and matcher")
	flag.BoolVar(&cfg.WithCoords, "coords", true, "request with a shared location")
	flag.Parse()
	return cfg
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	cat := syntheticCatalog(cfg.Venues, cfg.Seed)
	matcher := plan.NewMatcher(cat, config.MatchingConfig{Seed: cfg.Seed})

	req := plan.PlanRequest{
		EnergyLevel:      types.EnergyMedium,
		BudgetPreference: types.BudgetModerate,
		CompanyType:      types.CompanySmallGroup,
	}
	if cfg.WithCoords {
		lat, lng := 43.6532, -79.3832
		req.UserLat, req.UserLng = &lat, &lng
		req.LocationShared = true
	}

	for _, kind := range []catalog.VenueKind{catalog.KindRestaurant, catalog.KindActivity} {
		latencies := make([]time.Duration, 0, cfg.Iterations)
		picks := make(map[int64]int)
		for i := 0; i < cfg.Iterations; i++ {
			start := time.Now()
			v, err := matcher.MatchVenue(ctx, req, kind, 0)
			if err != nil {
				fmt.Fprintf(os.Stderr, "match %s: %v\n", kind, err)
				os.Exit(1)
			}
			latencies = append(latencies, time.Since(start))
			picks[v.ID]++
		}
		report(string(kind), latencies, picks)
	}
}

func report(kind string, latencies []time.Duration, picks map[int64]int) {
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p := func(q float64) time.Duration {
		idx := int(q * float64(len(latencies)-1))
		return latencies[idx]
	}
	fmt.Printf("== %s ==\n", kind)
	fmt.Printf("calls=%d distinct_picks=%d\n", len(latencies), len(picks))
	fmt.Printf("p50=%v p95=%v p99=%v max=%v\n", p(0.50), p(0.95), p(0.99), latencies[len(latencies)-1])

	minCount, maxCount := -1, 0
	for _, c := range picks {
		if minCount < 0 || c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}
	fmt.Printf("pick_spread min=%d max=%d\n", minCount, maxCount)
}

// syntheticCatalog scatters venues around downtown Toronto; every third one
// has no coordinates so the non-location fallback path gets exercised too.
func syntheticCatalog(n int, seed int64) *catalog.MemCatalog {
	rng := rand.New(rand.NewSource(seed))
	cat := &catalog.MemCatalog{}

	addVenue := func(id int64, kind catalog.VenueKind) {
		v := catalog.Venue{
			ID:                id,
			Kind:              kind,
			Name:              fmt.Sprintf("%s-%d", kind, id),
			IsActive:          true,
			BudgetTag:         types.BudgetModerate,
			BudgetDisplayText: "$25-45",
			EnergyTag:         types.EnergyMedium,
			PeopleTag:         types.CompanySmallGroup,
		}
		if kind == catalog.KindActivity {
			v.ActivityType = "Arcade"
		}
		if id%3 != 0 {
			lat := 43.6532 + rng.Float64()*0.5 - 0.25
			lng := -79.3832 + rng.Float64()*0.5 - 0.25
			v.Lat, v.Lng = &lat, &lng
		}
		cat.Venues = append(cat.Venues, v)
	}

	for i := 0; i < n; i++ {
		addVenue(int64(i+1), catalog.KindRestaurant)
		addVenue(int64(i+1), catalog.KindActivity)
	}
	cat.Tips = append(cat.Tips, catalog.Tip{ID: 1, Text: "synthetic", IsGeneric: true, IsActive: true})
	return cat
}
