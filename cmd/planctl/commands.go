// README: planctl subcommand implementations.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/CodeCary80/obviousplan/internal/ai"
	"github.com/CodeCary80/obviousplan/internal/config"
	"github.com/CodeCary80/obviousplan/internal/infra"
	"github.com/CodeCary80/obviousplan/internal/maps"
	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/modules/plan"
	"github.com/CodeCary80/obviousplan/internal/types"
)

// wire connects the database and builds the plan service. Redis is optional;
// a connection failure only disables the catalog cache.
func wire(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*plan.Service, *catalog.Store, *pgxpool.Pool, error) {
	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, nil, nil, err
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		redisClient = nil
	}

	catalogStore := catalog.NewStore(db, redisClient, cfg.Redis.CacheTTL)
	planStore := plan.NewStore(db)
	matcher := plan.NewMatcher(catalogStore, cfg.Matching)
	svc := plan.NewService(planStore, catalogStore, matcher, logger)
	return svc, catalogStore, db, nil
}

func runGenerate(ctx context.Context, cfg config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	energy := fs.String("energy", "", "energy level: Low, Medium, High")
	budget := fs.String("budget", "", "budget preference: $ .. $$$$$")
	company := fs.String("company", "", "company type: Solo, Date, Small Group, Large Group")
	lat := fs.Float64("lat", math.NaN(), "user latitude")
	lng := fs.Float64("lng", math.NaN(), "user longitude")
	share := fs.Bool("share", false, "share location with the matcher")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := buildRequest(*energy, *budget, *company, *lat, *lng, *share)
	if err != nil {
		return err
	}

	svc, _, db, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	detail, err := svc.GenerateSchedule(ctx, req)
	if err != nil {
		return err
	}
	return printDetail(detail, req.HasLocation(), originOf(req))
}

func runFetch(ctx context.Context, cfg config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	hash := fs.String("hash", "", "schedule hash")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hash == "" {
		return fmt.Errorf("-hash is required")
	}

	svc, _, db, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	detail, err := svc.GetScheduleByHash(ctx, *hash)
	if err != nil {
		return err
	}
	return printDetail(detail, false, nil)
}

func runShuffle(ctx context.Context, cfg config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("shuffle", flag.ExitOnError)
	hash := fs.String("hash", "", "schedule hash")
	target := fs.String("target", "restaurant", "what to shuffle: restaurant or activity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hash == "" {
		return fmt.Errorf("-hash is required")
	}

	svc, _, db, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	var venue catalog.Venue
	switch *target {
	case "restaurant":
		venue, err = svc.ShuffleRestaurant(ctx, *hash)
	case "activity":
		venue, err = svc.ShuffleActivity(ctx, *hash)
	default:
		return fmt.Errorf("unknown shuffle target %q", *target)
	}
	if err != nil {
		return err
	}
	return printJSON(venueOutputFrom(venue, nil))
}

func runConfirm(ctx context.Context, cfg config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ExitOnError)
	hash := fs.String("hash", "", "schedule hash")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hash == "" {
		return fmt.Errorf("-hash is required")
	}

	svc, _, db, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := svc.ConfirmSchedule(ctx, *hash); err != nil {
		return err
	}
	fmt.Println("confirmed")
	return nil
}

func runSeed(ctx context.Context, cfg config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dir := fs.String("dir", "migrations", "directory with .sql files, applied in name order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .sql files under %s", *dir)
	}
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, string(raw)); err != nil {
			return fmt.Errorf("apply %s: %w", f, err)
		}
		logger.Info().Str("file", f).Msg("applied")
	}
	return nil
}

func runGeocode(ctx context.Context, cfg config.Config, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("geocode", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.Maps.APIKey == "" {
		return fmt.Errorf("GOOGLE_MAPS_API_KEY is required for geocode")
	}

	geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
	if err != nil {
		return err
	}

	_, catalogStore, db, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, kind := range []catalog.VenueKind{catalog.KindRestaurant, catalog.KindActivity} {
		venues, err := catalogStore.VenuesMissingCoordinates(ctx, kind)
		if err != nil {
			return err
		}
		for _, v := range venues {
			if v.Address == "" {
				logger.Warn().Int64("id", v.ID).Str("kind", string(kind)).Msg("no address, skipping")
				continue
			}
			p, err := geocoder.Geocode(ctx, v.Address)
			if err != nil {
				logger.Warn().Err(err).Int64("id", v.ID).Str("kind", string(kind)).Msg("geocode failed")
				continue
			}
			if err := catalogStore.UpdateCoordinates(ctx, kind, v.ID, p); err != nil {
				return err
			}
			logger.Info().
				Int64("id", v.ID).Str("kind", string(kind)).
				Float64("lat", p.Lat).Float64("lng", p.Lng).
				Msg("coordinates backfilled")
		}
	}
	return nil
}

func runDraftTips(ctx context.Context, cfg config.Config, _ zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("draft-tips", flag.ExitOnError)
	activityType := fs.String("activity-type", "", "activity type the tips apply to")
	budget := fs.String("budget", "", "budget tag: $ .. $$$$$")
	energy := fs.String("energy", "", "energy level: Low, Medium, High")
	count := fs.Int("count", 3, "number of tip candidates")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.AI.GeminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for draft-tips")
	}
	b := types.BudgetTag(*budget)
	e := types.EnergyLevel(*energy)
	if *activityType == "" || !b.Valid() || !e.Valid() {
		return fmt.Errorf("-activity-type, -budget, and -energy are required")
	}

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		return err
	}
	defer provider.Close()

	drafts, err := provider.DraftTips(ctx, *activityType, b, e, *count)
	if err != nil {
		return err
	}
	return printJSON(drafts)
}

func buildRequest(energy, budget, company string, lat, lng float64, share bool) (plan.PlanRequest, error) {
	req := plan.PlanRequest{
		EnergyLevel:      types.EnergyLevel(energy),
		BudgetPreference: types.BudgetTag(budget),
		CompanyType:      types.CompanyType(company),
		LocationShared:   share,
	}
	if !req.EnergyLevel.Valid() {
		return plan.PlanRequest{}, fmt.Errorf("invalid -energy %q", energy)
	}
	if !req.BudgetPreference.Valid() {
		return plan.PlanRequest{}, fmt.Errorf("invalid -budget %q", budget)
	}
	if !req.CompanyType.Valid() {
		return plan.PlanRequest{}, fmt.Errorf("invalid -company %q", company)
	}
	if !math.IsNaN(lat) && !math.IsNaN(lng) {
		p := types.Point{Lat: lat, Lng: lng}
		if !p.InRange() {
			return plan.PlanRequest{}, fmt.Errorf("coordinates out of range: %f,%f", lat, lng)
		}
		req.UserLat = &p.Lat
		req.UserLng = &p.Lng
	}
	return req, nil
}

func originOf(req plan.PlanRequest) *types.Point {
	if !req.HasLocation() {
		return nil
	}
	p := req.Origin()
	return &p
}
