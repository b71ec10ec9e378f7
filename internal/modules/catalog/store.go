// README: Catalog store backed by PostgreSQL with an optional Redis read cache.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/CodeCary80/obviousplan/internal/types"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrTipNotFound   = errors.New("tip not found")
)

// Store reads catalog rows. Catalog writes happen through the admin
// subsystem, so cached query results only go stale within the TTL.
type Store struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewStore creates a catalog store. redis may be nil to disable caching.
func NewStore(db *pgxpool.Pool, redis *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{db: db, redis: redis, cacheTTL: cacheTTL}
}

const restaurantColumns = `
	id, name, address, latitude, longitude, cuisine_type, description_snippet,
	budget_tag, budget_display_text, energy_tag, people_tag, people_display_text,
	website_url, booking_url, is_active, created_at`

const activityColumns = `
	id, activity_title, activity_type, address, latitude, longitude, description,
	budget_tag, budget_display_text, energy_tag, people_tag, people_display_text,
	estimated_duration_minutes, indoor_outdoor_status,
	website_url, booking_url, is_active, created_at`

func tableFor(kind VenueKind) string {
	if kind == KindActivity {
		return "activities"
	}
	return "restaurants"
}

// ActiveVenues returns active venues of the given kind whose three tags all
// equal the filter's, in catalog (id) order.
func (s *Store) ActiveVenues(ctx context.Context, kind VenueKind, f TagFilter) ([]Venue, error) {
	cacheKey := fmt.Sprintf("catalog:%s:%s|%s|%s", kind, f.Budget, f.Energy, f.People)
	if venues, ok := s.cacheGet(ctx, cacheKey); ok {
		return venues, nil
	}

	var rows pgx.Rows
	var err error
	if kind == KindActivity {
		rows, err = s.db.Query(ctx, `
			SELECT `+activityColumns+`
			FROM activities
			WHERE is_active = TRUE AND budget_tag = $1 AND energy_tag = $2 AND people_tag = $3
			ORDER BY id`,
			string(f.Budget), string(f.Energy), string(f.People),
		)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT `+restaurantColumns+`
			FROM restaurants
			WHERE is_active = TRUE AND budget_tag = $1 AND energy_tag = $2 AND people_tag = $3
			ORDER BY id`,
			string(f.Budget), string(f.Energy), string(f.People),
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows, kind)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, venues)
	return venues, nil
}

// Venue fetches a single venue by id.
func (s *Store) Venue(ctx context.Context, kind VenueKind, id int64) (Venue, error) {
	columns := restaurantColumns
	if kind == KindActivity {
		columns = activityColumns
	}
	row := s.db.QueryRow(ctx, `SELECT `+columns+` FROM `+tableFor(kind)+` WHERE id = $1`, id)
	v, err := scanVenue(row, kind)
	if errors.Is(err, pgx.ErrNoRows) {
		return Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return Venue{}, err
	}
	return v, nil
}

// TipsFor returns active non-generic tips applying to the given activity
// type, budget and energy.
func (s *Store) TipsFor(ctx context.Context, activityType string, budget types.BudgetTag, energy types.EnergyLevel) ([]Tip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, tip_text, applies_to_activity_type, applies_to_budget_tag,
		       applies_to_energy_tag, is_generic, is_active
		FROM tips
		WHERE is_active = TRUE AND is_generic = FALSE
		  AND applies_to_activity_type = $1
		  AND applies_to_budget_tag = $2
		  AND applies_to_energy_tag = $3
		ORDER BY id`,
		activityType, string(budget), string(energy),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTips(rows)
}

// GenericTips returns all active generic tips.
func (s *Store) GenericTips(ctx context.Context) ([]Tip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, tip_text, applies_to_activity_type, applies_to_budget_tag,
		       applies_to_energy_tag, is_generic, is_active
		FROM tips
		WHERE is_active = TRUE AND is_generic = TRUE
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTips(rows)
}

// Tip fetches a single tip by id.
func (s *Store) Tip(ctx context.Context, id int64) (Tip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, tip_text, applies_to_activity_type, applies_to_budget_tag,
		       applies_to_energy_tag, is_generic, is_active
		FROM tips WHERE id = $1`, id,
	)
	t, err := scanTip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Tip{}, ErrTipNotFound
	}
	if err != nil {
		return Tip{}, err
	}
	return t, nil
}

// VenuesMissingCoordinates lists active venues without a coordinate pair,
// for the geocode backfill tool.
func (s *Store) VenuesMissingCoordinates(ctx context.Context, kind VenueKind) ([]Venue, error) {
	columns := restaurantColumns
	if kind == KindActivity {
		columns = activityColumns
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+columns+`
		FROM `+tableFor(kind)+`
		WHERE is_active = TRUE AND (latitude IS NULL OR longitude IS NULL)
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows, kind)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// UpdateCoordinates sets a venue's coordinate pair (geocode backfill only;
// the plan engine never writes to the catalog).
func (s *Store) UpdateCoordinates(ctx context.Context, kind VenueKind, id int64, p types.Point) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE `+tableFor(kind)+` SET latitude = $1, longitude = $2 WHERE id = $3`,
		p.Lat, p.Lng, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func scanVenue(row pgx.Row, kind VenueKind) (Venue, error) {
	v := Venue{Kind: kind}
	var lat, lng sql.NullFloat64
	var address, description, website, booking sql.NullString

	if kind == KindActivity {
		var duration sql.NullInt64
		var indoorOutdoor sql.NullString
		err := row.Scan(
			&v.ID, &v.Name, &v.ActivityType, &address, &lat, &lng, &description,
			&v.BudgetTag, &v.BudgetDisplayText, &v.EnergyTag, &v.PeopleTag, &v.PeopleDisplayText,
			&duration, &indoorOutdoor,
			&website, &booking, &v.IsActive, &v.CreatedAt,
		)
		if err != nil {
			return Venue{}, err
		}
		v.EstimatedDurationMinutes = int(duration.Int64)
		v.IndoorOutdoorStatus = indoorOutdoor.String
	} else {
		var cuisine sql.NullString
		err := row.Scan(
			&v.ID, &v.Name, &address, &lat, &lng, &cuisine, &description,
			&v.BudgetTag, &v.BudgetDisplayText, &v.EnergyTag, &v.PeopleTag, &v.PeopleDisplayText,
			&website, &booking, &v.IsActive, &v.CreatedAt,
		)
		if err != nil {
			return Venue{}, err
		}
		v.CuisineType = cuisine.String
	}

	v.Address = address.String
	v.Description = description.String
	v.WebsiteURL = website.String
	v.BookingURL = booking.String
	if lat.Valid && lng.Valid {
		v.Lat = &lat.Float64
		v.Lng = &lng.Float64
	}
	return v, nil
}

func scanTip(row pgx.Row) (Tip, error) {
	var t Tip
	var activityType, budget, energy sql.NullString
	err := row.Scan(&t.ID, &t.Text, &activityType, &budget, &energy, &t.IsGeneric, &t.IsActive)
	if err != nil {
		return Tip{}, err
	}
	if activityType.Valid {
		t.AppliesToActivityType = &activityType.String
	}
	if budget.Valid {
		b := types.BudgetTag(budget.String)
		t.AppliesToBudgetTag = &b
	}
	if energy.Valid {
		e := types.EnergyLevel(energy.String)
		t.AppliesToEnergyTag = &e
	}
	return t, nil
}

func collectTips(rows pgx.Rows) ([]Tip, error) {
	var tips []Tip
	for rows.Next() {
		t, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

func (s *Store) cacheGet(ctx context.Context, key string) ([]Venue, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var venues []Venue
	if err := json.Unmarshal(raw, &venues); err != nil {
		return nil, false
	}
	return venues, true
}

func (s *Store) cacheSet(ctx context.Context, key string, venues []Venue) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(venues)
	if err != nil {
		return
	}
	// Cache failures are invisible to callers; the DB remains authoritative.
	_ = s.redis.Set(ctx, key, raw, s.cacheTTL).Err()
}
