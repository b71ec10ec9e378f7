// README: Plan request and schedule store backed by PostgreSQL.
package plan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePlanRequest(ctx context.Context, r *PlanRequest) error {
	var lat, lng sql.NullFloat64
	if r.UserLat != nil {
		lat = sql.NullFloat64{Float64: *r.UserLat, Valid: true}
	}
	if r.UserLng != nil {
		lng = sql.NullFloat64{Float64: *r.UserLng, Valid: true}
	}
	return s.db.QueryRow(ctx, `
		INSERT INTO plan_requests (
			energy_level, budget_preference, company_type,
			user_latitude, user_longitude, location_shared, session_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		string(r.EnergyLevel),
		string(r.BudgetPreference),
		string(r.CompanyType),
		lat, lng,
		r.LocationShared,
		nullString(r.SessionID),
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *Store) PlanRequest(ctx context.Context, id int64) (PlanRequest, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, energy_level, budget_preference, company_type,
		       user_latitude, user_longitude, location_shared, session_id, created_at
		FROM plan_requests
		WHERE id = $1`, id,
	)

	var r PlanRequest
	var lat, lng sql.NullFloat64
	var sessionID sql.NullString
	err := row.Scan(
		&r.ID, &r.EnergyLevel, &r.BudgetPreference, &r.CompanyType,
		&lat, &lng, &r.LocationShared, &sessionID, &r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return PlanRequest{}, ErrScheduleNotFound
	}
	if err != nil {
		return PlanRequest{}, err
	}
	if lat.Valid {
		r.UserLat = &lat.Float64
	}
	if lng.Valid {
		r.UserLng = &lng.Float64
	}
	r.SessionID = sessionID.String
	return r, nil
}

func (s *Store) CreateSchedule(ctx context.Context, sched *GeneratedSchedule) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO generated_schedules (
			plan_request_id, restaurant_id, activity_id, tip_id,
			total_estimated_budget, schedule_hash, was_viewed, was_confirmed
		) VALUES ($1, $2, $3, $4, $5, $6, FALSE, FALSE)
		RETURNING id, created_at`,
		sched.PlanRequestID,
		sched.RestaurantID,
		sched.ActivityID,
		sched.TipID,
		sched.TotalEstimatedBudget,
		sched.ScheduleHash,
	).Scan(&sched.ID, &sched.CreatedAt)
}

func (s *Store) ScheduleByHash(ctx context.Context, hash string) (GeneratedSchedule, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, plan_request_id, restaurant_id, activity_id, tip_id,
		       total_estimated_budget, schedule_hash, was_viewed, was_confirmed, created_at
		FROM generated_schedules
		WHERE schedule_hash = $1`, hash,
	)

	var sched GeneratedSchedule
	err := row.Scan(
		&sched.ID, &sched.PlanRequestID, &sched.RestaurantID, &sched.ActivityID, &sched.TipID,
		&sched.TotalEstimatedBudget, &sched.ScheduleHash, &sched.WasViewed, &sched.WasConfirmed,
		&sched.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return GeneratedSchedule{}, ErrScheduleNotFound
	}
	if err != nil {
		return GeneratedSchedule{}, err
	}
	return sched, nil
}

func (s *Store) SetRestaurant(ctx context.Context, scheduleID, restaurantID int64) error {
	return s.updateColumn(ctx, scheduleID, "restaurant_id", restaurantID)
}

func (s *Store) SetActivity(ctx context.Context, scheduleID, activityID int64) error {
	return s.updateColumn(ctx, scheduleID, "activity_id", activityID)
}

func (s *Store) MarkViewed(ctx context.Context, scheduleID int64) error {
	return s.updateColumn(ctx, scheduleID, "was_viewed", true)
}

func (s *Store) MarkConfirmed(ctx context.Context, scheduleID int64) error {
	return s.updateColumn(ctx, scheduleID, "was_confirmed", true)
}

// updateColumn performs the single-row single-column updates the schedule
// lifecycle needs; each is idempotent and keyed by primary id.
func (s *Store) updateColumn(ctx context.Context, scheduleID int64, column string, value any) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE generated_schedules SET `+column+` = $1 WHERE id = $2`,
		value, scheduleID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
