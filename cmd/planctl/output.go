// README: JSON output shaping for planctl results.
package main

import (
	"encoding/json"
	"os"

	"github.com/CodeCary80/obviousplan/internal/maps"
	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/modules/plan"
	"github.com/CodeCary80/obviousplan/internal/types"
)

type venueOutput struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	BudgetDisplay string   `json:"budget_display,omitempty"`
	ActivityType  string   `json:"activity_type,omitempty"`
	DurationMin   int      `json:"duration_minutes,omitempty"`
	IndoorOutdoor string   `json:"indoor_outdoor,omitempty"`
	DirectionsURL string   `json:"directions_url,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

type scheduleOutput struct {
	Hash                 string      `json:"hash"`
	Restaurant           venueOutput `json:"restaurant"`
	Activity             venueOutput `json:"activity"`
	Tip                  string      `json:"tip"`
	TotalEstimatedBudget float64     `json:"total_estimated_budget"`
	LocationBased        bool        `json:"location_based"`
	WasViewed            bool        `json:"was_viewed"`
	WasConfirmed         bool        `json:"was_confirmed"`
}

func venueOutputFrom(v catalog.Venue, origin *types.Point) venueOutput {
	out := venueOutput{
		ID:            v.ID,
		Name:          v.Name,
		Address:       v.Address,
		BudgetDisplay: v.BudgetDisplayText,
		ActivityType:  v.ActivityType,
		DurationMin:   v.EstimatedDurationMinutes,
		IndoorOutdoor: v.IndoorOutdoorStatus,
		Lat:           v.Lat,
		Lng:           v.Lng,
	}
	if v.HasLocation() {
		out.DirectionsURL = maps.DirectionsURLFromCoords(origin, v.Position())
	} else if v.Address != "" {
		out.DirectionsURL = maps.DirectionsURL("", v.Address)
	}
	return out
}

func printDetail(detail *plan.ScheduleDetail, locationBased bool, origin *types.Point) error {
	return printJSON(scheduleOutput{
		Hash:                 detail.Schedule.ScheduleHash,
		Restaurant:           venueOutputFrom(detail.Restaurant, origin),
		Activity:             venueOutputFrom(detail.Activity, origin),
		Tip:                  detail.Tip.Text,
		TotalEstimatedBudget: detail.Schedule.TotalEstimatedBudget,
		LocationBased:        locationBased,
		WasViewed:            detail.Schedule.WasViewed,
		WasConfirmed:         detail.Schedule.WasConfirmed,
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
