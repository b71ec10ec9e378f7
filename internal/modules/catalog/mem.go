// README: In-memory catalog used by unit tests and the matcher benchmark.
package catalog

import (
	"context"

	"github.com/CodeCary80/obviousplan/internal/types"
)

// MemCatalog serves catalog queries from slices, mirroring the SQL store's
// filter semantics. Not safe for concurrent mutation.
type MemCatalog struct {
	Venues []Venue
	Tips   []Tip
}

func (m *MemCatalog) ActiveVenues(_ context.Context, kind VenueKind, f TagFilter) ([]Venue, error) {
	var out []Venue
	for _, v := range m.Venues {
		if v.Kind == kind && f.Matches(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *MemCatalog) Venue(_ context.Context, kind VenueKind, id int64) (Venue, error) {
	for _, v := range m.Venues {
		if v.Kind == kind && v.ID == id {
			return v, nil
		}
	}
	return Venue{}, ErrVenueNotFound
}

func (m *MemCatalog) TipsFor(_ context.Context, activityType string, budget types.BudgetTag, energy types.EnergyLevel) ([]Tip, error) {
	var out []Tip
	for _, t := range m.Tips {
		if !t.IsActive || t.IsGeneric {
			continue
		}
		if t.AppliesToActivityType == nil || *t.AppliesToActivityType != activityType {
			continue
		}
		if t.AppliesToBudgetTag == nil || *t.AppliesToBudgetTag != budget {
			continue
		}
		if t.AppliesToEnergyTag == nil || *t.AppliesToEnergyTag != energy {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MemCatalog) GenericTips(_ context.Context) ([]Tip, error) {
	var out []Tip
	for _, t := range m.Tips {
		if t.IsActive && t.IsGeneric {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemCatalog) Tip(_ context.Context, id int64) (Tip, error) {
	for _, t := range m.Tips {
		if t.ID == id {
			return t, nil
		}
	}
	return Tip{}, ErrTipNotFound
}
