package ai

import (
	"context"

	"github.com/CodeCary80/obviousplan/internal/types"
)

// TipDrafter proposes tip texts for catalog curators when a tag combination
// has little coverage. The plan engine itself never calls this; drafted tips
// only reach users after a curator seeds them into the tips table.
// The interface allows swapping AI providers (Gemini, OpenAI, etc.).
type TipDrafter interface {
	// DraftTips returns up to count tip candidates applying to the given
	// activity type, budget band, and energy level.
	DraftTips(ctx context.Context, activityType string, budget types.BudgetTag, energy types.EnergyLevel, count int) ([]DraftedTip, error)
}
