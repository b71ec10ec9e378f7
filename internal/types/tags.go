// README: Shared tag vocabulary used by plan requests and catalog entries.
package types

// BudgetTag is the categorical price band shared by requests and venues.
type BudgetTag string

const (
	BudgetCheap    BudgetTag = "$"
	BudgetModerate BudgetTag = "$$"
	BudgetUpscale  BudgetTag = "$$$"
	BudgetPremium  BudgetTag = "$$$$"
	BudgetLuxury   BudgetTag = "$$$$$"
)

func (b BudgetTag) Valid() bool {
	switch b {
	case BudgetCheap, BudgetModerate, BudgetUpscale, BudgetPremium, BudgetLuxury:
		return true
	}
	return false
}

// EnergyLevel describes how much energy an evening calls for.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "Low"
	EnergyMedium EnergyLevel = "Medium"
	EnergyHigh   EnergyLevel = "High"
)

func (e EnergyLevel) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	}
	return false
}

// CompanyType describes who the plan is for.
type CompanyType string

const (
	CompanySolo       CompanyType = "Solo"
	CompanyDate       CompanyType = "Date"
	CompanySmallGroup CompanyType = "Small Group"
	CompanyLargeGroup CompanyType = "Large Group"
)

func (c CompanyType) Valid() bool {
	switch c {
	case CompanySolo, CompanyDate, CompanySmallGroup, CompanyLargeGroup:
		return true
	}
	return false
}
