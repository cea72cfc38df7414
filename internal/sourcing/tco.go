// Package sourcing holds the landed-cost engine and the comparative insight
// engine. Every function here is pure: no I/O, no shared state, safe for
// concurrent use.
package sourcing

import "sourcing-dashboard/internal/models"

// weeksPerYear prorates an annual cost-of-capital rate to weekly exposure.
const weeksPerYear = 52.0

// Compute converts one sourcing scenario into a landed-cost breakdown.
//
// Base duty and the Section 301 surtax stay separate line items because
// either can be waived independently by trade-policy changes. Inventory cost
// grows with lead time, which is what makes slow ocean freight compete with
// fast air freight at all.
//
// The engine does not validate or round. Callers own input validation;
// negative or NaN inputs produce nonsensical but non-crashing output.
func Compute(s models.ScenarioInput) models.CostBreakdown {
	var appliedDuty, applied301 float64
	switch s.CountryClass {
	case models.ZeroDutyPreferential:
		appliedDuty, applied301 = 0, 0
	case models.ChinaSubjectTo301:
		appliedDuty, applied301 = s.BaseDutyRate, s.Section301Rate
	default:
		// StandardMFN and any unrecognized class: full base duty, no 301.
		appliedDuty, applied301 = s.BaseDutyRate, 0
	}

	duty := s.FOBPrice * appliedDuty
	s301 := s.FOBPrice * applied301
	inventory := s.FOBPrice * (s.AnnualInterestRate / weeksPerYear) * s.LeadTimeWeeks

	return models.CostBreakdown{
		FOBPrice:       s.FOBPrice,
		Freight:        s.Freight,
		DutyCost:       duty,
		Section301Cost: s301,
		InventoryCost:  inventory,
		Total:          s.FOBPrice + s.Freight + duty + s301 + inventory,
	}
}
