package sourcing

import "sourcing-dashboard/internal/models"

// DefaultAnnualInterestRate is the cost-of-capital default when the caller
// does not supply one. Dashboard slider range is 5%-20%.
const DefaultAnnualInterestRate = 0.12

// originClasses maps human-facing origin labels to their duty treatment. The
// engines never see labels, only classes, which keeps the policy table
// swappable and testable on its own. Labels not listed here classify as
// StandardMFN: full base duty, no Section 301 exposure.
var originClasses = map[string]models.CountryClass{
	"China":  models.ChinaSubjectTo301,
	"Mexico": models.ZeroDutyPreferential,
}

// Classify resolves an origin label to its duty-rule class.
func Classify(label string) models.CountryClass {
	return originClasses[label]
}

// Default lead times in weeks observed on current lanes. Mexico ships
// overland or short-sea, so its ocean default is much shorter.
const (
	baselineOceanLeadWeeks   = 5.0
	challengerOceanLeadWeeks = 7.0
	mexicoOceanLeadWeeks     = 2.0
	airLeadWeeks             = 1.0
)

// Challenger lanes are less consolidated than the incumbent's, so their
// estimated freight carries an uplift.
const (
	challengerOceanUplift = 1.2
	challengerAirUplift   = 1.1
)

// BaselineScenario assembles the incumbent (China) option for a product. Nil
// overrides keep the mode's seeded defaults.
func BaselineScenario(rec models.ProductRecord, mode Mode, leadWeeks, freight *float64, annualRate float64) models.ScenarioInput {
	lead := baselineOceanLeadWeeks
	if mode == ModeAir {
		lead = airLeadWeeks
	}
	fr := EstimateFreight(rec.WeightKg, mode)
	if leadWeeks != nil {
		lead = *leadWeeks
	}
	if freight != nil {
		fr = *freight
	}
	return models.ScenarioInput{
		FOBPrice:           rec.UnitPriceUSD,
		Freight:            fr,
		LeadTimeWeeks:      lead,
		AnnualInterestRate: annualRate,
		BaseDutyRate:       rec.BaseDutyRate,
		Section301Rate:     rec.Section301Rate,
		CountryClass:       models.ChinaSubjectTo301,
	}
}

// ChallengerScenario assembles the alternate-origin option. The origin label
// picks the duty class and the Mexico short-lane default.
func ChallengerScenario(rec models.ProductRecord, origin string, mode Mode, leadWeeks, freight *float64, annualRate float64) models.ScenarioInput {
	var lead, fr float64
	if mode == ModeAir {
		lead = airLeadWeeks
		fr = EstimateFreight(rec.WeightKg, ModeAir) * challengerAirUplift
	} else {
		lead = challengerOceanLeadWeeks
		if origin == "Mexico" {
			lead = mexicoOceanLeadWeeks
		}
		fr = EstimateFreight(rec.WeightKg, ModeOcean) * challengerOceanUplift
	}
	if leadWeeks != nil {
		lead = *leadWeeks
	}
	if freight != nil {
		fr = *freight
	}
	return models.ScenarioInput{
		FOBPrice:           rec.UnitPriceUSD,
		Freight:            fr,
		LeadTimeWeeks:      lead,
		AnnualInterestRate: annualRate,
		BaseDutyRate:       rec.BaseDutyRate,
		Section301Rate:     rec.Section301Rate,
		CountryClass:       Classify(origin),
	}
}
