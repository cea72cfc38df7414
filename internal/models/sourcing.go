package models

// CountryClass selects which duty rules apply to an origin. The zero value is
// StandardMFN, so unrecognized origin labels fall through to standard
// most-favored-nation treatment instead of erroring.
type CountryClass int

const (
	StandardMFN CountryClass = iota
	ZeroDutyPreferential
	ChinaSubjectTo301
)

func (c CountryClass) String() string {
	switch c {
	case ZeroDutyPreferential:
		return "zero_duty_preferential"
	case ChinaSubjectTo301:
		return "china_subject_to_301"
	default:
		return "standard_mfn"
	}
}

// ProductRecord is one row of the product reference catalog. Rates are always
// fractions in [0,1]; percent-string inputs are normalized at ingestion and
// never re-interpreted downstream.
type ProductRecord struct {
	Name           string  `json:"name"`
	UnitPriceUSD   float64 `json:"unit_price_usd"`
	WeightKg       float64 `json:"weight_kg"`
	BaseDutyRate   float64 `json:"base_duty_rate"`
	Section301Rate float64 `json:"section_301_rate"`
}

// ScenarioInput carries the commercial and logistics parameters of a single
// sourcing option. Constructed fresh per evaluation and never mutated.
type ScenarioInput struct {
	FOBPrice           float64
	Freight            float64
	LeadTimeWeeks      float64
	AnnualInterestRate float64
	BaseDutyRate       float64
	Section301Rate     float64
	CountryClass       CountryClass
}

// CostBreakdown is the landed-cost result for one scenario. Total is always
// the exact sum of the other five fields; rounding is a presentation concern.
type CostBreakdown struct {
	FOBPrice       float64 `json:"fob_price"`
	Freight        float64 `json:"freight"`
	DutyCost       float64 `json:"duty_cost"`
	Section301Cost float64 `json:"section_301_cost"`
	InventoryCost  float64 `json:"inventory_cost"`
	Total          float64 `json:"total"`
}

// chartCategories is the fixed display order of the grouped-bar chart.
var chartCategories = []string{"FOB Price", "Freight", "Base Duty", "Section 301", "Inventory Cost"}

// ChartCategories returns the chart category labels. excludeFOB drops the
// dominant FOB bar so the duty/freight/inventory bars stay readable.
func ChartCategories(excludeFOB bool) []string {
	if excludeFOB {
		return chartCategories[1:]
	}
	return chartCategories
}

// Series returns the breakdown values in chart category order.
func (b CostBreakdown) Series(excludeFOB bool) []float64 {
	s := []float64{b.FOBPrice, b.Freight, b.DutyCost, b.Section301Cost, b.InventoryCost}
	if excludeFOB {
		return s[1:]
	}
	return s
}

// Insight is the comparative recommendation between the incumbent and the
// challenger scenario. Reason and Drivers embed formatted currency deltas as
// part of their contract; callers must not reformat them.
type Insight struct {
	FavorAlternate bool     `json:"favor_alternate"`
	SavingsPerUnit float64  `json:"savings_per_unit"`
	Verdict        string   `json:"verdict"`
	Reason         string   `json:"reason"`
	Drivers        []string `json:"drivers"`
}

// ScenarioOverrides are the user-adjustable fields of one option. Nil fields
// keep the seeded defaults for the selected transport mode.
type ScenarioOverrides struct {
	Mode          string   `json:"mode"`
	LeadTimeWeeks *float64 `json:"lead_time_weeks,omitempty"`
	Freight       *float64 `json:"freight,omitempty"`
}

type EvaluateRequest struct {
	SKU                string            `json:"sku"`
	AlternateOrigin    string            `json:"alternate_origin"`
	AnnualInterestRate *float64          `json:"annual_interest_rate,omitempty"`
	ExcludeFOB         bool              `json:"exclude_fob,omitempty"`
	OptionA            ScenarioOverrides `json:"option_a"`
	OptionB            ScenarioOverrides `json:"option_b"`
}

type ChartData struct {
	Categories   []string  `json:"categories"`
	OptionALabel string    `json:"option_a_label"`
	OptionBLabel string    `json:"option_b_label"`
	OptionA      []float64 `json:"option_a"`
	OptionB      []float64 `json:"option_b"`
}

type EvaluateResponse struct {
	Product string        `json:"product"`
	OptionA CostBreakdown `json:"option_a"`
	OptionB CostBreakdown `json:"option_b"`
	Chart   ChartData     `json:"chart"`
	Insight Insight       `json:"insight"`
}
