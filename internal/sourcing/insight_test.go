package sourcing

import (
	"strings"
	"testing"

	"sourcing-dashboard/internal/models"
)

func TestCompare_FavorsChallenger(t *testing.T) {
	baseline := Compute(models.ScenarioInput{
		FOBPrice: 800, Freight: 5, LeadTimeWeeks: 5, AnnualInterestRate: 0.12,
		BaseDutyRate: 0, Section301Rate: 0.25, CountryClass: models.ChinaSubjectTo301,
	})
	challenger := Compute(models.ScenarioInput{
		FOBPrice: 800, Freight: 6, LeadTimeWeeks: 7, AnnualInterestRate: 0.12,
		BaseDutyRate: 0.05, Section301Rate: 0.25, CountryClass: models.StandardMFN,
	})

	got := Compare(baseline, challenger, "Vietnam")

	if !got.FavorAlternate {
		t.Fatal("expected verdict to favor the challenger")
	}
	if got.Verdict != "DIVERSIFY to Vietnam" {
		t.Errorf("Verdict = %q", got.Verdict)
	}
	if !strings.Contains(got.Reason, "$155.31") {
		t.Errorf("Reason = %q, want it to contain $155.31", got.Reason)
	}

	// Fixed driver order: tariffs, then freight, then inventory.
	if len(got.Drivers) != 3 {
		t.Fatalf("got %d drivers, want 3: %v", len(got.Drivers), got.Drivers)
	}
	if !strings.Contains(got.Drivers[0], "Avoiding tariffs saves $160.00") {
		t.Errorf("tariff driver = %q", got.Drivers[0])
	}
	if !strings.Contains(got.Drivers[1], "Logistics costs increase by $1.00") {
		t.Errorf("freight driver = %q", got.Drivers[1])
	}
	if !strings.Contains(got.Drivers[2], "inventory holding costs") ||
		!strings.Contains(got.Drivers[2], "add $3.69") {
		t.Errorf("inventory driver = %q", got.Drivers[2])
	}
}

func TestCompare_FavorsIncumbent(t *testing.T) {
	baseline := models.CostBreakdown{FOBPrice: 500, Freight: 5, Total: 505}
	challenger := models.CostBreakdown{FOBPrice: 500, Freight: 30, Total: 530}

	got := Compare(baseline, challenger, "India")

	if got.FavorAlternate {
		t.Error("expected verdict to keep the incumbent")
	}
	if got.SavingsPerUnit != -25 {
		t.Errorf("SavingsPerUnit = %v, want -25", got.SavingsPerUnit)
	}
	if !strings.Contains(got.Reason, "Moving to India increases cost by $25.00 per unit.") {
		t.Errorf("Reason = %q", got.Reason)
	}
}

func TestCompare_TieKeepsIncumbent(t *testing.T) {
	b := models.CostBreakdown{FOBPrice: 100, Total: 100}
	got := Compare(b, b, "Thailand")

	if got.FavorAlternate {
		t.Error("tie must not favor the challenger")
	}
	if got.SavingsPerUnit != 0 {
		t.Errorf("SavingsPerUnit = %v, want 0", got.SavingsPerUnit)
	}
}

func TestCompare_Symmetry(t *testing.T) {
	a := models.CostBreakdown{FOBPrice: 800, Freight: 5, Section301Cost: 200, InventoryCost: 9.23, Total: 1014.23}
	b := models.CostBreakdown{FOBPrice: 800, Freight: 6, DutyCost: 40, InventoryCost: 12.92, Total: 858.92}

	forward := Compare(a, b, "Vietnam")
	reverse := Compare(b, a, "China")

	if forward.SavingsPerUnit != -reverse.SavingsPerUnit {
		t.Errorf("swapping breakdowns should negate savings: %v vs %v",
			forward.SavingsPerUnit, reverse.SavingsPerUnit)
	}
	if forward.FavorAlternate == reverse.FavorAlternate {
		t.Error("swapping breakdowns should flip the verdict when savings != 0")
	}
}

func TestCompare_DeadBand(t *testing.T) {
	base := models.CostBreakdown{FOBPrice: 100, Total: 100}

	t.Run("gap of exactly 0.01 stays silent", func(t *testing.T) {
		b := base
		b.DutyCost = 0.01 // tariff gap == threshold, strict compare must not fire
		got := Compare(b, base, "Vietnam")

		if len(got.Drivers) != 1 {
			t.Fatalf("got %d drivers, want the single fallback: %v", len(got.Drivers), got.Drivers)
		}
		if !strings.Contains(got.Drivers[0], "No significant cost drivers detected") {
			t.Errorf("fallback driver = %q", got.Drivers[0])
		}
	})

	t.Run("gap just above threshold fires", func(t *testing.T) {
		b := base
		b.DutyCost = 0.010001
		got := Compare(b, base, "Vietnam")

		if len(got.Drivers) != 1 || !strings.Contains(got.Drivers[0], "Avoiding tariffs saves") {
			t.Errorf("drivers = %v, want a tariff saving driver", got.Drivers)
		}
	})
}

func TestCompare_FallbackDriverIsSingle(t *testing.T) {
	// Every component differs by 0.005, all below the dead band.
	a := models.CostBreakdown{FOBPrice: 100, Freight: 1, DutyCost: 2, Section301Cost: 3, InventoryCost: 4, Total: 110}
	b := models.CostBreakdown{FOBPrice: 100.005, Freight: 1.005, DutyCost: 2.005, Section301Cost: 3.005, InventoryCost: 4.005, Total: 110.025}

	got := Compare(a, b, "India")

	if len(got.Drivers) != 1 {
		t.Fatalf("got %d drivers, want exactly one fallback entry: %v", len(got.Drivers), got.Drivers)
	}
	if !strings.Contains(got.Drivers[0], "No significant cost drivers detected (deltas below $0.01)") {
		t.Errorf("fallback driver = %q", got.Drivers[0])
	}
}

func TestUSDFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{155.307692, "$155.31"},
		{1014.230769, "$1,014.23"},
		{0, "$0.00"},
		{160, "$160.00"},
		{1234567.891, "$1,234,567.89"},
	}

	for _, tt := range tests {
		if got := usd(tt.in); got != tt.want {
			t.Errorf("usd(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
