package sourcing

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"sourcing-dashboard/internal/models"
)

// driverThreshold is the dead band below which a cost delta is treated as
// floating-point noise rather than a reportable driver. Strictly greater or
// strictly less: a gap of exactly 0.01 does not trigger.
const driverThreshold = 0.01

// Compare diffs two landed-cost breakdowns and explains the gap in plain
// language. Ties keep the incumbent. Drivers are evaluated and appended in a
// fixed order (tariffs, freight, inventory) regardless of magnitude, so
// identical inputs always yield an identical driver list.
func Compare(baseline, challenger models.CostBreakdown, challengerLabel string) models.Insight {
	savings := baseline.Total - challenger.Total

	insight := models.Insight{SavingsPerUnit: savings}
	if savings > 0 {
		insight.FavorAlternate = true
		insight.Verdict = "DIVERSIFY to " + challengerLabel
		insight.Reason = fmt.Sprintf("Yields a net saving of %s per unit.", usd(savings))
	} else {
		insight.Verdict = "REMAIN in China"
		insight.Reason = fmt.Sprintf("Moving to %s increases cost by %s per unit.",
			challengerLabel, usd(math.Abs(savings)))
	}

	var drivers []string

	tariffGap := (baseline.DutyCost + baseline.Section301Cost) -
		(challenger.DutyCost + challenger.Section301Cost)
	if tariffGap > driverThreshold {
		drivers = append(drivers, fmt.Sprintf("Avoiding tariffs saves %s in duties.", usd(tariffGap)))
	} else if tariffGap < -driverThreshold {
		drivers = append(drivers, fmt.Sprintf("Tariffs are higher in %s by %s.",
			challengerLabel, usd(-tariffGap)))
	}

	freightGap := challenger.Freight - baseline.Freight
	if freightGap > driverThreshold {
		drivers = append(drivers, fmt.Sprintf("Logistics costs increase by %s due to distance and mode.", usd(freightGap)))
	} else if freightGap < -driverThreshold {
		drivers = append(drivers, fmt.Sprintf("Logistics costs decrease by %s.", usd(-freightGap)))
	}

	inventoryGap := challenger.InventoryCost - baseline.InventoryCost
	if inventoryGap > driverThreshold {
		drivers = append(drivers, fmt.Sprintf("Longer lead times add %s in inventory holding costs.", usd(inventoryGap)))
	} else if inventoryGap < -driverThreshold {
		drivers = append(drivers, fmt.Sprintf("Shorter lead times save %s in inventory holding costs.", usd(-inventoryGap)))
	}

	if len(drivers) == 0 {
		drivers = append(drivers, "No significant cost drivers detected (deltas below $0.01).")
	}
	insight.Drivers = drivers

	return insight
}

// usd renders an amount with two decimals and comma grouping, e.g. "$1,014.23".
func usd(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
