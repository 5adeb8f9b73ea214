// Package aggregate computes derived point totals from flat result lists.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/f1sync/internal/ergast"
)

// SumPointsByConstructor groups one race's results by constructor natural
// key and sums the points. Keys are matched exactly as the upstream
// source formats them; callers must not pre-alter them. An empty input
// yields an empty map. Unparsable point values count as zero.
func SumPointsByConstructor(results []ergast.ResultEntry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, result := range results {
		key := result.Constructor.ConstructorID
		totals[key] = totals[key].Add(parsePoints(result.Points))
	}
	return totals
}

// SumPointsPerDriver groups results by constructor then driver, for
// cross-checking constructor and driver point consistency.
func SumPointsPerDriver(results []ergast.ResultEntry) map[string]map[string]decimal.Decimal {
	totals := make(map[string]map[string]decimal.Decimal)
	for _, result := range results {
		constructorKey := result.Constructor.ConstructorID
		driverKey := result.Driver.DriverID
		if totals[constructorKey] == nil {
			totals[constructorKey] = make(map[string]decimal.Decimal)
		}
		totals[constructorKey][driverKey] = totals[constructorKey][driverKey].Add(parsePoints(result.Points))
	}
	return totals
}

func parsePoints(value string) decimal.Decimal {
	points, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return points
}
