package projection

import (
	"math"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// series computes the full-precision revenue and running-sum sequences
// for years [0, lifetime). Every derived metric reads these so the
// table and the summaries can never disagree.
func series(a model.ProjectAssumptions) (revenues, cumulatives []float64) {
	if a.ProjectLifetime <= 0 {
		return nil, nil
	}
	revenues = make([]float64, a.ProjectLifetime)
	cumulatives = make([]float64, a.ProjectLifetime)
	sum := 0.0
	for i := 0; i < a.ProjectLifetime; i++ {
		degradation := math.Pow(1-a.PanelDegradation, float64(i))
		inflation := math.Pow(1+a.InflationRate, float64(i))
		yield := a.AnnualYieldYear1 * degradation
		tariff := a.BaseTariff * inflation
		revenues[i] = yield * tariff / a.USDSomExchange
		sum += revenues[i]
		cumulatives[i] = sum
	}
	return revenues, cumulatives
}

// Build produces the year-by-year cash-flow table. Rounding applies
// only to the emitted rows: the tariff is kept to two decimals, energy
// and money to whole units, while the running sum is threaded at full
// precision. The break-even flag latches on the first year whose
// cumulative revenue reaches the station cost and is never re-evaluated
// afterward.
func Build(a model.ProjectAssumptions) []model.YearProjection {
	if a.ProjectLifetime <= 0 {
		return nil
	}
	revenues, cumulatives := series(a)
	rows := make([]model.YearProjection, a.ProjectLifetime)
	breakEvenSeen := false
	for i := range rows {
		degradation := math.Pow(1-a.PanelDegradation, float64(i))
		inflation := math.Pow(1+a.InflationRate, float64(i))

		breakEven := false
		if !breakEvenSeen && cumulatives[i] >= a.StationCost {
			breakEven = true
			breakEvenSeen = true
		}
		rows[i] = model.YearProjection{
			Year:       a.StartYear + i,
			Tariff:     math.Round(a.BaseTariff*inflation*100) / 100,
			Yield:      math.Round(a.AnnualYieldYear1 * degradation),
			Revenue:    math.Round(revenues[i]),
			Cumulative: math.Round(cumulatives[i]),
			BreakEven:  breakEven,
		}
	}
	return rows
}
