package projection

import "github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"

// Payback returns the fractional number of years until cumulative
// revenue covers the station cost, interpolating within the break-even
// year on the assumption that revenue accrues uniformly through it.
// An immediate recovery in the first year reports one full year. When
// the cost is never recovered the value saturates at the project
// lifetime; an empty projection reports zero.
func Payback(a model.ProjectAssumptions) float64 {
	if a.ProjectLifetime <= 0 {
		return 0
	}
	revenues, cumulatives := series(a)
	idx := -1
	for i, c := range cumulatives {
		if c >= a.StationCost {
			idx = i
			break
		}
	}
	if idx < 0 {
		return float64(a.ProjectLifetime)
	}
	if idx == 0 {
		return 1
	}
	return float64(idx) + (a.StationCost-cumulatives[idx-1])/revenues[idx]
}

// ROI returns lifetime cumulative revenue as a percentage of station
// cost, 0 when the cost is zero or the projection is empty.
func ROI(a model.ProjectAssumptions) float64 {
	if a.ProjectLifetime <= 0 || a.StationCost == 0 {
		return 0
	}
	_, cumulatives := series(a)
	return cumulatives[len(cumulatives)-1] / a.StationCost * 100
}

// SpecificYield returns annual energy output per installed kWp, the
// standard PV efficiency metric, or 0 for zero capacity.
func SpecificYield(annualYieldKWh, capacityKW float64) float64 {
	if capacityKW == 0 {
		return 0
	}
	return annualYieldKWh / capacityKW
}

// Summarize derives the headline metrics from a completed projection.
// The rows must come from Build with the same assumptions.
func Summarize(a model.ProjectAssumptions, rows []model.YearProjection) model.ProjectionSummary {
	s := model.ProjectionSummary{
		PaybackYears:  Payback(a),
		ROIPercent:    ROI(a),
		SpecificYield: SpecificYield(a.AnnualYieldYear1, a.SystemCapacity),
	}
	if len(rows) > 0 {
		_, cumulatives := series(a)
		s.TotalRevenue = cumulatives[len(cumulatives)-1]
	}
	for _, r := range rows {
		if r.BreakEven {
			s.BreakEvenYear = r.Year
			break
		}
	}
	return s
}
