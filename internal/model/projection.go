package model

// YearProjection is one row of the cash-flow table. The stored values
// are display snapshots: tariff rounded to two decimals, energy and
// money to whole units. The engine threads the running sum at full
// precision internally.
type YearProjection struct {
	Year       int     // calendar year
	Tariff     float64 // som per kWh, escalated
	Yield      float64 // kWh, degraded
	Revenue    float64 // USD
	Cumulative float64 // USD, running sum
	BreakEven  bool    // true on exactly the first year covering the station cost
}

// ProjectionSummary holds the headline metrics derived from a complete
// projection run.
type ProjectionSummary struct {
	PaybackYears  float64 // fractional years, saturates at the project lifetime
	ROIPercent    float64 // lifetime cumulative revenue over station cost
	TotalRevenue  float64 // USD over the full lifetime, full precision
	BreakEvenYear int     // calendar year, 0 when the cost is never recovered
	SpecificYield float64 // kWh per kWp in year one
}
