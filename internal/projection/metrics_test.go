package projection

import (
	"math"
	"testing"
)

func TestPayback_Interpolation(t *testing.T) {
	a := exampleAssumptions()
	got := Payback(a)
	// Break-even lands in the seventh year; interpolating the remaining
	// cost against that year's revenue gives roughly 6.7 years.
	if math.Abs(got-6.705) > 0.01 {
		t.Errorf("expected payback near 6.705 years, got %.4f", got)
	}
}

func TestPayback_SaturatesAtLifetime(t *testing.T) {
	a := exampleAssumptions()
	a.StationCost = 1e12
	if got := Payback(a); got != float64(a.ProjectLifetime) {
		t.Errorf("expected payback to saturate at %d, got %.2f", a.ProjectLifetime, got)
	}
}

func TestPayback_ImmediateRecovery(t *testing.T) {
	a := exampleAssumptions()
	a.StationCost = 50000 // below first-year revenue
	if got := Payback(a); got != 1 {
		t.Errorf("expected immediate recovery to report one full year, got %.4f", got)
	}
}

func TestPayback_EmptyProjection(t *testing.T) {
	a := exampleAssumptions()
	a.ProjectLifetime = 0
	if got := Payback(a); got != 0 {
		t.Errorf("expected 0 for empty projection, got %.2f", got)
	}
}

func TestROI_MatchesGeometricSeries(t *testing.T) {
	a := exampleAssumptions()
	// Cross-check against the closed form of the same series: revenue
	// grows by (1-d)(1+r) each year.
	rev0 := a.AnnualYieldYear1 * a.BaseTariff / a.USDSomExchange
	g := (1 - a.PanelDegradation) * (1 + a.InflationRate)
	total := rev0 * (math.Pow(g, float64(a.ProjectLifetime)) - 1) / (g - 1)
	want := total / a.StationCost * 100

	got := ROI(a)
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("expected ROI %.6f%%, got %.6f%%", want, got)
	}
}

func TestROI_ZeroCostGuard(t *testing.T) {
	a := exampleAssumptions()
	a.StationCost = 0
	if got := ROI(a); got != 0 {
		t.Errorf("expected 0 for zero station cost, got %.2f", got)
	}
}

func TestSpecificYield(t *testing.T) {
	if got := SpecificYield(1683000, 1000); got != 1683 {
		t.Errorf("expected 1683 kWh/kWp, got %.2f", got)
	}
	if got := SpecificYield(1683000, 0); got != 0 {
		t.Errorf("expected 0 for zero capacity, got %.2f", got)
	}
}

func TestSummarize(t *testing.T) {
	a := exampleAssumptions()
	rows := Build(a)
	s := Summarize(a, rows)

	if s.BreakEvenYear != 2031 {
		t.Errorf("expected break-even year 2031, got %d", s.BreakEvenYear)
	}
	if s.PaybackYears != Payback(a) {
		t.Errorf("summary payback %.4f disagrees with Payback %.4f", s.PaybackYears, Payback(a))
	}
	if s.ROIPercent != ROI(a) {
		t.Errorf("summary ROI %.4f disagrees with ROI %.4f", s.ROIPercent, ROI(a))
	}
	if s.SpecificYield != 1683 {
		t.Errorf("expected specific yield 1683, got %.2f", s.SpecificYield)
	}
	if s.TotalRevenue < rows[len(rows)-1].Cumulative-1 || s.TotalRevenue > rows[len(rows)-1].Cumulative+1 {
		t.Errorf("total revenue %.2f should match the final cumulative %.0f within rounding", s.TotalRevenue, rows[len(rows)-1].Cumulative)
	}
}

func TestSummarize_NoBreakEven(t *testing.T) {
	a := exampleAssumptions()
	a.StationCost = 1e12
	s := Summarize(a, Build(a))
	if s.BreakEvenYear != 0 {
		t.Errorf("expected 0 break-even year, got %d", s.BreakEvenYear)
	}
	if s.PaybackYears != float64(a.ProjectLifetime) {
		t.Errorf("expected saturated payback %d, got %.2f", a.ProjectLifetime, s.PaybackYears)
	}
}
