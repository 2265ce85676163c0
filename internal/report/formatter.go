// Package report renders computed projections and site surveys for the
// operator: plain-text blocks for the console and fixed-page-size PDF
// documents for handing to a customer. It only consumes values the
// engines already produced; nothing here feeds back into a calculation.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// consoleBarWidth is the widest production bar in FormatSurvey.
const consoleBarWidth = 24

// FormatProjectionTable renders the year-by-year cash-flow table.
func FormatProjectionTable(rows []model.YearProjection) string {
	var b strings.Builder
	b.WriteString("YEAR   TARIFF     YIELD kWh      REVENUE $   CUMULATIVE $\n")
	for _, r := range rows {
		marker := ""
		if r.BreakEven {
			marker = "   << break-even"
		}
		fmt.Fprintf(&b, "%d  %7.2f  %12s  %13s  %13s%s\n",
			r.Year, r.Tariff,
			humanize.Commaf(r.Yield), humanize.Commaf(r.Revenue), humanize.Commaf(r.Cumulative),
			marker)
	}
	return b.String()
}

// FormatSummary renders the headline metrics block shown under the table.
func FormatSummary(a model.ProjectAssumptions, sum model.ProjectionSummary) string {
	var b strings.Builder
	b.WriteString("\n─── Summary ─────────────────────────────\n")
	fmt.Fprintf(&b, "Station cost:       $%s\n", humanize.Commaf(a.StationCost))
	fmt.Fprintf(&b, "Installed capacity: %s kWp\n", humanize.Commaf(a.SystemCapacity))
	fmt.Fprintf(&b, "Specific yield:     %s kWh/kWp\n", humanize.Commaf(math.Round(sum.SpecificYield)))
	fmt.Fprintf(&b, "Payback period:     %.1f years\n", sum.PaybackYears)
	fmt.Fprintf(&b, "Total ROI:          %.1f%%\n", sum.ROIPercent)
	fmt.Fprintf(&b, "Lifetime revenue:   $%s\n", humanize.Commaf(math.Round(sum.TotalRevenue)))
	if sum.BreakEvenYear > 0 {
		fmt.Fprintf(&b, "Break-even year:    %d\n", sum.BreakEvenYear)
	} else {
		b.WriteString("Break-even:         not reached within the lifetime\n")
	}
	return b.String()
}

// FormatSurvey renders the technical estimate for a site, with a bar per
// month and explicit markers for data that could not be verified.
func FormatSurvey(s *model.SiteSurvey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Site %.4f, %.4f | %s kWp | slope %.0f azimuth %.0f | losses %.1f%%\n",
		s.Site.Lat, s.Site.Lon, humanize.Commaf(s.Site.PeakPowerKW),
		s.Site.SlopeDeg, s.Site.AzimuthDeg, s.Site.SystemLossPct)

	label := s.Estimate.Source
	if !s.Estimate.Verified {
		label += ", estimated"
	}
	fmt.Fprintf(&b, "Monthly production (%s):\n", label)
	max := floats.Max(s.Estimate.Monthly[:])
	for i, v := range s.Estimate.Monthly {
		bar := 0
		if max > 0 {
			bar = int(v / max * consoleBarWidth)
		}
		fmt.Fprintf(&b, "  %s  %12s  %s\n",
			monthNames[i], humanize.Commaf(math.Round(v)), strings.Repeat("#", bar))
	}
	fmt.Fprintf(&b, "Annual total: %s kWh | monthly mean: %s kWh\n",
		humanize.Commaf(math.Round(s.Estimate.AnnualKWh)),
		humanize.Commaf(math.Round(stat.Mean(s.Estimate.Monthly[:], nil))))

	switch {
	case len(s.Horizon) == 0:
		b.WriteString("Horizon: no samples, charts will use the synthetic silhouette\n")
	case s.HorizonVerified:
		fmt.Fprintf(&b, "Horizon: %d samples (measured)\n", len(s.Horizon))
	default:
		fmt.Fprintf(&b, "Horizon: %d samples (cached, unverified)\n", len(s.Horizon))
	}
	return b.String()
}

// FormatScenarioList renders the saved-scenario catalogue, newest first.
func FormatScenarioList(list []model.SavedScenario) string {
	if len(list) == 0 {
		return "no saved scenarios\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Saved scenarios (%d, newest first):\n", len(list))
	for _, sc := range list {
		fmt.Fprintf(&b, "  %s  %s  %-24s %8s kWp  payback %.1fy  ROI %.0f%%\n",
			sc.ID, sc.CreatedAt.Format("2006-01-02 15:04"), sc.Name,
			humanize.Commaf(sc.Assumptions.SystemCapacity),
			sc.Summary.PaybackYears, sc.Summary.ROIPercent)
	}
	return b.String()
}
