package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"
	"gonum.org/v1/gonum/floats"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/sungeom"
)

const (
	pageMarginMM  = 15
	contentWidth  = 180 // A4 portrait minus margins
	chartRadiusMM = 45
)

// WriteFinancialPDF renders the cash-flow proposal: header, assumptions,
// the full projection table with the break-even row highlighted, and the
// summary metrics.
func WriteFinancialPDF(path string, a model.ProjectAssumptions, rows []model.YearProjection, sum model.ProjectionSummary) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	pdf := newDoc("Solar Project Financial Proposal")

	writeKV(pdf, "Customer", orDash(a.CustomerName))
	writeKV(pdf, "Project location", orDash(a.Location))
	prepared := a.ManagerName
	if a.ManagerRole != "" {
		prepared += ", " + a.ManagerRole
	}
	writeKV(pdf, "Prepared by", orDash(prepared))
	pdf.Ln(3)

	sectionTitle(pdf, "Assumptions")
	writeKV(pdf, "Station cost", "$"+humanize.Commaf(a.StationCost))
	writeKV(pdf, "Installed capacity", humanize.Commaf(a.SystemCapacity)+" kWp")
	writeKV(pdf, "First-year yield", humanize.Commaf(a.AnnualYieldYear1)+" kWh")
	writeKV(pdf, "Base tariff", fmt.Sprintf("%.2f som/kWh", a.BaseTariff))
	writeKV(pdf, "Tariff escalation", fmt.Sprintf("%.2f%% per year", a.InflationRate*100))
	writeKV(pdf, "Panel degradation", fmt.Sprintf("%.2f%% per year", a.PanelDegradation*100))
	writeKV(pdf, "Exchange rate", fmt.Sprintf("%.2f som/USD", a.USDSomExchange))
	writeKV(pdf, "Project lifetime", fmt.Sprintf("%d years", a.ProjectLifetime))
	pdf.Ln(3)

	sectionTitle(pdf, "Cash-flow projection")
	widths := []float64{18, 30, 40, 40, 42}
	headers := []string{"Year", "Tariff, som", "Yield, kWh", "Revenue, $", "Cumulative, $"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(31, 78, 121)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(255, 242, 204) // break-even highlight
	for _, r := range rows {
		vals := []string{
			strconv.Itoa(r.Year),
			fmt.Sprintf("%.2f", r.Tariff),
			humanize.Commaf(r.Yield),
			humanize.Commaf(r.Revenue),
			humanize.Commaf(r.Cumulative),
		}
		for i, v := range vals {
			align := "R"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 5.5, v, "1", 0, align, r.BreakEven, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	sectionTitle(pdf, "Summary")
	writeKV(pdf, "Payback period", fmt.Sprintf("%.1f years", sum.PaybackYears))
	writeKV(pdf, "Total ROI", fmt.Sprintf("%.1f%%", sum.ROIPercent))
	writeKV(pdf, "Lifetime revenue", "$"+humanize.Commaf(math.Round(sum.TotalRevenue)))
	if sum.BreakEvenYear > 0 {
		writeKV(pdf, "Break-even year", strconv.Itoa(sum.BreakEvenYear))
	} else {
		writeKV(pdf, "Break-even", "not reached within the lifetime")
	}

	return pdf.OutputFileAndClose(path)
}

// WriteTechnicalPDF renders the site survey: array parameters, the
// monthly production chart, and the polar horizon / sun-path diagram.
// Unverified data is flagged in the document header.
func WriteTechnicalPDF(path string, a model.ProjectAssumptions, survey *model.SiteSurvey, sum model.ProjectionSummary) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	pdf := newDoc("Solar Project Technical Report")

	if !survey.Estimate.Verified || !survey.HorizonVerified {
		pdf.SetTextColor(178, 76, 0)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, "Contains estimated data: one or more solar-resource lookups could not be verified.", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	sectionTitle(pdf, "Site and array")
	writeKV(pdf, "Location", orDash(a.Location))
	writeKV(pdf, "Coordinates", fmt.Sprintf("%.4f, %.4f", survey.Site.Lat, survey.Site.Lon))
	writeKV(pdf, "Peak power", humanize.Commaf(survey.Site.PeakPowerKW)+" kWp")
	writeKV(pdf, "Panel slope", fmt.Sprintf("%.1f deg", survey.Site.SlopeDeg))
	writeKV(pdf, "Panel azimuth", fmt.Sprintf("%.1f deg (0 = south)", survey.Site.AzimuthDeg))
	writeKV(pdf, "System losses", fmt.Sprintf("%.1f%%", survey.Site.SystemLossPct))
	pdf.Ln(3)

	sectionTitle(pdf, fmt.Sprintf("Monthly production (%s)", survey.Estimate.Source))
	chartTop := pdf.GetY()
	drawMonthlyChart(pdf, survey.Estimate.Monthly, pageMarginMM, chartTop, contentWidth, 52)
	pdf.SetY(chartTop + 52 + 6)
	writeKV(pdf, "Annual production", humanize.Commaf(math.Round(survey.Estimate.AnnualKWh))+" kWh")
	writeKV(pdf, "Specific yield", humanize.Commaf(math.Round(sum.SpecificYield))+" kWh/kWp")
	pdf.Ln(3)

	sectionTitle(pdf, "Horizon profile and solstice sun paths")
	cy := pdf.GetY() + chartRadiusMM + 5
	drawHorizonChart(pdf, survey.Horizon, survey.Site.Lat, pageMarginMM+contentWidth/2, cy, chartRadiusMM)
	pdf.SetY(cy + chartRadiusMM + 11)
	if len(survey.Horizon) == 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 5, "No measured horizon data; the silhouette shown is a synthetic placeholder.", "", 1, "C", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}

// newDoc creates an A4 portrait document with the shared title block.
func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, time.Now().Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	return pdf
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
}

func writeKV(pdf *fpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 5.5, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5.5, val, "", 1, "L", false, 0, "")
}

// drawMonthlyChart draws twelve production bars scaled against the best
// month, with the value above each bar and the month below the axis.
func drawMonthlyChart(pdf *fpdf.Fpdf, monthly model.MonthlyEnergy, x, y, w, h float64) {
	const labelBand = 6
	plotH := h - labelBand
	max := floats.Max(monthly[:])
	if max <= 0 {
		max = 1
	}
	slot := w / 12
	barW := slot * 0.62

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Line(x, y+plotH, x+w, y+plotH)

	pdf.SetFillColor(244, 177, 64)
	pdf.SetFont("Helvetica", "", 6.5)
	pdf.SetTextColor(60, 60, 60)
	for i, v := range monthly {
		bh := v / max * (plotH - 8)
		bx := x + float64(i)*slot + (slot-barW)/2
		pdf.Rect(bx, y+plotH-bh, barW, bh, "F")

		val := humanize.Commaf(math.Round(v))
		pdf.Text(bx+(barW-pdf.GetStringWidth(val))/2, y+plotH-bh-1.2, val)
		lbl := monthNames[i]
		pdf.Text(x+float64(i)*slot+(slot-pdf.GetStringWidth(lbl))/2, y+plotH+4, lbl)
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawHorizonChart draws the polar sky disc: elevation rings, compass
// labels, the horizon silhouette (synthetic when no samples exist), and
// the two solstice sun tracks.
func drawHorizonChart(pdf *fpdf.Fpdf, horizon []model.HorizonPoint, latDeg, cx, cy, r float64) {
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetLineWidth(0.2)
	pdf.Circle(cx, cy, r/3, "D")
	pdf.Circle(cx, cy, 2*r/3, "D")
	pdf.SetDrawColor(90, 90, 90)
	pdf.SetLineWidth(0.35)
	pdf.Circle(cx, cy, r, "D")
	pdf.Line(cx-r, cy, cx+r, cy)
	pdf.Line(cx, cy-r, cx, cy+r)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(cx-1.4, cy-r-1.5, "N")
	pdf.Text(cx+r+1.5, cy+1.4, "E")
	pdf.Text(cx-1.4, cy+r+4.5, "S")
	pdf.Text(cx-r-5, cy+1.4, "W")

	sil := sungeom.HorizonSilhouette(horizon, cx, cy, r)
	pdf.SetFillColor(120, 144, 156)
	pdf.SetAlpha(0.45, "Normal")
	pdf.Polygon(toPolygon(sil), "F")
	pdf.SetAlpha(1, "Normal")

	summer, winter := sungeom.SolsticePaths(latDeg, cx, cy, r)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(230, 126, 34)
	strokePolyline(pdf, summer)
	pdf.SetDrawColor(41, 128, 185)
	strokePolyline(pdf, winter)

	pdf.SetFont("Helvetica", "", 7.5)
	pdf.SetTextColor(60, 60, 60)
	lx, ly := cx-r, cy+r+7
	pdf.SetDrawColor(230, 126, 34)
	pdf.Line(lx, ly, lx+8, ly)
	pdf.Text(lx+10, ly+1.2, "summer solstice")
	pdf.SetDrawColor(41, 128, 185)
	pdf.Line(lx+42, ly, lx+50, ly)
	pdf.Text(lx+52, ly+1.2, "winter solstice")
	pdf.SetTextColor(0, 0, 0)
}

func toPolygon(p sungeom.Path) []fpdf.PointType {
	pts := make([]fpdf.PointType, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = fpdf.PointType{X: pt.X, Y: pt.Y}
	}
	return pts
}

func strokePolyline(pdf *fpdf.Fpdf, p sungeom.Path) {
	if len(p.Points) < 2 {
		return
	}
	pdf.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		pdf.LineTo(pt.X, pt.Y)
	}
	pdf.DrawPath("D")
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
