package report

import (
	"strings"
	"testing"
	"time"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/projection"
)

func sampleAssumptions() model.ProjectAssumptions {
	return model.ProjectAssumptions{
		StationCost:      694000,
		SystemCapacity:   1000,
		AnnualYieldYear1: 1683000,
		USDSomExchange:   87.5,
		PanelDegradation: 0.0055,
		InflationRate:    0.07,
		BaseTariff:       4.47,
		ProjectLifetime:  25,
		StartYear:        2025,
		ManagerName:      "Aigerim Toktogulova",
		ManagerRole:      "Sales engineer",
		CustomerName:     "Alatau Agro",
		Location:         "Bishkek, Kyrgyzstan",
	}
}

func sampleSurvey(verified bool) *model.SiteSurvey {
	var monthly model.MonthlyEnergy
	for i := range monthly {
		monthly[i] = float64(90000 + i*5000)
	}
	return &model.SiteSurvey{
		Site: model.Site{
			Lat: 42.87, Lon: 74.59,
			PeakPowerKW: 1000, SlopeDeg: 30, SystemLossPct: 14,
		},
		Estimate: model.SolarEstimate{
			Lat: 42.87, Lon: 74.59,
			Monthly:   monthly,
			AnnualKWh: monthly.Total(),
			Source:    "pvgis",
			Verified:  verified,
			FetchedAt: time.Now(),
		},
		HorizonVerified: verified,
	}
}

func TestFormatProjectionTable(t *testing.T) {
	a := sampleAssumptions()
	out := FormatProjectionTable(projection.Build(a))

	if n := strings.Count(out, "break-even"); n != 1 {
		t.Errorf("expected exactly one break-even marker, found %d", n)
	}
	if !strings.Contains(out, "85,977") {
		t.Error("first-year revenue missing from table")
	}
	if !strings.Contains(out, "1,683,000") {
		t.Error("first-year yield missing from table")
	}
	if lines := strings.Count(out, "\n"); lines != a.ProjectLifetime+1 {
		t.Errorf("expected header plus %d rows, got %d lines", a.ProjectLifetime, lines)
	}
}

func TestFormatSummary(t *testing.T) {
	a := sampleAssumptions()
	rows := projection.Build(a)
	out := FormatSummary(a, projection.Summarize(a, rows))

	for _, want := range []string{"$694,000", "6.7 years", "2031", "1,683 kWh/kWp"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummary_NoBreakEven(t *testing.T) {
	a := sampleAssumptions()
	a.StationCost = 1e12
	rows := projection.Build(a)
	out := FormatSummary(a, projection.Summarize(a, rows))
	if !strings.Contains(out, "not reached") {
		t.Errorf("expected a not-reached marker:\n%s", out)
	}
}

func TestFormatSurvey_VerifiedData(t *testing.T) {
	out := FormatSurvey(sampleSurvey(true))
	if strings.Contains(out, "estimated") {
		t.Error("verified survey must not be marked estimated")
	}
	if !strings.Contains(out, "pvgis") {
		t.Error("survey must name its data source")
	}
	// December is the synthetic maximum here, so its bar is full width.
	if !strings.Contains(out, strings.Repeat("#", consoleBarWidth)) {
		t.Error("best month must render a full-width bar")
	}
}

func TestFormatSurvey_MarksEstimated(t *testing.T) {
	out := FormatSurvey(sampleSurvey(false))
	if !strings.Contains(out, "estimated") {
		t.Errorf("unverified survey must be marked estimated:\n%s", out)
	}
	if !strings.Contains(out, "synthetic silhouette") {
		t.Errorf("missing horizon fallback note:\n%s", out)
	}
}

func TestFormatScenarioList(t *testing.T) {
	if out := FormatScenarioList(nil); !strings.Contains(out, "no saved scenarios") {
		t.Errorf("empty catalogue should say so, got %q", out)
	}

	list := []model.SavedScenario{
		{
			ID:          "5f0c2d9e-8f3a-4a1e-9be4-1c2f4f6a7b88",
			Name:        "Bishkek 1MW",
			CreatedAt:   time.Date(2025, 8, 25, 14, 2, 0, 0, time.UTC),
			Assumptions: sampleAssumptions(),
			Summary:     model.ProjectionSummary{PaybackYears: 6.7, ROIPercent: 438.9},
		},
	}
	out := FormatScenarioList(list)
	for _, want := range []string{"5f0c2d9e", "Bishkek 1MW", "2025-08-25 14:02", "6.7"} {
		if !strings.Contains(out, want) {
			t.Errorf("scenario list missing %q:\n%s", want, out)
		}
	}
}
