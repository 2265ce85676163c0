package model

import "time"

// Site describes the installation location and array geometry sent to
// the solar-resource API.
type Site struct {
	Lat           float64 `yaml:"latitude" json:"latitude"`
	Lon           float64 `yaml:"longitude" json:"longitude"`
	PeakPowerKW   float64 `yaml:"peak_power_kw" json:"peak_power_kw"`
	SlopeDeg      float64 `yaml:"slope_deg" json:"slope_deg"`     // panel tilt from horizontal
	AzimuthDeg    float64 `yaml:"azimuth_deg" json:"azimuth_deg"` // 0 = south, east negative
	SystemLossPct float64 `yaml:"system_loss_pct" json:"system_loss_pct"`
}

// MonthlyEnergy is a calendar-ordered series of monthly output in kWh,
// January first.
type MonthlyEnergy [12]float64

// Total returns the annual sum of the series.
func (m MonthlyEnergy) Total() float64 {
	sum := 0.0
	for _, v := range m {
		sum += v
	}
	return sum
}

// SolarEstimate is the production estimate for a site. Verified is
// false when the values were synthesized or reused after a failed
// lookup rather than fetched.
type SolarEstimate struct {
	Lat       float64       `json:"latitude"`
	Lon       float64       `json:"longitude"`
	Monthly   MonthlyEnergy `json:"monthly_kwh"`
	AnnualKWh float64       `json:"annual_kwh"`
	Source    string        `json:"source"`
	Verified  bool          `json:"verified"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// HorizonPoint is one terrain sample as seen from the site. Azimuth
// uses the convention 0 = south, -90 = east, +90 = west, +-180 = north;
// elevation is degrees above the horizontal plane.
type HorizonPoint struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
}

// SiteSurvey bundles everything fetched for a site in one pass.
type SiteSurvey struct {
	Site            Site           `json:"site"`
	Estimate        SolarEstimate  `json:"estimate"`
	Horizon         []HorizonPoint `json:"horizon,omitempty"`
	HorizonVerified bool           `json:"horizon_verified"`
	SurveyedAt      time.Time      `json:"surveyed_at"`
}
