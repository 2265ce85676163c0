package model

import (
	"fmt"
	"math"
)

// ProjectAssumptions is the immutable input snapshot of a projection run.
// Monetary amounts are in USD unless noted; the tariff is in som per kWh
// and usd_som_exchange converts som revenue into USD.
type ProjectAssumptions struct {
	StationCost      float64 `yaml:"station_cost" json:"station_cost"`           // USD, > 0
	SystemCapacity   float64 `yaml:"system_capacity" json:"system_capacity"`     // kWp, > 0
	AnnualYieldYear1 float64 `yaml:"annual_yield_year1" json:"annual_yield_year1"` // kWh, nameplate first year
	USDSomExchange   float64 `yaml:"usd_som_exchange" json:"usd_som_exchange"`   // som per USD, > 0
	PanelDegradation float64 `yaml:"panel_degradation" json:"panel_degradation"` // fractional annual decay, 0 <= d < 1
	InflationRate    float64 `yaml:"inflation_rate" json:"inflation_rate"`       // fractional annual tariff escalation, may be negative
	BaseTariff       float64 `yaml:"base_tariff" json:"base_tariff"`             // som per kWh, >= 0
	ProjectLifetime  int     `yaml:"project_lifetime" json:"project_lifetime"`   // years, >= 1
	StartYear        int     `yaml:"start_year" json:"start_year"`               // first calendar year of the projection

	ManagerName  string `yaml:"manager_name" json:"manager_name"`
	ManagerRole  string `yaml:"manager_role" json:"manager_role"`
	CustomerName string `yaml:"customer_name" json:"customer_name"`
	Location     string `yaml:"location" json:"location"`
}

// Validate rejects non-finite and out-of-range numeric input before it
// reaches the projection engine. Inflation may be negative (tariff
// deflation) and is only required to be finite.
func (a ProjectAssumptions) Validate() error {
	for name, v := range map[string]float64{
		"station_cost":       a.StationCost,
		"system_capacity":    a.SystemCapacity,
		"annual_yield_year1": a.AnnualYieldYear1,
		"usd_som_exchange":   a.USDSomExchange,
		"panel_degradation":  a.PanelDegradation,
		"inflation_rate":     a.InflationRate,
		"base_tariff":        a.BaseTariff,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	if a.StationCost <= 0 {
		return fmt.Errorf("station_cost must be positive")
	}
	if a.SystemCapacity <= 0 {
		return fmt.Errorf("system_capacity must be positive")
	}
	if a.AnnualYieldYear1 < 0 {
		return fmt.Errorf("annual_yield_year1 must not be negative")
	}
	if a.USDSomExchange <= 0 {
		return fmt.Errorf("usd_som_exchange must be positive")
	}
	if a.PanelDegradation < 0 || a.PanelDegradation >= 1 {
		return fmt.Errorf("panel_degradation must be in [0, 1)")
	}
	if a.BaseTariff < 0 {
		return fmt.Errorf("base_tariff must not be negative")
	}
	if a.ProjectLifetime < 1 {
		return fmt.Errorf("project_lifetime must be at least one year")
	}
	if a.StartYear < 1 {
		return fmt.Errorf("start_year must be positive")
	}
	return nil
}
