package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// Config holds all application configuration. Precedence: flags (applied
// by the commands) over environment variables over the YAML file over
// the built-in defaults.
type Config struct {
	Project model.ProjectAssumptions `yaml:"project"`
	Site    model.Site               `yaml:"site"`
	Solar   struct {
		PVGISBaseURL     string `yaml:"pvgis_base_url"`
		NominatimBaseURL string `yaml:"nominatim_base_url"`
	} `yaml:"solar"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
		SurveyFile string `yaml:"survey_file"`
	} `yaml:"database"`
	Report struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"report"`
	Watch struct {
		Cron string `yaml:"cron"`
	} `yaml:"watch"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: defaults describe a working
// demo project.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PVGIS_BASE_URL"); v != "" {
		cfg.Solar.PVGISBaseURL = v
	}
	if v := os.Getenv("NOMINATIM_BASE_URL"); v != "" {
		cfg.Solar.NominatimBaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("START_YEAR"); v != "" {
		var year int
		if _, err := fmt.Sscanf(v, "%d", &year); err == nil {
			cfg.Project.StartYear = year
		}
	}

	// Defaults
	if cfg.Solar.PVGISBaseURL == "" {
		cfg.Solar.PVGISBaseURL = "https://re.jrc.ec.europa.eu/api/v5_2"
	}
	if cfg.Solar.NominatimBaseURL == "" {
		cfg.Solar.NominatimBaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/nursun.db"
	}
	if cfg.Database.SurveyFile == "" {
		cfg.Database.SurveyFile = "data/last_survey.json"
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "reports"
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 7 * * *"
	}
	applyProjectDefaults(&cfg.Project)
	applySiteDefaults(&cfg.Site, cfg.Project.SystemCapacity)

	return cfg, nil
}

// applyProjectDefaults fills an untouched project block with the demo
// scenario (a 1 MW station near Bishkek). A block the user has started
// to fill in is respected field for field, since zero is a legitimate
// value for degradation and inflation; only fields that can never be
// valid at zero get individual defaults.
func applyProjectDefaults(p *model.ProjectAssumptions) {
	if p.StationCost == 0 && p.SystemCapacity == 0 && p.AnnualYieldYear1 == 0 && p.BaseTariff == 0 {
		p.StationCost = 694000
		p.SystemCapacity = 1000
		p.AnnualYieldYear1 = 1683000
		p.USDSomExchange = 87.5
		p.PanelDegradation = 0.0055
		p.InflationRate = 0.07
		p.BaseTariff = 4.47
	}
	if p.ProjectLifetime == 0 {
		p.ProjectLifetime = 25
	}
	if p.StartYear == 0 {
		p.StartYear = 2025
	}
}

// applySiteDefaults mirrors applyProjectDefaults for the site block.
// Peak power can never be zero and defaults to the project capacity so
// the two stay consistent unless deliberately split.
func applySiteDefaults(s *model.Site, capacityKW float64) {
	if s.Lat == 0 && s.Lon == 0 {
		s.Lat = 42.87
		s.Lon = 74.59
		s.SlopeDeg = 30
		s.SystemLossPct = 14
	}
	if s.PeakPowerKW == 0 {
		s.PeakPowerKW = capacityKW
	}
}

// Validate checks that all required fields are set and in range.
func (c *Config) Validate() error {
	if c.Solar.PVGISBaseURL == "" {
		return fmt.Errorf("solar.pvgis_base_url is required")
	}
	if c.Solar.NominatimBaseURL == "" {
		return fmt.Errorf("solar.nominatim_base_url is required")
	}
	if err := c.Project.Validate(); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if c.Site.Lat < -90 || c.Site.Lat > 90 {
		return fmt.Errorf("site.latitude must be in [-90, 90]")
	}
	if c.Site.Lon < -180 || c.Site.Lon > 180 {
		return fmt.Errorf("site.longitude must be in [-180, 180]")
	}
	if c.Site.PeakPowerKW <= 0 {
		return fmt.Errorf("site.peak_power_kw must be positive")
	}
	if c.Site.SlopeDeg < 0 || c.Site.SlopeDeg > 90 {
		return fmt.Errorf("site.slope_deg must be in [0, 90]")
	}
	if c.Site.AzimuthDeg < -180 || c.Site.AzimuthDeg > 180 {
		return fmt.Errorf("site.azimuth_deg must be in [-180, 180]")
	}
	if c.Site.SystemLossPct < 0 || c.Site.SystemLossPct >= 100 {
		return fmt.Errorf("site.system_loss_pct must be in [0, 100)")
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}
	if c.Watch.Cron == "" {
		return fmt.Errorf("watch.cron is required")
	}
	return nil
}
