package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// syntheticSpecificYield approximates a mid-latitude fixed array when
// no real estimate is available, kWh per kWp per year.
const syntheticSpecificYield = 1250

// syntheticMonthlyWeights distributes the synthetic annual yield over
// the calendar, peaking in midsummer. The weights sum to 1.
var syntheticMonthlyWeights = model.MonthlyEnergy{
	0.045, 0.055, 0.075, 0.095, 0.110, 0.115,
	0.120, 0.110, 0.090, 0.075, 0.060, 0.050,
}

// SyntheticEstimate builds the deterministic fallback estimate for a
// site so charts and projections are never empty while the API is
// unreachable.
func SyntheticEstimate(site model.Site) model.SolarEstimate {
	annual := site.PeakPowerKW * syntheticSpecificYield
	var monthly model.MonthlyEnergy
	for i, w := range syntheticMonthlyWeights {
		monthly[i] = annual * w
	}
	return model.SolarEstimate{
		Lat:       site.Lat,
		Lon:       site.Lon,
		Monthly:   monthly,
		AnnualKWh: annual,
		Source:    "synthetic",
		Verified:  false,
		FetchedAt: time.Now(),
	}
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Estimate   model.SolarEstimate
	Horizon    []model.HorizonPoint
	YieldErr   error
	HorizonErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMonthlyYield(_ context.Context, site model.Site) (*model.SolarEstimate, error) {
	if m.YieldErr != nil {
		return nil, m.YieldErr
	}
	est := m.Estimate
	if est.AnnualKWh == 0 {
		est = SyntheticEstimate(site)
		est.Source = m.Name()
	}
	est.Lat, est.Lon = site.Lat, site.Lon
	est.Verified = true
	return &est, nil
}

func (m *MockFetcher) FetchHorizon(_ context.Context, _, _ float64) ([]model.HorizonPoint, error) {
	if m.HorizonErr != nil {
		return nil, m.HorizonErr
	}
	return m.Horizon, nil
}

// MockGeocoder resolves every query to a fixed location.
type MockGeocoder struct {
	Lat   float64
	Lon   float64
	Found bool
	Err   error
}

func (m *MockGeocoder) Geocode(_ context.Context, _ string) (float64, float64, bool, error) {
	if m.Err != nil {
		return 0, 0, false, m.Err
	}
	return m.Lat, m.Lon, m.Found, nil
}

// Collector orchestrates site lookups and applies the degradation
// policy: a failed lookup falls back to the previous successful survey
// when it covers the same site, then to the synthetic estimate, and is
// reported as unverified rather than as an error.
type Collector struct {
	Solar   SolarFetcher
	Cache   *SurveyCache
	Retries int
}

// NewCollector creates a Collector. The cache may be nil, in which case
// only the synthetic fallback applies.
func NewCollector(solar SolarFetcher, cache *SurveyCache) *Collector {
	return &Collector{Solar: solar, Cache: cache, Retries: 2}
}

// Survey runs the yield and horizon lookups for a site. It never
// returns an error: unavailable data degrades to cached or synthetic
// values with the verified flags cleared.
func (c *Collector) Survey(ctx context.Context, site model.Site) *model.SiteSurvey {
	survey := &model.SiteSurvey{Site: site, SurveyedAt: time.Now()}

	var est *model.SolarEstimate
	err := c.retry(ctx, "solar yield lookup", func() error {
		var ferr error
		est, ferr = c.Solar.FetchMonthlyYield(ctx, site)
		return ferr
	})
	if err != nil {
		log.Printf("[WARN] solar yield lookup unavailable: %v", err)
		survey.Estimate = c.fallbackEstimate(site)
	} else {
		survey.Estimate = *est
	}

	var points []model.HorizonPoint
	err = c.retry(ctx, "horizon lookup", func() error {
		var ferr error
		points, ferr = c.Solar.FetchHorizon(ctx, site.Lat, site.Lon)
		return ferr
	})
	switch {
	case err != nil:
		log.Printf("[WARN] horizon lookup unavailable: %v", err)
		survey.Horizon = c.cachedHorizon(site)
	case len(points) == 0:
		log.Printf("[WARN] horizon lookup returned no usable rows")
	default:
		survey.Horizon = points
		survey.HorizonVerified = true
	}

	if survey.Estimate.Verified && c.Cache != nil {
		if err := c.Cache.Save(survey); err != nil {
			log.Printf("[ERROR] save survey cache: %v", err)
		}
	}
	return survey
}

// fallbackEstimate reuses the cached estimate when it covers the same
// site, otherwise synthesizes the deterministic curve. Either way the
// result is unverified.
func (c *Collector) fallbackEstimate(site model.Site) model.SolarEstimate {
	if prev := c.cachedSurvey(site); prev != nil {
		est := prev.Estimate
		est.Verified = false
		return est
	}
	return SyntheticEstimate(site)
}

func (c *Collector) cachedHorizon(site model.Site) []model.HorizonPoint {
	if prev := c.cachedSurvey(site); prev != nil && len(prev.Horizon) > 0 {
		return prev.Horizon
	}
	return nil
}

func (c *Collector) cachedSurvey(site model.Site) *model.SiteSurvey {
	if c.Cache == nil {
		return nil
	}
	prev := c.Cache.Load()
	if prev == nil || !sameSite(prev.Site, site) {
		return nil
	}
	return prev
}

func sameSite(a, b model.Site) bool {
	return math.Abs(a.Lat-b.Lat) < 1e-6 &&
		math.Abs(a.Lon-b.Lon) < 1e-6 &&
		a.PeakPowerKW == b.PeakPowerKW
}

// retry runs fn up to Retries+1 times with exponential backoff,
// honouring context cancellation between attempts.
func (c *Collector) retry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for i := 0; i <= c.Retries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if i == c.Retries {
			break
		}
		backoff := time.Duration(1<<uint(i)) * time.Second
		log.Printf("[WARN] %s failed (attempt %d/%d): %v, retrying in %v", op, i+1, c.Retries+1, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d attempts exhausted: %w", c.Retries+1, lastErr)
}
