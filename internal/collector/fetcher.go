package collector

import (
	"context"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// SolarFetcher defines the interface for querying a solar-resource API.
type SolarFetcher interface {
	FetchMonthlyYield(ctx context.Context, site model.Site) (*model.SolarEstimate, error)
	FetchHorizon(ctx context.Context, lat, lon float64) ([]model.HorizonPoint, error)
	Name() string
}

// Geocoder resolves a free-text place query to coordinates. A query
// with no matches reports ok = false with a nil error; callers keep
// their current location in that case.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, ok bool, err error)
}
