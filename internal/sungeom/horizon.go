package sungeom

import (
	"math"
	"sort"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// syntheticStepDeg is the azimuth step of the fallback profile.
const syntheticStepDeg = 5

// HorizonSilhouette builds the closed polygon bounded above by the
// sampled horizon line and below by the chart rim. Samples are sorted
// ascending by azimuth first (input order is not guaranteed); the
// polygon closes by walking the sampled azimuth range backward at zero
// elevation so the filled shape hugs the rim. With no samples at all
// the deterministic synthetic profile is used instead.
func HorizonSilhouette(points []model.HorizonPoint, cx, cy, radius float64) Path {
	if len(points) == 0 {
		return SyntheticHorizon(cx, cy, radius)
	}
	sorted := make([]model.HorizonPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Azimuth < sorted[j].Azimuth })
	return outline(sorted, cx, cy, radius)
}

// SyntheticHorizon returns the fallback silhouette used until real
// horizon data arrives. The profile is a fixed sum of two sinusoids,
// strictly positive, swept over the full azimuth range.
func SyntheticHorizon(cx, cy, radius float64) Path {
	p := outline(syntheticProfile(), cx, cy, radius)
	p.Synthetic = true
	return p
}

func outline(sorted []model.HorizonPoint, cx, cy, radius float64) Path {
	pts := make([]Point, 0, 2*len(sorted))
	for _, hp := range sorted {
		pts = append(pts, PolarPoint(hp.Azimuth, hp.Elevation, cx, cy, radius))
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		pts = append(pts, PolarPoint(sorted[i].Azimuth, 0, cx, cy, radius))
	}
	return Path{Points: pts, Closed: true}
}

func syntheticProfile() []model.HorizonPoint {
	var points []model.HorizonPoint
	for az := -180.0; az <= 180; az += syntheticStepDeg {
		rad := az * math.Pi / 180
		elev := 14 + 8*math.Sin(2*rad+0.6) + 5*math.Sin(3*rad-0.4)
		points = append(points, model.HorizonPoint{Azimuth: az, Elevation: elev})
	}
	return points
}
