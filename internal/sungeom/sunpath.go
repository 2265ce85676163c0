package sungeom

import "math"

// Solar declination at the solstices, degrees.
const (
	SummerDeclination = 23.45
	WinterDeclination = -23.45
)

// hourAngleStepDeg is the sweep resolution of a sun track.
const hourAngleStepDeg = 5

// SunPath traces the sun's apparent trajectory for one day at the given
// latitude and solar declination, projected onto the chart disc. The
// hour angle sweeps -180..180 degrees; samples below the horizon are
// discarded. If fewer than two samples stay visible the path is empty
// (the sun never rises for that combination). Latitude is clamped to
// [-90, 90].
func SunPath(latDeg, declDeg, cx, cy, radius float64) Path {
	if latDeg < -90 {
		latDeg = -90
	}
	if latDeg > 90 {
		latDeg = 90
	}
	phi := latDeg * math.Pi / 180
	decl := declDeg * math.Pi / 180

	var pts []Point
	for h := -180.0; h <= 180; h += hourAngleStepDeg {
		hourAngle := h * math.Pi / 180
		sinAlt := math.Sin(phi)*math.Sin(decl) + math.Cos(phi)*math.Cos(decl)*math.Cos(hourAngle)
		if sinAlt < 0 {
			continue
		}
		alt := math.Asin(sinAlt)

		// Azimuth from the altitude triangle, measured from south to
		// match the chart convention. The ratio is clamped before acos
		// to absorb floating-point overshoot, and the sign mirrors the
		// hour angle (morning east, afternoon west). At the zenith the
		// azimuth is undefined but the projection collapses to the
		// centre regardless.
		azimuth := 0.0
		denom := math.Cos(alt) * math.Cos(phi)
		if math.Abs(denom) > 1e-12 {
			ratio := (sinAlt*math.Sin(phi) - math.Sin(decl)) / denom
			ratio = math.Max(-1, math.Min(1, ratio))
			azimuth = math.Acos(ratio) * 180 / math.Pi
		}
		if h < 0 {
			azimuth = -azimuth
		}
		pts = append(pts, PolarPoint(azimuth, alt*180/math.Pi, cx, cy, radius))
	}
	if len(pts) < 2 {
		return Path{}
	}
	return Path{Points: pts}
}

// SolsticePaths returns the summer and winter solstice sun tracks, the
// seasonal envelope drawn on the horizon chart.
func SolsticePaths(latDeg, cx, cy, radius float64) (summer, winter Path) {
	return SunPath(latDeg, SummerDeclination, cx, cy, radius),
		SunPath(latDeg, WinterDeclination, cx, cy, radius)
}
