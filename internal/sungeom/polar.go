// Package sungeom projects horizon profiles and solar trajectories onto
// a 2D polar chart: the zenith maps to the centre of a disc of radius R
// and the horizon to its rim, with north at the top and azimuth growing
// clockwise.
package sungeom

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in chart coordinates.
type Point struct {
	X float64
	Y float64
}

// Path is a polyline in chart coordinates. Closed paths outline the
// horizon silhouette; open paths trace sun trajectories. Synthetic
// marks fallback data that did not come from a real lookup.
type Path struct {
	Points    []Point
	Closed    bool
	Synthetic bool
}

// Data renders the path as an SVG path description ("M x y L x y ... Z").
// An empty path renders as an empty string.
func (p Path) Data() string {
	if len(p.Points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			fmt.Fprintf(&b, "M %.2f %.2f", pt.X, pt.Y)
		} else {
			fmt.Fprintf(&b, " L %.2f %.2f", pt.X, pt.Y)
		}
	}
	if p.Closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// PolarPoint maps a sky direction to chart coordinates. Azimuth follows
// the site convention (0 = south, -90 = east, +90 = west); elevation 90
// lands on the centre and elevation 0 on the rim. Elevation outside
// [0, 90] is clamped so the point stays on the disc.
func PolarPoint(azimuthDeg, elevationDeg, cx, cy, radius float64) Point {
	elev := elevationDeg
	if elev < 0 {
		elev = 0
	}
	if elev > 90 {
		elev = 90
	}
	angle := (azimuthDeg + 90) * math.Pi / 180
	r := radius * (1 - elev/90)
	return Point{
		X: cx + r*math.Cos(angle),
		Y: cy + r*math.Sin(angle),
	}
}
