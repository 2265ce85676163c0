package sungeom

import (
	"math"
	"testing"
)

func TestPolarPoint_CardinalDirections(t *testing.T) {
	const cx, cy, r = 100.0, 100.0, 50.0
	tests := []struct {
		name   string
		az     float64
		wantX  float64
		wantY  float64
	}{
		{"south at bottom", 0, cx, cy + r},
		{"east at right", -90, cx + r, cy},
		{"west at left", 90, cx - r, cy},
		{"north at top", 180, cx, cy - r},
	}
	for _, tt := range tests {
		got := PolarPoint(tt.az, 0, cx, cy, r)
		if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
			t.Errorf("%s: azimuth %.0f mapped to (%.6f, %.6f), expected (%.1f, %.1f)",
				tt.name, tt.az, got.X, got.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestPolarPoint_ZenithAtCentre(t *testing.T) {
	for _, az := range []float64{-180, -45, 0, 90, 135} {
		got := PolarPoint(az, 90, 100, 100, 50)
		if math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y-100) > 1e-9 {
			t.Errorf("azimuth %.0f at elevation 90: expected centre, got (%.6f, %.6f)", az, got.X, got.Y)
		}
	}
}

func TestPolarPoint_ElevationClamped(t *testing.T) {
	over := PolarPoint(30, 120, 100, 100, 50)
	if math.Abs(over.X-100) > 1e-9 || math.Abs(over.Y-100) > 1e-9 {
		t.Errorf("elevation above 90 should clamp to centre, got (%.6f, %.6f)", over.X, over.Y)
	}
	under := PolarPoint(30, -15, 100, 100, 50)
	d := math.Hypot(under.X-100, under.Y-100)
	if math.Abs(d-50) > 1e-9 {
		t.Errorf("negative elevation should clamp to rim radius 50, got %.6f", d)
	}
}

func TestPathData(t *testing.T) {
	empty := Path{}
	if empty.Data() != "" {
		t.Errorf("empty path should render empty data, got %q", empty.Data())
	}
	open := Path{Points: []Point{{1, 2}, {3, 4}}}
	if got := open.Data(); got != "M 1.00 2.00 L 3.00 4.00" {
		t.Errorf("unexpected open path data: %q", got)
	}
	closed := Path{Points: []Point{{1, 2}, {3, 4}}, Closed: true}
	if got := closed.Data(); got != "M 1.00 2.00 L 3.00 4.00 Z" {
		t.Errorf("unexpected closed path data: %q", got)
	}
}
