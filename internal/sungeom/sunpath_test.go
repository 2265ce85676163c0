package sungeom

import (
	"math"
	"reflect"
	"testing"
)

func TestSunPath_EquatorEquinoxSymmetric(t *testing.T) {
	const cx, cy, r = 100.0, 100.0, 50.0
	p := SunPath(0, 0, cx, cy, r)
	if len(p.Points) == 0 {
		t.Fatal("expected a visible sun path at the equator")
	}
	if p.Closed {
		t.Error("sun paths must be open polylines")
	}

	// Sunrise due east, sunset due west, both on the rim.
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	if math.Abs(first.X-(cx+r)) > 1e-6 || math.Abs(first.Y-cy) > 1e-6 {
		t.Errorf("expected sunrise at (%.0f, %.0f), got (%.6f, %.6f)", cx+r, cy, first.X, first.Y)
	}
	if math.Abs(last.X-(cx-r)) > 1e-6 || math.Abs(last.Y-cy) > 1e-6 {
		t.Errorf("expected sunset at (%.0f, %.0f), got (%.6f, %.6f)", cx-r, cy, last.X, last.Y)
	}

	// Mirror symmetry about the north-south axis.
	for i, j := 0, len(p.Points)-1; i < j; i, j = i+1, j-1 {
		a, b := p.Points[i], p.Points[j]
		if math.Abs((a.X+b.X)-2*cx) > 1e-6 || math.Abs(a.Y-b.Y) > 1e-6 {
			t.Fatalf("points %d and %d not mirrored: (%.6f, %.6f) vs (%.6f, %.6f)", i, j, a.X, a.Y, b.X, b.Y)
		}
	}
}

func TestSunPath_PolarNightEmpty(t *testing.T) {
	p := SunPath(89, WinterDeclination, 100, 100, 50)
	if len(p.Points) != 0 {
		t.Fatalf("expected no visible path near the pole in winter, got %d points", len(p.Points))
	}
	if p.Data() != "" {
		t.Errorf("empty path must render empty data, got %q", p.Data())
	}
}

func TestSunPath_WinterShorterThanSummer(t *testing.T) {
	// Bishkek latitude.
	summer, winter := SolsticePaths(42.87, 100, 100, 50)
	if len(summer.Points) < 2 || len(winter.Points) < 2 {
		t.Fatalf("both solstice paths should be visible at mid latitude, got %d and %d points",
			len(summer.Points), len(winter.Points))
	}
	if len(winter.Points) >= len(summer.Points) {
		t.Errorf("winter day must be shorter: %d summer points vs %d winter points",
			len(summer.Points), len(winter.Points))
	}
}

func TestSunPath_MidLatitudeNoonDueSouth(t *testing.T) {
	const cx, cy, r = 100.0, 100.0, 50.0
	summer, winter := SolsticePaths(42.87, cx, cy, r)

	// The highest sample is the one nearest the centre; at solar noon
	// in the northern hemisphere it must sit due south of the centre,
	// which is below it on the chart.
	noon := summer.Points[0]
	best := math.Inf(1)
	for _, pt := range summer.Points {
		if d := math.Hypot(pt.X-cx, pt.Y-cy); d < best {
			best, noon = d, pt
		}
	}
	if math.Abs(noon.X-cx) > 1e-6 {
		t.Errorf("noon sun should sit on the vertical axis, got x=%.6f", noon.X)
	}
	if noon.Y <= cy {
		t.Errorf("noon sun should plot south of the centre, got y=%.6f (centre %.0f)", noon.Y, cy)
	}

	// In midwinter the sun never leaves the southern sky.
	for i, pt := range winter.Points {
		if pt.Y <= cy {
			t.Errorf("winter point %d at y=%.6f crossed into the northern half", i, pt.Y)
		}
	}
}

func TestSunPath_AllPointsInsideDisc(t *testing.T) {
	p := SunPath(42.87, SummerDeclination, 100, 100, 50)
	for i, pt := range p.Points {
		d := math.Hypot(pt.X-100, pt.Y-100)
		if d > 50+1e-9 {
			t.Errorf("point %d at distance %.6f outside the disc", i, d)
		}
	}
}

func TestSunPath_LatitudeClamped(t *testing.T) {
	a := SunPath(120, SummerDeclination, 100, 100, 50)
	b := SunPath(90, SummerDeclination, 100, 100, 50)
	if !reflect.DeepEqual(a, b) {
		t.Error("latitude beyond 90 should behave like the pole")
	}
}
