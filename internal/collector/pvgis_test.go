package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pvcalcBody() string {
	var months []string
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf(`{"month": %d, "E_d": 3.2, "E_m": %d}`, m, m*10+50))
	}
	return fmt.Sprintf(`{
		"inputs": {"location": {"latitude": 42.87, "longitude": 74.59}},
		"outputs": {
			"monthly": {"fixed": [%s]},
			"totals": {"fixed": {"E_d": 3.8, "E_m": 115.0, "E_y": 1380.0}}
		}
	}`, strings.Join(months, ","))
}

func TestPVGISFetcher_FetchMonthlyYield(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/PVcalc") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("outputformat") != "json" {
			t.Errorf("expected json output format, got %q", r.URL.Query().Get("outputformat"))
		}
		fmt.Fprint(w, pvcalcBody())
	}))
	defer srv.Close()

	f := NewPVGISFetcher(srv.URL, "")
	est, err := f.FetchMonthlyYield(context.Background(), testSite())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Monthly[0] != 60 || est.Monthly[11] != 170 {
		t.Errorf("monthly series parsed wrong: Jan %.0f, Dec %.0f", est.Monthly[0], est.Monthly[11])
	}
	if est.AnnualKWh != 1380 {
		t.Errorf("expected annual total 1380, got %.1f", est.AnnualKWh)
	}
	if !est.Verified {
		t.Error("fetched estimate must be verified")
	}
	if est.Source != "pvgis" {
		t.Errorf("expected source pvgis, got %q", est.Source)
	}
}

func TestPVGISFetcher_FetchMonthlyYield_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewPVGISFetcher(srv.URL, "")
	if _, err := f.FetchMonthlyYield(context.Background(), testSite()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestPVGISFetcher_FetchHorizon(t *testing.T) {
	const table = "Latitude: 42.870	\nLongitude: 74.590\n" +
		"-180.0\t2.5\n" +
		"-90.0\t5.0\n" +
		"0.0\t12.5\n" +
		"not a number row\n" +
		"90.0\t7.5\n" +
		"180.0\t3.0\n" +
		"\n" +
		"PVGIS (c) European Union\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/printhorizon") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, table)
	}))
	defer srv.Close()

	f := NewPVGISFetcher(srv.URL, "")
	points, err := f.FetchHorizon(context.Background(), 42.87, 74.59)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 parsed points, got %d", len(points))
	}
	if points[2].Azimuth != 0 || points[2].Elevation != 12.5 {
		t.Errorf("south sample parsed wrong: %+v", points[2])
	}
}

func TestParseHorizonTable_SkipsHeaderAndBadRows(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"data hidden in header is skipped", "0 10\n0 10\n-90 5\n90 7\n", 2},
		{"garbage rows skipped", "h1\nh2\n-90 5\nfoo bar\n1.5 NaN\n2.0 Inf\n90 6\n", 2},
		{"single column skipped", "h1\nh2\n42\n90 6\n", 1},
		{"all garbage yields nil", "h1\nh2\nx y\nz\n", 0},
		{"header only yields nil", "h1\nh2\n", 0},
		{"empty input yields nil", "", 0},
	}
	for _, tt := range tests {
		got := parseHorizonTable(tt.raw)
		if len(got) != tt.want {
			t.Errorf("%s: expected %d points, got %d", tt.name, tt.want, len(got))
		}
	}
}
