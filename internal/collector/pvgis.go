package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// userAgent identifies the tool to the upstream services; Nominatim in
// particular rejects anonymous clients.
const userAgent = "NurSun-Energy-Reporter/1.0"

// horizonHeaderLines is the fixed header of the horizon table output.
const horizonHeaderLines = 2

// PVGISFetcher implements SolarFetcher against the PVGIS public API.
type PVGISFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewPVGISFetcher creates a fetcher with optional proxy support.
func NewPVGISFetcher(baseURL, proxyURL string) *PVGISFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &PVGISFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *PVGISFetcher) Name() string { return "pvgis" }

// pvcalcResponse is the subset of the PVcalc JSON payload we consume.
type pvcalcResponse struct {
	Outputs struct {
		Monthly struct {
			Fixed []struct {
				Month int     `json:"month"`
				EM    float64 `json:"E_m"`
			} `json:"fixed"`
		} `json:"monthly"`
		Totals struct {
			Fixed struct {
				EY float64 `json:"E_y"`
			} `json:"fixed"`
		} `json:"totals"`
	} `json:"outputs"`
}

// FetchMonthlyYield queries the PVcalc endpoint for the site's monthly
// production series and annual total.
func (f *PVGISFetcher) FetchMonthlyYield(ctx context.Context, site model.Site) (*model.SolarEstimate, error) {
	endpoint := fmt.Sprintf("%s/PVcalc?lat=%.6f&lon=%.6f&peakpower=%.3f&loss=%.2f&angle=%.2f&aspect=%.2f&outputformat=json",
		f.BaseURL, site.Lat, site.Lon, site.PeakPowerKW, site.SystemLossPct, site.SlopeDeg, site.AzimuthDeg)

	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("pvcalc: %w", err)
	}

	var resp pvcalcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("pvcalc decode: %w", err)
	}
	if len(resp.Outputs.Monthly.Fixed) != 12 {
		return nil, fmt.Errorf("pvcalc: expected 12 monthly values, got %d", len(resp.Outputs.Monthly.Fixed))
	}

	var monthly model.MonthlyEnergy
	for _, m := range resp.Outputs.Monthly.Fixed {
		if m.Month < 1 || m.Month > 12 {
			return nil, fmt.Errorf("pvcalc: month %d out of range", m.Month)
		}
		monthly[m.Month-1] = m.EM
	}
	annual := resp.Outputs.Totals.Fixed.EY
	if annual == 0 {
		annual = monthly.Total()
	}

	return &model.SolarEstimate{
		Lat:       site.Lat,
		Lon:       site.Lon,
		Monthly:   monthly,
		AnnualKWh: annual,
		Source:    f.Name(),
		Verified:  true,
		FetchedAt: time.Now(),
	}, nil
}

// FetchHorizon queries the printhorizon endpoint and parses its text
// table. Zero usable rows yields a nil slice and no error; the caller
// treats that as "no real data".
func (f *PVGISFetcher) FetchHorizon(ctx context.Context, lat, lon float64) ([]model.HorizonPoint, error) {
	endpoint := fmt.Sprintf("%s/printhorizon?lat=%.6f&lon=%.6f&outputformat=basic", f.BaseURL, lat, lon)
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("printhorizon: %w", err)
	}
	return parseHorizonTable(string(body)), nil
}

func (f *PVGISFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// parseHorizonTable extracts (azimuth, elevation) pairs from the
// horizon text table. The fixed two-line header is skipped; rows whose
// first two whitespace-separated fields do not parse as finite numbers
// are skipped as well, which also absorbs trailing footer lines.
func parseHorizonTable(raw string) []model.HorizonPoint {
	lines := strings.Split(raw, "\n")
	if len(lines) <= horizonHeaderLines {
		return nil
	}
	var points []model.HorizonPoint
	for _, line := range lines[horizonHeaderLines:] {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		az, err1 := strconv.ParseFloat(fields[0], 64)
		elev, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if math.IsNaN(az) || math.IsInf(az, 0) || math.IsNaN(elev) || math.IsInf(elev, 0) {
			continue
		}
		points = append(points, model.HorizonPoint{Azimuth: az, Elevation: elev})
	}
	return points
}
