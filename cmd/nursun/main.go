package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/collector"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/config"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/projection"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/report"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/scheduler"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		// No .env file is fine; the real environment still applies.
		log.Println("[INFO] no .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("NURSUN_CONFIG"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "calc":
		runCalc(cfg, args)
	case "fetch":
		runFetch(cfg, args)
	case "geocode":
		runGeocode(cfg, args)
	case "save":
		runSave(cfg, args)
	case "list":
		runList(cfg, args)
	case "delete":
		runDelete(cfg, args)
	case "export":
		runExport(cfg, args)
	case "watch":
		runWatch(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `nursun - solar PV proposal toolkit

Usage: nursun <command> [flags]

Commands:
  calc      run the financial projection and print the cash-flow table
  fetch     query the solar-resource API for monthly yield and horizon data
  geocode   resolve a free-text place name to coordinates
  save      snapshot assumptions and technical results as a named scenario
  list      list saved scenarios, newest first
  delete    delete a scenario by id
  export    write the financial and technical PDF reports
  watch     re-export the reports on a cron schedule

Run "nursun <command> -h" for command flags. Config file path comes from
NURSUN_CONFIG (default configs/config.yaml).
`)
}

// assumptionFlags registers overrides for the financial assumptions.
// Defaults come from the loaded config, so flags win over environment
// over file over built-ins.
func assumptionFlags(fs *flag.FlagSet, a *model.ProjectAssumptions) {
	fs.Float64Var(&a.StationCost, "cost", a.StationCost, "station cost, USD")
	fs.Float64Var(&a.SystemCapacity, "capacity", a.SystemCapacity, "installed capacity, kWp")
	fs.Float64Var(&a.AnnualYieldYear1, "yield", a.AnnualYieldYear1, "first-year yield, kWh")
	fs.Float64Var(&a.USDSomExchange, "exchange", a.USDSomExchange, "som per USD")
	fs.Float64Var(&a.PanelDegradation, "degradation", a.PanelDegradation, "annual panel degradation, fraction")
	fs.Float64Var(&a.InflationRate, "inflation", a.InflationRate, "annual tariff escalation, fraction")
	fs.Float64Var(&a.BaseTariff, "tariff", a.BaseTariff, "base tariff, som per kWh")
	fs.IntVar(&a.ProjectLifetime, "lifetime", a.ProjectLifetime, "project lifetime, years")
	fs.IntVar(&a.StartYear, "start-year", a.StartYear, "first calendar year of the projection")
	fs.StringVar(&a.CustomerName, "customer", a.CustomerName, "customer name for the report header")
	fs.StringVar(&a.Location, "location", a.Location, "project location for the report header")
}

// siteFlags registers overrides for the site and array geometry.
func siteFlags(fs *flag.FlagSet, s *model.Site) {
	fs.Float64Var(&s.Lat, "lat", s.Lat, "site latitude, degrees")
	fs.Float64Var(&s.Lon, "lon", s.Lon, "site longitude, degrees")
	fs.Float64Var(&s.PeakPowerKW, "peak", s.PeakPowerKW, "installed peak power, kWp")
	fs.Float64Var(&s.SlopeDeg, "slope", s.SlopeDeg, "panel tilt from horizontal, degrees")
	fs.Float64Var(&s.AzimuthDeg, "azimuth", s.AzimuthDeg, "panel azimuth, degrees (0 = south)")
	fs.Float64Var(&s.SystemLossPct, "loss", s.SystemLossPct, "system losses, percent")
}

func newCollector(cfg *config.Config) *collector.Collector {
	fetcher := collector.NewPVGISFetcher(cfg.Solar.PVGISBaseURL, cfg.Proxy)
	log.Printf("[INFO] solar data source: %s", fetcher.Name())
	cache := collector.NewSurveyCache(cfg.Database.SurveyFile)
	return collector.NewCollector(fetcher, cache)
}

func newGeocoder(cfg *config.Config) collector.Geocoder {
	return collector.NewNominatimGeocoder(cfg.Solar.NominatimBaseURL, cfg.Proxy)
}

// openStore falls back to the noop store when SQLite cannot open, so a
// broken database never blocks calculations or exports.
func openStore(cfg *config.Config) store.Store {
	if cfg.Database.SQLitePath == "" {
		return store.NewNoopStore()
	}
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] open scenario store failed, using noop: %v", err)
		return store.NewNoopStore()
	}
	return st
}

func runCalc(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("calc", flag.ExitOnError)
	a := cfg.Project
	assumptionFlags(fs, &a)
	fs.Parse(args)

	if err := a.Validate(); err != nil {
		log.Fatalf("[FATAL] assumptions: %v", err)
	}
	rows := projection.Build(a)
	sum := projection.Summarize(a, rows)
	fmt.Print(report.FormatProjectionTable(rows))
	fmt.Print(report.FormatSummary(a, sum))
}

func runFetch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	site := cfg.Site
	siteFlags(fs, &site)
	place := fs.String("place", "", "free-text location to geocode before fetching")
	fs.Parse(args)

	ctx := context.Background()
	if *place != "" {
		resolveLocation(ctx, cfg, *place, &site)
	}
	survey := newCollector(cfg).Survey(ctx, site)
	fmt.Print(report.FormatSurvey(survey))
}

func runGeocode(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("geocode", flag.ExitOnError)
	fs.Parse(args)
	query := strings.Join(fs.Args(), " ")
	if query == "" {
		log.Fatal("[FATAL] usage: nursun geocode <place name>")
	}

	lat, lon, ok, err := newGeocoder(cfg).Geocode(context.Background(), query)
	if err != nil {
		log.Fatalf("[FATAL] geocode: %v", err)
	}
	if !ok {
		log.Printf("[WARN] no match for %q", query)
		return
	}
	fmt.Printf("%s -> %.6f, %.6f\n", query, lat, lon)
}

func runSave(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	name := fs.String("name", "", "scenario display name (required)")
	a := cfg.Project
	assumptionFlags(fs, &a)
	site := cfg.Site
	siteFlags(fs, &site)
	fs.Parse(args)

	if *name == "" {
		log.Fatal("[FATAL] -name is required")
	}
	if err := a.Validate(); err != nil {
		log.Fatalf("[FATAL] assumptions: %v", err)
	}

	ctx := context.Background()
	st := openStore(cfg)
	defer st.Close()

	survey := newCollector(cfg).Survey(ctx, site)
	rows := projection.Build(a)
	sc := &model.SavedScenario{
		Name:        *name,
		Assumptions: a,
		Estimate:    survey.Estimate,
		Summary:     projection.Summarize(a, rows),
	}
	if err := st.Save(ctx, sc); err != nil {
		log.Fatalf("[FATAL] save scenario: %v", err)
	}
	fmt.Printf("saved scenario %s (%s)\n", sc.ID, sc.Name)
}

func runList(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)

	st := openStore(cfg)
	defer st.Close()

	list, err := st.List(context.Background())
	if err != nil {
		log.Fatalf("[FATAL] list scenarios: %v", err)
	}
	fmt.Print(report.FormatScenarioList(list))
}

func runDelete(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "scenario id to delete (required)")
	fs.Parse(args)
	if *id == "" {
		log.Fatal("[FATAL] -id is required")
	}

	st := openStore(cfg)
	defer st.Close()

	err := st.Delete(context.Background(), *id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Printf("[WARN] scenario %s not found", *id)
	case err != nil:
		log.Fatalf("[FATAL] delete scenario: %v", err)
	default:
		fmt.Printf("deleted scenario %s\n", *id)
	}
}

func runExport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	outDir := fs.String("out", cfg.Report.OutputDir, "directory for the PDF reports")
	a := cfg.Project
	assumptionFlags(fs, &a)
	site := cfg.Site
	siteFlags(fs, &site)
	fs.Parse(args)

	if err := a.Validate(); err != nil {
		log.Fatalf("[FATAL] assumptions: %v", err)
	}

	survey := newCollector(cfg).Survey(context.Background(), site)
	rows := projection.Build(a)
	sum := projection.Summarize(a, rows)

	finPath := filepath.Join(*outDir, "financial_report.pdf")
	if err := report.WriteFinancialPDF(finPath, a, rows, sum); err != nil {
		log.Fatalf("[FATAL] write financial report: %v", err)
	}
	log.Printf("[INFO] financial report written: %s", finPath)

	techPath := filepath.Join(*outDir, "technical_report.pdf")
	if err := report.WriteTechnicalPDF(techPath, a, survey, sum); err != nil {
		log.Fatalf("[FATAL] write technical report: %v", err)
	}
	log.Printf("[INFO] technical report written: %s", techPath)
}

func runWatch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cronSpec := fs.String("cron", cfg.Watch.Cron, "cron schedule (six fields, with seconds)")
	fs.Parse(args)

	if err := cfg.Project.Validate(); err != nil {
		log.Fatalf("[FATAL] assumptions: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, newCollector(cfg), cfg)
	if err := sched.RegisterWatch(*cronSpec); err != nil {
		log.Fatalf("[FATAL] register watch task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, exporting now")
		go sched.RunNow()
	}

	log.Println("[INFO] nursun watch is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] nursun stopped")
}

// resolveLocation overwrites the site coordinates with the geocoded
// match. No match or a lookup failure leaves the coordinates unchanged.
func resolveLocation(ctx context.Context, cfg *config.Config, place string, site *model.Site) {
	lat, lon, ok, err := newGeocoder(cfg).Geocode(ctx, place)
	if err != nil {
		log.Printf("[WARN] geocode %q: %v, keeping configured coordinates", place, err)
		return
	}
	if !ok {
		log.Printf("[WARN] no match for %q, keeping configured coordinates", place)
		return
	}
	log.Printf("[INFO] %q resolved to %.6f, %.6f", place, lat, lon)
	site.Lat, site.Lon = lat, lon
}
