package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/model"
)

// SQLiteStore persists scenarios to a local SQLite database file.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a viewer can read the scenario list while a save is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite scenario store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scenarios (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			created_at         INTEGER NOT NULL,
			station_cost       REAL,
			system_capacity    REAL,
			annual_yield_year1 REAL,
			usd_som_exchange   REAL,
			panel_degradation  REAL,
			inflation_rate     REAL,
			base_tariff        REAL,
			project_lifetime   INTEGER,
			start_year         INTEGER,
			manager_name       TEXT,
			manager_role       TEXT,
			customer_name      TEXT,
			location           TEXT,
			est_lat            REAL,
			est_lon            REAL,
			monthly_kwh        TEXT,
			annual_kwh         REAL,
			est_source         TEXT,
			est_verified       INTEGER,
			fetched_at         INTEGER,
			payback_years      REAL,
			roi_percent        REAL,
			total_revenue      REAL,
			break_even_year    INTEGER,
			specific_yield     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scenarios_created ON scenarios(created_at)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// Save assigns the scenario its identity and persists the full snapshot.
// Scenarios are write-once; there is deliberately no UPDATE statement in
// this package.
func (s *SQLiteStore) Save(ctx context.Context, sc *model.SavedScenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc.ID = uuid.NewString()
	sc.CreatedAt = time.Now().UTC()

	monthly, err := json.Marshal(sc.Estimate.Monthly)
	if err != nil {
		return fmt.Errorf("encode monthly series: %w", err)
	}

	a := sc.Assumptions
	est := sc.Estimate
	sum := sc.Summary
	_, err = s.db.ExecContext(ctx, `INSERT INTO scenarios
		(id, name, created_at,
		 station_cost, system_capacity, annual_yield_year1, usd_som_exchange,
		 panel_degradation, inflation_rate, base_tariff, project_lifetime, start_year,
		 manager_name, manager_role, customer_name, location,
		 est_lat, est_lon, monthly_kwh, annual_kwh, est_source, est_verified, fetched_at,
		 payback_years, roi_percent, total_revenue, break_even_year, specific_yield)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sc.ID, sc.Name, sc.CreatedAt.Unix(),
		a.StationCost, a.SystemCapacity, a.AnnualYieldYear1, a.USDSomExchange,
		a.PanelDegradation, a.InflationRate, a.BaseTariff, a.ProjectLifetime, a.StartYear,
		a.ManagerName, a.ManagerRole, a.CustomerName, a.Location,
		est.Lat, est.Lon, string(monthly), est.AnnualKWh, est.Source, boolToInt(est.Verified), est.FetchedAt.Unix(),
		sum.PaybackYears, sum.ROIPercent, sum.TotalRevenue, sum.BreakEvenYear, sum.SpecificYield,
	)
	return err
}

// List returns all scenarios, newest first. Rowid breaks ties between
// saves that land on the same second, preserving insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]model.SavedScenario, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, name, created_at,
		station_cost, system_capacity, annual_yield_year1, usd_som_exchange,
		panel_degradation, inflation_rate, base_tariff, project_lifetime, start_year,
		manager_name, manager_role, customer_name, location,
		est_lat, est_lon, monthly_kwh, annual_kwh, est_source, est_verified, fetched_at,
		payback_years, roi_percent, total_revenue, break_even_year, specific_yield
		FROM scenarios ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	var list []model.SavedScenario
	for rows.Next() {
		var sc model.SavedScenario
		var createdAt, fetchedAt int64
		var verified int
		var monthly string
		if err := rows.Scan(
			&sc.ID, &sc.Name, &createdAt,
			&sc.Assumptions.StationCost, &sc.Assumptions.SystemCapacity,
			&sc.Assumptions.AnnualYieldYear1, &sc.Assumptions.USDSomExchange,
			&sc.Assumptions.PanelDegradation, &sc.Assumptions.InflationRate,
			&sc.Assumptions.BaseTariff, &sc.Assumptions.ProjectLifetime, &sc.Assumptions.StartYear,
			&sc.Assumptions.ManagerName, &sc.Assumptions.ManagerRole,
			&sc.Assumptions.CustomerName, &sc.Assumptions.Location,
			&sc.Estimate.Lat, &sc.Estimate.Lon, &monthly, &sc.Estimate.AnnualKWh,
			&sc.Estimate.Source, &verified, &fetchedAt,
			&sc.Summary.PaybackYears, &sc.Summary.ROIPercent, &sc.Summary.TotalRevenue,
			&sc.Summary.BreakEvenYear, &sc.Summary.SpecificYield,
		); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		sc.CreatedAt = time.Unix(createdAt, 0).UTC()
		sc.Estimate.FetchedAt = time.Unix(fetchedAt, 0).UTC()
		sc.Estimate.Verified = verified != 0
		if err := json.Unmarshal([]byte(monthly), &sc.Estimate.Monthly); err != nil {
			return nil, fmt.Errorf("decode monthly series for %s: %w", sc.ID, err)
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

// Delete removes a scenario by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing scenario store")
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
