package scheduler

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/collector"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/config"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/projection"
	"github.com/rgitaccount/NurSun-Energy-Reporter/internal/report"
)

// Scheduler runs the watch job: re-fetch site data, recompute the
// projection, and re-export both PDF reports on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Cfg       *config.Config
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Cfg:       cfg,
		Ctx:       ctx,
	}
}

// RegisterWatch schedules the export task.
func (s *Scheduler) RegisterWatch(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.exportTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the export task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.exportTask()
}

// exportTask never aborts on degraded data: a failed lookup leaves the
// reports rendered from cached or synthetic values, marked estimated.
func (s *Scheduler) exportTask() {
	log.Println("[INFO] running scheduled report export")

	survey := s.Collector.Survey(s.Ctx, s.Cfg.Site)
	if !survey.Estimate.Verified {
		log.Println("[WARN] estimate unverified, reports will be marked estimated")
	}

	a := s.Cfg.Project
	rows := projection.Build(a)
	sum := projection.Summarize(a, rows)

	finPath := filepath.Join(s.Cfg.Report.OutputDir, "financial_report.pdf")
	if err := report.WriteFinancialPDF(finPath, a, rows, sum); err != nil {
		log.Printf("[ERROR] write financial report: %v", err)
	} else {
		log.Printf("[INFO] financial report written: %s", finPath)
	}

	techPath := filepath.Join(s.Cfg.Report.OutputDir, "technical_report.pdf")
	if err := report.WriteTechnicalPDF(techPath, a, survey, sum); err != nil {
		log.Printf("[ERROR] write technical report: %v", err)
	} else {
		log.Printf("[INFO] technical report written: %s", techPath)
	}
}
