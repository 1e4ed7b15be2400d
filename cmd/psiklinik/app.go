package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/repository/postgres"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/metrics"
)

// app is everything serve and report share: seeded stores, services and the
// audit pipeline.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	metrics  *metrics.Collector
	repos    *memory.Repositories
	deps     service.Deps
	services *service.Services
	audit    *service.AuditService
	db       *gorm.DB
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	loc := cfg.App.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := func() time.Time { return time.Now().In(loc) }

	repos := memory.New(memory.Options{Clock: clock})
	if cfg.Seed.DemoData {
		repos.SeedDemoData()
		log.Info("demo data seeded", zap.Any("records", repos.Counts()))
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector(cfg.App.Name),
		repos:   repos,
	}

	var sink service.AuditRepository = service.NewLogAuditRepository(log)
	if cfg.Audit.Database {
		db, err := database.Connect(cfg.Audit.DB)
		if err != nil {
			return nil, fmt.Errorf("audit database: %w", err)
		}
		if err := database.Migrate(db, log); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		a.db = db
		sink = postgres.NewAuditRepository(db)
		log.Info("audit log persisted to postgres", zap.String("host", cfg.Audit.DB.Host))
	}
	a.audit = service.NewAuditService(sink, a.metrics, log)

	a.deps = service.Deps{Audit: a.audit, Metrics: a.metrics, Log: log, Now: clock}
	a.services = service.New(reposOf(repos), a.deps)
	a.metrics.ObserveRecords(repos.Counts())
	return a, nil
}

// close drains pending audit entries before dropping the database handle.
func (a *app) close() {
	a.audit.Shutdown()
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.log.Warn("closing audit database", zap.Error(err))
		}
	}
}

func reposOf(r *memory.Repositories) service.Repos {
	return service.Repos{
		Products:         r.Products,
		SupplierInvoices: r.SupplierInvoices,
		Expenses:         r.Expenses,
		Appointments:     r.Appointments,
		Shifts:           r.Shifts,
		Meetings:         r.Meetings,
		Notifications:    r.Notifications,
		Patients:         r.Patients,
		Sessions:         r.Sessions,
		Assessments:      r.Assessments,
		TherapyPlans:     r.TherapyPlans,
		Documents:        r.Documents,
		PhoneLogs:        r.PhoneLogs,
		Payments:         r.Payments,
		Invoices:         r.Invoices,
		Budgets:          r.Budgets,
	}
}
