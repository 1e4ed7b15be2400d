package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SweepResult counts the records one sweep changed.
type SweepResult struct {
	SupplierInvoices int `json:"supplierInvoices"`
	PatientInvoices  int `json:"patientInvoices"`
	StockRefreshed   int `json:"stockRefreshed"`
}

// Sweeper applies the time-driven transitions: overdue invoices of both
// kinds and stale product stock statuses.
type Sweeper struct {
	inventory *InventoryService
	finance   *FinanceService
	counts    func() map[string]int
	interval  time.Duration
	deps      Deps
}

// NewSweeper builds a sweeper. counts, when set, is published as the
// per-store record gauge after every run.
func NewSweeper(inv *InventoryService, fin *FinanceService, counts func() map[string]int, interval time.Duration, deps Deps) *Sweeper {
	return &Sweeper{inventory: inv, finance: fin, counts: counts, interval: interval, deps: deps}
}

func (s *Sweeper) RunOnce(ctx context.Context) SweepResult {
	res := SweepResult{
		SupplierInvoices: len(s.inventory.SweepOverdueInvoices(ctx, SystemActor)),
		PatientInvoices:  len(s.finance.SweepOverdueInvoices(ctx, SystemActor)),
		StockRefreshed:   s.inventory.RefreshStockStatuses(ctx, SystemActor),
	}

	if m := s.deps.Metrics; m != nil {
		m.SweepRuns.Inc()
		if s.counts != nil {
			m.ObserveRecords(s.counts())
		}
	}
	s.deps.Log.Debug("sweep finished",
		zap.Int("supplier_invoices", res.SupplierInvoices),
		zap.Int("patient_invoices", res.PatientInvoices),
		zap.Int("stock_refreshed", res.StockRefreshed),
	)
	return res
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.deps.Log.Info("sweeper started", zap.Duration("interval", s.interval))
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.deps.Log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
