package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/metrics"
)

var testNow = time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (r *recordingAudit) Create(_ context.Context, e *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *recordingAudit) find(action domain.AuditAction, resource, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Action == action && e.ResourceType == resource && e.ResourceID == id {
			return true
		}
	}
	return false
}

type harness struct {
	repos   *memory.Repositories
	svc     *Services
	deps    Deps
	audit   *recordingAudit
	metrics *metrics.Collector
	now     time.Time
}

func reposOf(r *memory.Repositories) Repos {
	return Repos{
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

// newHarness builds seeded services whose clock reads now.
func newHarness(t *testing.T, now time.Time) *harness {
	t.Helper()

	clock := func() time.Time { return now }
	repos := memory.New(memory.Options{Clock: clock, IDs: store.Sequence})
	repos.SeedDemoData()

	log := zap.NewNop()
	m := metrics.NewCollector("psiklinik-test")
	sink := &recordingAudit{}
	audit := NewAuditService(sink, m, log)
	t.Cleanup(audit.Shutdown)

	deps := Deps{Audit: audit, Metrics: m, Log: log, Now: clock}
	return &harness{
		repos:   repos,
		svc:     New(reposOf(repos), deps),
		deps:    deps,
		audit:   sink,
		metrics: m,
		now:     now,
	}
}

func (h *harness) requireAudited(t *testing.T, action domain.AuditAction, resource, id string) {
	t.Helper()
	require.Eventually(t, func() bool { return h.audit.find(action, resource, id) },
		time.Second, 5*time.Millisecond, "no %s audit entry for %s/%s", action, resource, id)
}

var staff = Actor{UserID: "usr_001", Role: domain.RoleAdmin, IP: "127.0.0.1", RequestID: "req-1"}

func ptr[T any](v T) *T { return &v }
