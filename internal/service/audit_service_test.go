package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/metrics"
)

type failingAudit struct{}

func (failingAudit) Create(context.Context, *domain.AuditLog) error { return errors.New("db down") }

// blockingAudit holds the worker inside Create until release is closed.
type blockingAudit struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAudit) Create(ctx context.Context, _ *domain.AuditLog) error {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
	return nil
}

func TestAuditServiceDrainsOnShutdown(t *testing.T) {
	sink := &recordingAudit{}
	m := metrics.NewCollector("psiklinik-test")
	svc := NewAuditService(sink, m, zap.NewNop())

	for _, id := range []string{"pat_001", "pat_002", "pat_003"} {
		svc.LogAsync(context.Background(), AuditEntry{
			Actor: staff, Action: domain.ActionRead, ResourceType: "patients", ResourceID: id,
		})
	}
	svc.Shutdown()

	require.Len(t, sink.entries, 3)
	e := sink.entries[0]
	assert.Equal(t, "usr_001", e.UserID)
	assert.Equal(t, domain.RoleAdmin, e.UserRole)
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, "{}", e.Changes)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AuditEntriesTotal))
}

func TestAuditServiceRecordsChanges(t *testing.T) {
	sink := &recordingAudit{}
	svc := NewAuditService(sink, nil, zap.NewNop())

	svc.LogAsync(context.Background(), AuditEntry{
		Actor: staff, Action: domain.ActionUpdate, ResourceType: "products", ResourceID: "prd_001",
		Changes: map[string]int{"stock": 3},
	})
	svc.Shutdown()

	require.Len(t, sink.entries, 1)
	assert.JSONEq(t, `{"stock":3}`, sink.entries[0].Changes)
}

func TestAuditServiceSinkFailure(t *testing.T) {
	m := metrics.NewCollector("psiklinik-test")
	svc := NewAuditService(failingAudit{}, m, zap.NewNop())

	svc.LogAsync(context.Background(), AuditEntry{Actor: staff, Action: domain.ActionDelete, ResourceType: "expenses"})
	svc.Shutdown()

	assert.Zero(t, testutil.ToFloat64(m.AuditEntriesTotal))
}

func TestAuditServiceDropsWhenFull(t *testing.T) {
	sink := &blockingAudit{entered: make(chan struct{}, 1), release: make(chan struct{})}
	m := metrics.NewCollector("psiklinik-test")
	svc := NewAuditService(sink, m, zap.NewNop())

	entry := AuditEntry{Actor: staff, Action: domain.ActionRead, ResourceType: "patients", ResourceID: "pat_001"}
	svc.LogAsync(context.Background(), entry)
	<-sink.entered

	// The worker is parked on the first entry, so the buffer fills exactly.
	for range auditBufferSize + 2 {
		svc.LogAsync(context.Background(), entry)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuditBufferDropped))

	close(sink.release)
	svc.Shutdown()
	assert.Equal(t, float64(auditBufferSize+1), testutil.ToFloat64(m.AuditEntriesTotal))
}

func TestAuditServiceAfterShutdown(t *testing.T) {
	sink := &recordingAudit{}
	m := metrics.NewCollector("psiklinik-test")
	svc := NewAuditService(sink, m, zap.NewNop())
	svc.Shutdown()

	entry := AuditEntry{Actor: staff, Action: domain.ActionUpdate, ResourceType: "invoices", ResourceID: "inv_002"}
	assert.NotPanics(t, func() { svc.LogAsync(context.Background(), entry) })
	assert.NotPanics(t, svc.Shutdown)

	assert.Empty(t, sink.entries)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditBufferDropped))
}
