package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeperRunOnce(t *testing.T) {
	h := newHarness(t, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	sw := NewSweeper(h.svc.Inventory, h.svc.Finance, h.repos.Counts, time.Hour, h.deps)

	res := sw.RunOnce(context.Background())
	assert.Equal(t, SweepResult{SupplierInvoices: 1, PatientInvoices: 1}, res)
	assert.Equal(t, SweepResult{}, sw.RunOnce(context.Background()))

	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.SweepRuns))
	assert.Equal(t, 4.0, testutil.ToFloat64(h.metrics.Records.WithLabelValues("products")))
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, testNow)
	sw := NewSweeper(h.svc.Inventory, h.svc.Finance, nil, 10*time.Millisecond, h.deps)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return testutil.ToFloat64(h.metrics.SweepRuns) >= 2 },
		time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperRunOnceAfterAuditShutdown(t *testing.T) {
	h := newHarness(t, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	sw := NewSweeper(h.svc.Inventory, h.svc.Finance, nil, time.Hour, h.deps)
	h.deps.Audit.Shutdown()

	var res SweepResult
	require.NotPanics(t, func() { res = sw.RunOnce(context.Background()) })
	assert.Equal(t, SweepResult{SupplierInvoices: 1, PatientInvoices: 1}, res)
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.AuditBufferDropped))
}
