package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
)

func ids[T interface{ Identifier() string }](recs []T) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Identifier())
	}
	return out
}

func TestInventoryLowStockAndSearch(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	assert.Equal(t, []string{"prd_002", "prd_003"}, ids(h.svc.Inventory.LowStock(ctx)))
	assert.Equal(t, []string{"prd_001", "prd_004"}, ids(h.svc.Inventory.Search(ctx, "tech supplier")))

	got, err := h.svc.Inventory.Products.List(ctx, Query{"status": "out"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd_003"}, ids(got))
}

func TestInventoryLowStockAlert(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	products := h.svc.Inventory.Products
	unreadBefore := len(h.svc.Notifications.Unread(ctx))

	// normal → low raises a warning.
	p, err := products.Update(ctx, staff, "prd_004", inventory.UpdateProductInput{Stock: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, inventory.StockLow, p.Status)

	unread := h.svc.Notifications.Unread(ctx)
	require.Len(t, unread, unreadBefore+1)
	assert.Equal(t, notification.TypeWarning, unread[0].Type)
	assert.Contains(t, unread[0].Message, "Yazıcı HP LaserJet")
	assert.Equal(t, "usr_001", unread[0].UserID)

	// low → out does not alert again.
	_, err = products.Update(ctx, staff, "prd_004", inventory.UpdateProductInput{Stock: ptr(0)})
	require.NoError(t, err)
	assert.Len(t, h.svc.Notifications.Unread(ctx), unreadBefore+1)

	// A new product created out of stock alerts as an error.
	created, err := products.Create(ctx, staff, inventory.CreateProductInput{
		Name: "Toner", Category: "Kırtasiye", Stock: 0, MinStock: 2, Price: decimal.NewFromInt(900),
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.StockOut, created.Status)
	unread = h.svc.Notifications.Unread(ctx)
	require.Len(t, unread, unreadBefore+2)
	assert.Equal(t, notification.TypeError, unread[0].Type)

	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.LowStockAlertsTotal))
}

func TestInventoryConcurrentDropsAlertOnce(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	unreadBefore := len(h.svc.Notifications.Unread(ctx))

	var wg sync.WaitGroup
	for stock := range 3 {
		wg.Go(func() {
			_, err := h.svc.Inventory.Products.Update(ctx, staff, "prd_004", inventory.UpdateProductInput{Stock: ptr(stock + 1)})
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.Len(t, h.svc.Notifications.Unread(ctx), unreadBefore+1)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.LowStockAlertsTotal))
}

func TestInventoryMinStockPatchRederivesStatus(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	p, err := h.svc.Inventory.Products.Update(ctx, staff, "prd_001", inventory.UpdateProductInput{MinStock: ptr(15)})
	require.NoError(t, err)
	assert.Equal(t, inventory.StockLow, p.Status)
	assert.Equal(t, domain.DateOf(testNow), p.LastUpdated)
}

func TestInventorySweepOverdueInvoices(t *testing.T) {
	h := newHarness(t, time.Date(2024, time.January, 25, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Due today is not overdue yet.
	assert.Empty(t, h.svc.Inventory.SweepOverdueInvoices(ctx, SystemActor))

	h = newHarness(t, time.Date(2024, time.January, 26, 8, 0, 0, 0, time.UTC))
	changed := h.svc.Inventory.SweepOverdueInvoices(ctx, SystemActor)
	require.Len(t, changed, 1)
	assert.Equal(t, "sinv_001", changed[0].ID)
	assert.Equal(t, inventory.InvoiceOverdue, changed[0].Status)
	assert.Empty(t, h.svc.Inventory.SweepOverdueInvoices(ctx, SystemActor), "sweep is idempotent")

	h.requireAudited(t, domain.ActionSweep, "supplier-invoices", "sinv_001")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.SweepTransitions.WithLabelValues("supplier_invoice")))
}

func TestInventoryRefreshStockStatuses(t *testing.T) {
	h := newHarness(t, testNow)
	assert.Zero(t, h.svc.Inventory.RefreshStockStatuses(context.Background(), SystemActor))
}
