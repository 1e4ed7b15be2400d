package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dateRange(t *testing.T, from, to string) domain.DateRange {
	t.Helper()
	r, err := ParseDateRange(from, to)
	require.NoError(t, err)
	return r
}

func TestFinanceTotals(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	fin := h.svc.Finance

	all := domain.DateRange{}
	assert.True(t, dec("750").Equal(fin.TotalRevenue(ctx, all)))
	assert.True(t, dec("300").Equal(fin.PendingPayments(ctx, all)))

	// Range bounds are inclusive.
	jan15 := dateRange(t, "2024-01-15", "2024-01-15")
	assert.True(t, dec("750").Equal(fin.TotalRevenue(ctx, jan15)))

	feb := dateRange(t, "2024-02-01", "")
	assert.True(t, fin.TotalRevenue(ctx, feb).IsZero())

	byMethod := fin.PaymentSummary(ctx, all)
	assert.Len(t, byMethod, 4)
	assert.True(t, dec("350").Equal(byMethod[finance.MethodCard]))
	assert.True(t, dec("400").Equal(byMethod[finance.MethodCash]))
	assert.True(t, byMethod[finance.MethodInsurance].IsZero(), "pending payments are not revenue")
}

func TestFinanceRevenueFollowsStatusChanges(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	fin := h.svc.Finance

	completed := finance.PaymentCompleted
	_, err := fin.Payments.Update(ctx, staff, "pay_003", finance.UpdatePaymentInput{Status: &completed})
	require.NoError(t, err)

	assert.True(t, dec("1050").Equal(fin.TotalRevenue(ctx, domain.DateRange{})))
	assert.True(t, fin.PendingPayments(ctx, domain.DateRange{}).IsZero())
}

func TestFinanceOverdueInvoices(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	assert.Empty(t, h.svc.Finance.OverdueInvoices(ctx))

	// Past the due date the sent invoice is reported before any sweep.
	h = newHarness(t, time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"inv_002"}, ids(h.svc.Finance.OverdueInvoices(ctx)))

	changed := h.svc.Finance.SweepOverdueInvoices(ctx, SystemActor)
	require.Len(t, changed, 1)
	assert.Equal(t, finance.InvoiceOverdue, changed[0].Status)
	assert.Equal(t, []string{"inv_002"}, ids(h.svc.Finance.OverdueInvoices(ctx)))
	assert.Empty(t, h.svc.Finance.SweepOverdueInvoices(ctx, SystemActor))
	h.requireAudited(t, domain.ActionSweep, "invoices", "inv_002")
}

func TestFinanceBudgetUtilization(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()
	fin := h.svc.Finance

	u, err := fin.BudgetUtilization(ctx, "bud_001")
	require.NoError(t, err)
	assert.True(t, u.Defined)
	assert.InDelta(t, 74.0, u.Utilization, 0.001)
	assert.True(t, dec("6500").Equal(u.Remaining))

	u, err = fin.BudgetUtilization(ctx, "bud_003")
	require.NoError(t, err)
	assert.InDelta(t, 106.67, u.Utilization, 0.001)
	assert.True(t, u.Remaining.IsNegative())
	assert.Equal(t, finance.BudgetExceeded, u.Status)

	zero, err := fin.Budgets.Create(ctx, staff, finance.CreateBudgetInput{
		Category: "Eğitim", Period: finance.PeriodYearly, Year: 2024,
	})
	require.NoError(t, err)
	u, err = fin.BudgetUtilization(ctx, zero.ID)
	require.NoError(t, err)
	assert.False(t, u.Defined)
	assert.Zero(t, u.Utilization)

	_, err = fin.BudgetUtilization(ctx, "bud_missing")
	assert.ErrorIs(t, err, finance.ErrBudgetNotFound)
}

func TestFinanceSummary(t *testing.T) {
	h := newHarness(t, testNow)
	sum := h.svc.Finance.Summary(context.Background(), domain.DateRange{})

	assert.True(t, dec("750").Equal(sum.TotalRevenue))
	assert.True(t, dec("300").Equal(sum.PendingPayments))
	assert.Zero(t, sum.OverdueInvoices)
	assert.True(t, dec("472").Equal(sum.OutstandingTotal))
	require.Len(t, sum.Budgets, 3)
	assert.Equal(t, "bud_001", sum.Budgets[0].BudgetID, "largest spend first")
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)

	_, err = ParseDateRange("2024-02-01", "2024-01-01")
	assert.Error(t, err)

	_, err = ParseDateRange("yesterday", "")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}
