package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

func figure(t *testing.T, rep Report, name string) string {
	t.Helper()
	v, ok := rep.Figure(name)
	require.True(t, ok, "missing figure %s", name)
	return v.String()
}

func TestReportInventory(t *testing.T) {
	h := newHarness(t, testNow)

	rep, err := h.svc.Reports.Generate(context.Background(), ReportInventory, ReportParams{})
	require.NoError(t, err)

	assert.Equal(t, ReportInventory, rep.Kind)
	assert.Equal(t, testNow, rep.GeneratedAt)
	assert.Equal(t, "4", figure(t, rep, "totalProducts"))
	assert.Equal(t, "406600", figure(t, rep, "totalValue"))
	assert.Equal(t, "1", figure(t, rep, "lowStock"))
	assert.Equal(t, "1", figure(t, rep, "outOfStock"))
	assert.Equal(t, "3", figure(t, rep, "categories"))
	require.Len(t, rep.Rows, 4)
	assert.Equal(t, []string{
		"prd_002", "Ofis Sandalyesi", "Mobilya", "3", "10", "1200.00", "3600.00", "low", "Mobilya Ltd",
	}, rep.Rows[1])
}

func TestReportExpensesRange(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	rep, err := h.svc.Reports.Generate(ctx, ReportExpenses, ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, "2", figure(t, rep, "totalExpenses"))
	assert.Equal(t, "9750", figure(t, rep, "totalAmount"))
	assert.Equal(t, "8500", figure(t, rep, "approvedAmount"))
	assert.Equal(t, "1250", figure(t, rep, "pendingAmount"))

	r, err := ParseDateRange("2024-01-15", "2024-01-31")
	require.NoError(t, err)
	rep, err = h.svc.Reports.Generate(ctx, ReportExpenses, ReportParams{Range: r})
	require.NoError(t, err)
	assert.Equal(t, "1", figure(t, rep, "totalExpenses"))
	assert.Equal(t, "exp_001", rep.Rows[0][0])
}

func TestReportAppointments(t *testing.T) {
	h := newHarness(t, testNow)
	ctx := context.Background()

	day := domain.MustDate("2024-01-15")
	rep, err := h.svc.Reports.Generate(ctx, ReportAppointments, ReportParams{Date: &day})
	require.NoError(t, err)
	assert.Equal(t, "1", figure(t, rep, "totalAppointments"))
	assert.Equal(t, "1", figure(t, rep, "confirmed"))
	assert.Equal(t, "0", figure(t, rep, "revenue"), "only completed appointments earn")

	other := domain.MustDate("2024-01-20")
	rep, err = h.svc.Reports.Generate(ctx, ReportAppointments, ReportParams{Date: &other})
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
}

func TestReportFinancial(t *testing.T) {
	h := newHarness(t, testNow)

	rep, err := h.svc.Reports.Generate(context.Background(), ReportFinancial, ReportParams{})
	require.NoError(t, err)
	assert.Equal(t, "750", figure(t, rep, "totalIncome"))
	assert.Equal(t, "8500", figure(t, rep, "approvedExpenses"))
	assert.Equal(t, "-7750", figure(t, rep, "netProfit"))
	assert.Equal(t, "-1033.33", figure(t, rep, "profitMargin"))
	assert.Equal(t, "18500", figure(t, rep, "pendingSupplierInvoices"))
	assert.Equal(t, [][]string{{"Kira", "8500.00"}}, rep.Rows)
}

func TestReportUnknownKind(t *testing.T) {
	_, err := ParseReportKind("payroll")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	k, err := ParseReportKind("financial")
	require.NoError(t, err)
	assert.Equal(t, ReportFinancial, k)
}

func TestWriteCSV(t *testing.T) {
	rep := Report{
		Columns: []string{"category", "approvedExpenses"},
		Rows:    [][]string{{"Kira, Ofis", "8500.00"}},
		Summary: []Figure{{"netProfit", dec("-7750")}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"category", "approvedExpenses"},
		{"Kira, Ofis", "8500.00"},
		{"metric", "value"},
		{"netProfit", "-7750"},
	}, records)
}
