package v1

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/clinical"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/phonelog"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

func TestProductCRUD(t *testing.T) {
	s := newTestServer(t, testConfig())
	admin := s.login(t, "admin@psiklinik.com", "admin123")

	w := s.do(t, http.MethodGet, "/api/v1/products", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]inventory.Product](t, w), 4)

	w = s.do(t, http.MethodPost, "/api/v1/products", admin, gin.H{
		"name": "Dosya Dolabı", "category": "Mobilya", "stock": 2, "minStock": 5,
		"price": "900", "supplier": "Mobilya Ltd",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[inventory.Product](t, w)
	assert.Equal(t, inventory.StockLow, created.Status)
	assert.NotEmpty(t, created.ID)

	path := "/api/v1/products/" + created.ID
	w = s.do(t, http.MethodPatch, path, admin, gin.H{"stock": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, inventory.StockOut, decode[inventory.Product](t, w).Status)

	w = s.do(t, http.MethodPut, path, admin, gin.H{"stock": 20})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, inventory.StockNormal, decode[inventory.Product](t, w).Status)

	w = s.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"id":"`+created.ID+`"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, path, admin, gin.H{"stock": 1}).Code)
}

func TestProductValidation(t *testing.T) {
	s := newTestServer(t, testConfig())
	admin := s.login(t, "admin@psiklinik.com", "admin123")

	w := s.do(t, http.MethodPost, "/api/v1/products", admin, gin.H{"name": "", "stock": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "fields")
	assert.Equal(t, 4, s.repos.Products.Count(), "rejected input must not be stored")

	w = s.do(t, http.MethodPost, "/api/v1/products", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFilters(t *testing.T) {
	s := newTestServer(t, testConfig())
	psych := s.login(t, "zeynep@psiklinik.com", "zeynep123")

	w := s.do(t, http.MethodGet, "/api/v1/sessions?patientId=pat_001", psych, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode[[]clinical.Session](t, w)
	require.Len(t, sessions, 1)
	assert.Equal(t, "ses_001", sessions[0].ID)

	w = s.do(t, http.MethodGet, "/api/v1/sessions?patientId=pat_404", psych, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"data":[]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/sessions?color=blue", psych, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/budgets?period=monthly", psych, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "year is required")
}

func TestPatientChart(t *testing.T) {
	s := newTestServer(t, testConfig())
	psych := s.login(t, "zeynep@psiklinik.com", "zeynep123")

	w := s.do(t, http.MethodGet, "/api/v1/patients/pat_001/chart", psych, nil)
	require.Equal(t, http.StatusOK, w.Code)
	chart := decode[service.Chart](t, w)
	assert.Equal(t, 38, chart.Age)
	assert.Len(t, chart.Documents, 2)

	w = s.do(t, http.MethodGet, "/api/v1/patients/pat_404/chart", psych, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowUps(t *testing.T) {
	s := newTestServer(t, testConfig())
	secretary := s.login(t, "elif@psiklinik.com", "elif123")

	w := s.do(t, http.MethodGet, "/api/v1/phone-logs/follow-ups", secretary, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[[]phonelog.PhoneLog](t, w)
	require.Len(t, logs, 1)
	assert.Equal(t, "call_001", logs[0].ID)
}

func TestFinanceRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())
	admin := s.login(t, "admin@psiklinik.com", "admin123")

	w := s.do(t, http.MethodGet, "/api/v1/finance/summary", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[service.Summary](t, w)
	assert.True(t, decimal.NewFromInt(750).Equal(sum.TotalRevenue))
	assert.True(t, decimal.NewFromInt(300).Equal(sum.PendingPayments))

	w = s.do(t, http.MethodGet, "/api/v1/finance/summary?from=2024-13-01", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/budgets/bud_001/utilization", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 74.0, decode[service.BudgetUsage](t, w).Utilization, 0.001)

	assert.Equal(t, http.StatusNotFound,
		s.do(t, http.MethodGet, "/api/v1/budgets/bud_missing/utilization", admin, nil).Code)

	// Nothing is past due on the test clock yet.
	w = s.do(t, http.MethodPost, "/api/v1/finance/sweep", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]finance.Invoice](t, w))
}

func TestInventoryRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())
	admin := s.login(t, "admin@psiklinik.com", "admin123")

	w := s.do(t, http.MethodGet, "/api/v1/inventory/low-stock", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]inventory.Product](t, w), 2)

	w = s.do(t, http.MethodGet, "/api/v1/inventory/search?q=tech%20supplier", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]inventory.Product](t, w)
	require.Len(t, found, 2)
	assert.Equal(t, "prd_001", found[0].ID)

	// Test clock is past sinv_001's due date.
	w = s.do(t, http.MethodPost, "/api/v1/inventory/sweep", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	moved := decode[[]inventory.SupplierInvoice](t, w)
	require.Len(t, moved, 1)
	assert.Equal(t, "sinv_001", moved[0].ID)

	w = s.do(t, http.MethodPost, "/api/v1/inventory/refresh-status", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"changed":0}}`, w.Body.String())
}

func TestOfficeRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())
	secretary := s.login(t, "elif@psiklinik.com", "elif123")

	w := s.do(t, http.MethodGet, "/api/v1/office/agenda?date=2024-01-15", secretary, nil)
	require.Equal(t, http.StatusOK, w.Code)
	agenda := decode[service.Agenda](t, w)
	assert.Len(t, agenda.Appointments, 1)
	assert.Len(t, agenda.Shifts, 2)

	w = s.do(t, http.MethodGet, "/api/v1/office/agenda?date=15.01.2024", secretary, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/office/search?q=fatura", secretary, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[service.OfficeSearchResult](t, w).Expenses, 1)
}

func TestNotificationRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login(t, "merve@psiklinik.com", "merve123")

	w := s.do(t, http.MethodGet, "/api/v1/notifications/unread", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]notification.Notification](t, w), 2)

	w = s.do(t, http.MethodPost, "/api/v1/notifications/ntf_001/read", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[notification.Notification](t, w).Read)

	w = s.do(t, http.MethodPost, "/api/v1/notifications/ntf_404/read", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"updated":1}}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/notifications", token, gin.H{
		"title": "Yeni mesaj", "message": "Test", "type": "info", "userId": "usr_004",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReportRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())
	admin := s.login(t, "admin@psiklinik.com", "admin123")

	w := s.do(t, http.MethodGet, "/api/v1/reports/financial", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rep := decode[service.Report](t, w)
	profit, ok := rep.Figure("netProfit")
	require.True(t, ok)
	assert.Equal(t, "-7750", profit.String())

	w = s.do(t, http.MethodGet, "/api/v1/reports/inventory?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inventory-report-2024-02-01.csv")

	r := csv.NewReader(strings.NewReader(w.Body.String()))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1+4+1+5, "header, rows, metric header, figures")

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/reports/payroll", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodGet, "/api/v1/reports/inventory?format=xml", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodGet, "/api/v1/reports/appointments?date=yesterday", admin, nil).Code)
}
