package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/clinical"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

var testNow = time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Clock: func() time.Time { return testNow },
		IDs:   store.Sequence,
	}
}

func seeded(t *testing.T) *Repositories {
	t.Helper()
	r := New(testOptions())
	r.SeedDemoData()
	return r
}

func TestSeedDemoData(t *testing.T) {
	r := seeded(t)

	counts := r.Counts()
	assert.Equal(t, 4, counts["products"])
	assert.Equal(t, 3, counts["notifications"])
	assert.Equal(t, 4, counts["patients"])
	assert.Equal(t, 3, counts["budgets"])
	assert.Equal(t, 0, counts["users"])

	// Seeding again replaces rather than duplicates.
	r.SeedDemoData()
	assert.Equal(t, counts, r.Counts())
}

func TestSeedDerivesProductStatus(t *testing.T) {
	r := seeded(t)

	chair, ok := r.Products.GetByID("prd_002")
	require.True(t, ok)
	assert.Equal(t, inventory.StockLow, chair.Status)

	paper, _ := r.Products.GetByID("prd_003")
	assert.Equal(t, inventory.StockOut, paper.Status)

	laptop, _ := r.Products.GetByID("prd_001")
	assert.Equal(t, inventory.StockNormal, laptop.Status)
}

func TestSeedDerivesInvoiceTotals(t *testing.T) {
	r := seeded(t)

	inv, ok := r.Invoices.GetByID("inv_001")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(350).Equal(inv.Subtotal))
	assert.True(t, decimal.NewFromInt(63).Equal(inv.Tax))
	assert.True(t, decimal.NewFromInt(413).Equal(inv.Total))
	assert.True(t, decimal.NewFromInt(350).Equal(inv.Items[0].Total))
}

func TestProductLifecycle(t *testing.T) {
	r := New(testOptions())

	created, err := r.Products.Create(inventory.CreateProductInput{
		Name: "  Kalem  ", Category: "Kırtasiye", Stock: 4, MinStock: 5, Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "prd_1", created.ID)
	assert.Equal(t, "Kalem", created.Name)
	assert.Equal(t, inventory.StockLow, created.Status)
	assert.Equal(t, domain.DateOf(testNow), created.LastUpdated)

	stock := 0
	updated, ok, err := r.Products.Update(created.ID, inventory.UpdateProductInput{Stock: &stock})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inventory.StockOut, updated.Status)
	assert.Len(t, r.Products.GetByStatus(inventory.StockOut), 1)
	assert.Empty(t, r.Products.GetByStatus(inventory.StockLow))

	// Raising only the threshold still reclassifies.
	stock = 30
	_, _, err = r.Products.Update(created.ID, inventory.UpdateProductInput{Stock: &stock})
	require.NoError(t, err)
	floor := 40
	updated, _, err = r.Products.Update(created.ID, inventory.UpdateProductInput{MinStock: &floor})
	require.NoError(t, err)
	assert.Equal(t, inventory.StockLow, updated.Status)

	deleted, ok := r.Products.Delete(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.ID, deleted.ID)
	_, ok = r.Products.GetByID(created.ID)
	assert.False(t, ok)
	_, ok = r.Products.Delete(created.ID)
	assert.False(t, ok)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	r := New(testOptions())

	_, err := r.Products.Create(inventory.CreateProductInput{Name: "", Stock: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Zero(t, r.Products.Count())

	_, ok, err := r.Products.Update("missing", inventory.UpdateProductInput{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductSearch(t *testing.T) {
	r := seeded(t)

	assert.Len(t, r.Products.Search("elektronik"), 2)
	assert.Len(t, r.Products.Search("MOBILYA LTD"), 1)
	assert.Len(t, r.Products.Search("   "), 4)
	assert.Empty(t, r.Products.Search("yok"))
}

func TestNotificationsNewestFirst(t *testing.T) {
	r := seeded(t)

	n, err := r.Notifications.Create(notification.CreateNotificationInput{
		Title: "Yeni", Type: notification.TypeSuccess, UserID: "usr_001",
	})
	require.NoError(t, err)
	assert.False(t, n.Read)
	assert.Equal(t, testNow, n.CreatedAt)

	all := r.Notifications.GetAll()
	require.Len(t, all, 4)
	assert.Equal(t, n.ID, all[0].ID)
	assert.Equal(t, "ntf_001", all[1].ID)

	assert.Len(t, r.Notifications.GetUnread(), 3)

	read, ok := r.Notifications.MarkAsRead("ntf_001")
	require.True(t, ok)
	assert.True(t, read.Read)
	_, ok = r.Notifications.MarkAsRead("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, r.Notifications.MarkAllAsRead())
	assert.Equal(t, 0, r.Notifications.MarkAllAsRead())
	assert.Empty(t, r.Notifications.GetUnread())
}

func TestSupplierInvoiceSweep(t *testing.T) {
	r := seeded(t)

	swept := r.SupplierInvoices.SweepOverdue(domain.MustDate("2024-01-26"))
	require.Len(t, swept, 1)
	assert.Equal(t, "sinv_001", swept[0].ID)
	assert.Equal(t, inventory.InvoiceOverdue, swept[0].Status)
	assert.Len(t, r.SupplierInvoices.GetByStatus(inventory.InvoiceOverdue), 2)

	// Due today is not yet overdue.
	r2 := seeded(t)
	assert.Empty(t, r2.SupplierInvoices.SweepOverdue(domain.MustDate("2024-01-25")))
}

func TestPatientInvoiceSweepOnlyTouchesSent(t *testing.T) {
	r := seeded(t)

	swept := r.Invoices.SweepOverdue(domain.MustDate("2024-03-01"))
	require.Len(t, swept, 1)
	assert.Equal(t, "inv_002", swept[0].ID)

	paid, _ := r.Invoices.GetByID("inv_001")
	assert.Equal(t, finance.InvoicePaid, paid.Status)
	assert.Len(t, r.Invoices.GetByStatus(finance.InvoiceOverdue), 1)
}

func TestInvoiceCreateComputesTotals(t *testing.T) {
	r := New(testOptions())

	inv, err := r.Invoices.Create(finance.CreateInvoiceInput{
		InvoiceNumber: "INV-9", PatientID: "pat_001", PatientName: "Ayşe Yılmaz",
		Items: []finance.InvoiceItem{
			{Description: "Seans", Quantity: 2, UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(18)},
			{Description: "Test", Quantity: 1, UnitPrice: decimal.RequireFromString("33.33"), TaxRate: decimal.NewFromInt(8)},
		},
		DueDate: domain.MustDate("2024-02-15"),
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("233.33").Equal(inv.Subtotal))
	assert.True(t, decimal.RequireFromString("38.67").Equal(inv.Tax), inv.Tax.String())
	assert.True(t, decimal.RequireFromString("272").Equal(inv.Total), inv.Total.String())
	assert.Equal(t, inv.ID+"-item-1", inv.Items[0].ID)
	assert.Equal(t, inv.ID+"-item-2", inv.Items[1].ID)
}

func TestInvoiceClearingItemsResetsTotals(t *testing.T) {
	r := New(testOptions())

	inv, err := r.Invoices.Create(finance.CreateInvoiceInput{
		InvoiceNumber: "INV-10", PatientID: "pat_001", PatientName: "Ayşe Yılmaz",
		Items: []finance.InvoiceItem{
			{Description: "Seans", Quantity: 2, UnitPrice: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(18)},
		},
		DueDate: domain.MustDate("2024-02-15"),
	})
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(236).Equal(inv.Total))

	none := []finance.InvoiceItem{}
	got, ok, err := r.Invoices.Update(inv.ID, finance.UpdateInvoiceInput{Items: &none})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got.Items)
	assert.True(t, got.Subtotal.IsZero(), got.Subtotal.String())
	assert.True(t, got.Tax.IsZero(), got.Tax.String())
	assert.True(t, got.Total.IsZero(), got.Total.String())

	// A manual amount in the same patch wins.
	total := decimal.NewFromInt(150)
	got, _, err = r.Invoices.Update(inv.ID, finance.UpdateInvoiceInput{Items: &none, Total: &total})
	require.NoError(t, err)
	assert.True(t, total.Equal(got.Total))
}

func TestBudgetsByPeriod(t *testing.T) {
	r := seeded(t)

	jan, feb := 1, 2
	assert.Len(t, r.Budgets.GetByPeriod(finance.PeriodMonthly, 2024, &jan), 3)
	assert.Empty(t, r.Budgets.GetByPeriod(finance.PeriodMonthly, 2024, &feb))
	assert.Len(t, r.Budgets.GetByPeriod(finance.PeriodMonthly, 2024, nil), 3)
	assert.Empty(t, r.Budgets.GetByPeriod(finance.PeriodYearly, 2024, nil))
}

func TestClinicalLookupsByPatient(t *testing.T) {
	r := seeded(t)

	assert.Len(t, r.Sessions.GetByPatient("pat_001"), 1)
	assert.Len(t, r.Documents.GetByPatient("pat_001"), 2)
	assert.Len(t, r.TherapyPlans.GetByPatient("pat_001"), 1)
	assert.Len(t, r.Patients.GetByPsychologist("Dr. Zeynep Kaya"), 3)

	// Moving a session to another patient moves it between index buckets.
	other := "pat_004"
	_, ok, err := r.Sessions.Update("ses_001", clinical.UpdateSessionInput{PatientID: &other})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, r.Sessions.GetByPatient("pat_001"))
	assert.Len(t, r.Sessions.GetByPatient("pat_004"), 2)

	// Deleting a patient leaves dependent records alone.
	_, ok = r.Patients.Delete("pat_001")
	require.True(t, ok)
	assert.Len(t, r.Documents.GetByPatient("pat_001"), 2)
}

func TestReturnedRecordsDoNotAliasStore(t *testing.T) {
	r := seeded(t)

	a, _ := r.Assessments.GetByID("asm_001")
	a.Results["totalScore"] = 0
	a.Recommendations[0] = "changed"

	again, _ := r.Assessments.GetByID("asm_001")
	assert.Equal(t, 28, again.Results["totalScore"])
	assert.Equal(t, "Bilişsel davranışçı terapi", again.Recommendations[0])
}

func TestPatientCreateDefaults(t *testing.T) {
	r := New(testOptions())

	p, err := r.Patients.Create(patient.CreatePatientInput{
		FirstName: "Deniz", LastName: "Aksoy", Gender: patient.GenderOther, Phone: "+90 555 000 0000",
		DateOfBirth: domain.MustDate("1990-01-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pat_1", p.ID)
	assert.Equal(t, patient.StatusActive, p.Status)
	assert.Equal(t, domain.DateOf(testNow), p.RegistrationDate)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	for _, d := range DemoUsers() {
		r.Seed(d.User)
	}

	u, ok := r.GetByEmail(ctx, "  ZEYNEP@psiklinik.com ")
	require.True(t, ok)
	assert.Equal(t, domain.RolePsychologist, u.Role)
	_, ok = r.GetByEmail(ctx, "nobody@psiklinik.com")
	assert.False(t, ok)
	assert.Len(t, r.List(ctx), 5)

	for range domain.MaxFailedLogins - 1 {
		u, _ = r.UpdateLoginAttempt(ctx, u.ID, false, testNow)
	}
	assert.False(t, u.IsLocked(testNow))
	u, _ = r.UpdateLoginAttempt(ctx, u.ID, false, testNow)
	assert.True(t, u.IsLocked(testNow))
	assert.False(t, u.IsLocked(testNow.Add(domain.LoginLockDuration)))

	u, _ = r.UpdateLoginAttempt(ctx, u.ID, true, testNow)
	assert.False(t, u.IsLocked(testNow))
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, testNow, *u.LastLoginAt)
}
