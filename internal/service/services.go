package service

import (
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/clinical"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/expense"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/meeting"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/phonelog"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/shift"
)

// Repos lists every entity repository the services read and write.
type Repos struct {
	Products         inventory.ProductRepository
	SupplierInvoices inventory.SupplierInvoiceRepository
	Expenses         expense.Repository
	Appointments     appointment.Repository
	Shifts           shift.Repository
	Meetings         meeting.Repository
	Notifications    notification.Repository
	Patients         patient.Repository
	Sessions         clinical.SessionRepository
	Assessments      clinical.AssessmentRepository
	TherapyPlans     clinical.TherapyPlanRepository
	Documents        document.Repository
	PhoneLogs        phonelog.Repository
	Payments         finance.PaymentRepository
	Invoices         finance.InvoiceRepository
	Budgets          finance.BudgetRepository
}

type Services struct {
	Inventory     *InventoryService
	Office        *OfficeService
	Notifications *NotificationService
	Clinical      *ClinicalService
	Finance       *FinanceService
	Reports       *ReportService
}

func New(r Repos, deps Deps) *Services {
	notifications := NewNotificationService(r.Notifications, deps)
	fin := NewFinanceService(r.Payments, r.Invoices, r.Budgets, deps)

	return &Services{
		Inventory:     NewInventoryService(r.Products, r.SupplierInvoices, notifications, deps),
		Office:        NewOfficeService(r.Expenses, r.Appointments, r.Shifts, r.Meetings, deps),
		Notifications: notifications,
		Clinical: NewClinicalService(ClinicalRepos{
			Patients:     r.Patients,
			Sessions:     r.Sessions,
			Assessments:  r.Assessments,
			TherapyPlans: r.TherapyPlans,
			Documents:    r.Documents,
			PhoneLogs:    r.PhoneLogs,
			Payments:     r.Payments,
			Invoices:     r.Invoices,
		}, deps),
		Finance: fin,
		Reports: NewReportService(r.Products, r.SupplierInvoices, r.Expenses, r.Appointments, fin, deps),
	}
}
