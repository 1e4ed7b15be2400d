package finance

import (
	"errors"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrBudgetNotFound  = errors.New("budget not found")
)

type PaymentRepository interface {
	domain.Repository[Payment, CreatePaymentInput, UpdatePaymentInput]

	GetByPatient(patientID string) []Payment
	GetByDate(date domain.Date) []Payment
	GetByStatus(status PaymentStatus) []Payment
}

type InvoiceRepository interface {
	domain.Repository[Invoice, CreateInvoiceInput, UpdateInvoiceInput]

	GetByPatient(patientID string) []Invoice
	GetByStatus(status InvoiceStatus) []Invoice

	// SweepOverdue moves sent invoices due before today to overdue and
	// returns the invoices it changed.
	SweepOverdue(today domain.Date) []Invoice
}

type BudgetRepository interface {
	domain.Repository[Budget, CreateBudgetInput, UpdateBudgetInput]

	GetByPeriod(period Period, year int, month *int) []Budget
}
