package memory

import (
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

// Finance stores list the newest record first.

type paymentTable = table[finance.Payment, finance.CreatePaymentInput, finance.UpdatePaymentInput]

type PaymentRepository struct {
	*paymentTable
}

var _ finance.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(opts Options) *PaymentRepository {
	s := store.New("payments",
		store.WithIDs[finance.Payment](opts.ids("pay_")),
		store.Prepend[finance.Payment](),
		store.WithIndex(byPatient, func(p finance.Payment) string { return p.PatientID }),
		store.WithIndex("date", func(p finance.Payment) string { return p.Date.String() }),
		store.WithIndex("status", func(p finance.Payment) string { return string(p.Status) }),
	)
	return &PaymentRepository{paymentTable: &paymentTable{s: s, now: opts.clock()}}
}

func (r *PaymentRepository) GetByPatient(patientID string) []finance.Payment {
	return r.s.Lookup(byPatient, patientID)
}

func (r *PaymentRepository) GetByDate(date domain.Date) []finance.Payment {
	return r.s.Lookup("date", date.String())
}

func (r *PaymentRepository) GetByStatus(status finance.PaymentStatus) []finance.Payment {
	return r.s.Lookup("status", string(status))
}

type invoiceTable = table[finance.Invoice, finance.CreateInvoiceInput, finance.UpdateInvoiceInput]

type InvoiceRepository struct {
	*invoiceTable
}

var _ finance.InvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository(opts Options) *InvoiceRepository {
	s := store.New("invoices",
		store.WithIDs[finance.Invoice](opts.ids("inv_")),
		store.Prepend[finance.Invoice](),
		store.WithClone(finance.Invoice.Clone),
		store.WithDerive(finance.RecalculateTotals),
		store.WithIndex(byPatient, func(i finance.Invoice) string { return i.PatientID }),
		store.WithIndex("status", func(i finance.Invoice) string { return string(i.Status) }),
	)
	return &InvoiceRepository{invoiceTable: &invoiceTable{s: s, now: opts.clock()}}
}

func (r *InvoiceRepository) GetByPatient(patientID string) []finance.Invoice {
	return r.s.Lookup(byPatient, patientID)
}

func (r *InvoiceRepository) GetByStatus(status finance.InvoiceStatus) []finance.Invoice {
	return r.s.Lookup("status", string(status))
}

func (r *InvoiceRepository) SweepOverdue(today domain.Date) []finance.Invoice {
	return r.s.UpdateWhere(
		func(i finance.Invoice) bool { return i.IsOverdue(today) },
		finance.MarkInvoiceOverdue,
	)
}

type budgetTable = table[finance.Budget, finance.CreateBudgetInput, finance.UpdateBudgetInput]

type BudgetRepository struct {
	*budgetTable
}

var _ finance.BudgetRepository = (*BudgetRepository)(nil)

func NewBudgetRepository(opts Options) *BudgetRepository {
	s := store.New("budgets",
		store.WithIDs[finance.Budget](opts.ids("bud_")),
		store.Prepend[finance.Budget](),
		store.WithClone(finance.Budget.Clone),
	)
	return &BudgetRepository{budgetTable: &budgetTable{s: s, now: opts.clock()}}
}

func (r *BudgetRepository) GetByPeriod(period finance.Period, year int, month *int) []finance.Budget {
	return r.s.Filter(func(b finance.Budget) bool { return b.InPeriod(period, year, month) })
}
