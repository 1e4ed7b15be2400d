package service

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
)

type (
	PaymentResource = ResourceService[finance.Payment, finance.CreatePaymentInput, finance.UpdatePaymentInput]
	InvoiceResource = ResourceService[finance.Invoice, finance.CreateInvoiceInput, finance.UpdateInvoiceInput]
	BudgetResource  = ResourceService[finance.Budget, finance.CreateBudgetInput, finance.UpdateBudgetInput]
)

type FinanceService struct {
	Payments *PaymentResource
	Invoices *InvoiceResource
	Budgets  *BudgetResource

	payments finance.PaymentRepository
	invoices finance.InvoiceRepository
	budgets  finance.BudgetRepository
	deps     Deps
}

func NewFinanceService(
	payments finance.PaymentRepository,
	invoices finance.InvoiceRepository,
	budgets finance.BudgetRepository,
	deps Deps,
) *FinanceService {
	return &FinanceService{
		Payments: NewResourceService("payments", payments, finance.ErrPaymentNotFound, deps).
			WithFilter("patientId", byKey(payments.GetByPatient)).
			WithFilter("date", byDate(payments.GetByDate)).
			WithFilter("status", byEnum("status", payments.GetByStatus)),
		Invoices: NewResourceService("invoices", invoices, finance.ErrInvoiceNotFound, deps).
			WithFilter("patientId", byKey(invoices.GetByPatient)).
			WithFilter("status", byEnum("status", invoices.GetByStatus)),
		Budgets: NewResourceService("budgets", budgets, finance.ErrBudgetNotFound, deps).
			WithFilter("period", budgetPeriod(budgets)).
			WithParam("year").
			WithParam("month"),

		payments: payments,
		invoices: invoices,
		budgets:  budgets,
		deps:     deps,
	}
}

// budgetPeriod answers ?period=monthly&year=2024[&month=1]. year is required.
func budgetPeriod(repo finance.BudgetRepository) Filter[finance.Budget] {
	return func(v string, q Query) ([]finance.Budget, error) {
		period := finance.Period(v)
		if !period.IsValid() {
			return nil, invalid("period %q is invalid", v)
		}
		if q["year"] == "" {
			return nil, invalid("year is required with period")
		}
		year, err := parseInt("year", q["year"])
		if err != nil {
			return nil, err
		}
		var month *int
		if raw := q["month"]; raw != "" {
			m, err := parseInt("month", raw)
			if err != nil {
				return nil, err
			}
			month = &m
		}
		return repo.GetByPeriod(period, year, month), nil
	}
}

func (s *FinanceService) sumPayments(r domain.DateRange, status finance.PaymentStatus) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.payments.GetByStatus(status) {
		if r.Contains(p.Date) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// TotalRevenue sums completed payments dated within r.
func (s *FinanceService) TotalRevenue(ctx context.Context, r domain.DateRange) decimal.Decimal {
	_, span := s.Payments.start(ctx, "TotalRevenue")
	defer span.End()
	return s.sumPayments(r, finance.PaymentCompleted)
}

// PendingPayments sums payments dated within r that have not settled yet.
func (s *FinanceService) PendingPayments(ctx context.Context, r domain.DateRange) decimal.Decimal {
	_, span := s.Payments.start(ctx, "PendingPayments")
	defer span.End()
	return s.sumPayments(r, finance.PaymentPending)
}

// PaymentSummary totals completed payments within r per method. Every method
// is present, zero when unused.
func (s *FinanceService) PaymentSummary(ctx context.Context, r domain.DateRange) map[finance.PaymentMethod]decimal.Decimal {
	_, span := s.Payments.start(ctx, "PaymentSummary")
	defer span.End()

	out := map[finance.PaymentMethod]decimal.Decimal{
		finance.MethodCash:      decimal.Zero,
		finance.MethodCard:      decimal.Zero,
		finance.MethodTransfer:  decimal.Zero,
		finance.MethodInsurance: decimal.Zero,
	}
	for _, p := range s.payments.GetByStatus(finance.PaymentCompleted) {
		if r.Contains(p.Date) {
			out[p.Method] = out[p.Method].Add(p.Amount)
		}
	}
	return out
}

// OverdueInvoices lists invoices already marked overdue plus sent invoices
// whose due date has passed but which the sweeper has not reached yet.
func (s *FinanceService) OverdueInvoices(ctx context.Context) []finance.Invoice {
	_, span := s.Invoices.start(ctx, "OverdueInvoices")
	defer span.End()

	today := s.deps.Today()
	out := []finance.Invoice{}
	for _, inv := range s.invoices.GetAll() {
		if inv.Status == finance.InvoiceOverdue || inv.IsOverdue(today) {
			out = append(out, inv)
		}
	}
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out
}

type BudgetUsage struct {
	BudgetID     string          `json:"budgetId"`
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	SpentAmount  decimal.Decimal `json:"spentAmount"`
	Remaining    decimal.Decimal `json:"remaining"`
	Utilization  float64         `json:"utilization"`

	// Defined is false for a zero budget, where utilization has no meaning.
	Defined bool                 `json:"defined"`
	Status  finance.BudgetStatus `json:"status"`
}

func usageOf(b finance.Budget) BudgetUsage {
	pct, ok := b.Utilization()
	return BudgetUsage{
		BudgetID:     b.ID,
		Category:     b.Category,
		BudgetAmount: b.BudgetAmount,
		SpentAmount:  b.SpentAmount,
		Remaining:    b.Remaining(),
		Utilization:  pct,
		Defined:      ok,
		Status:       b.Status,
	}
}

func (s *FinanceService) BudgetUtilization(ctx context.Context, id string) (BudgetUsage, error) {
	_, span := s.Budgets.start(ctx, "Utilization", attribute.String("id", id))
	defer span.End()

	b, ok := s.budgets.GetByID(id)
	if !ok {
		err := notFound(finance.ErrBudgetNotFound, id)
		recordErr(span, err)
		return BudgetUsage{}, err
	}
	return usageOf(b), nil
}

// Summary is the finance dashboard for a date range.
type Summary struct {
	From             *domain.Date                              `json:"from,omitempty"`
	To               *domain.Date                              `json:"to,omitempty"`
	TotalRevenue     decimal.Decimal                           `json:"totalRevenue"`
	PendingPayments  decimal.Decimal                           `json:"pendingPayments"`
	RevenueByMethod  map[finance.PaymentMethod]decimal.Decimal `json:"revenueByMethod"`
	OverdueInvoices  int                                       `json:"overdueInvoices"`
	OutstandingTotal decimal.Decimal                           `json:"outstandingTotal"`
	Budgets          []BudgetUsage                             `json:"budgets"`
}

func (s *FinanceService) Summary(ctx context.Context, r domain.DateRange) Summary {
	ctx, span := s.Payments.start(ctx, "Summary")
	defer span.End()

	sum := Summary{
		From:             r.From,
		To:               r.To,
		TotalRevenue:     s.TotalRevenue(ctx, r),
		PendingPayments:  s.PendingPayments(ctx, r),
		RevenueByMethod:  s.PaymentSummary(ctx, r),
		OverdueInvoices:  len(s.OverdueInvoices(ctx)),
		OutstandingTotal: decimal.Zero,
		Budgets:          []BudgetUsage{},
	}
	for _, inv := range s.invoices.GetAll() {
		if inv.Outstanding() {
			sum.OutstandingTotal = sum.OutstandingTotal.Add(inv.Total)
		}
	}
	for _, b := range s.budgets.GetAll() {
		sum.Budgets = append(sum.Budgets, usageOf(b))
	}
	slices.SortStableFunc(sum.Budgets, func(a, b BudgetUsage) int {
		return b.SpentAmount.Cmp(a.SpentAmount)
	})
	return sum
}

// SweepOverdueInvoices flips sent invoices whose due date is before today to
// overdue.
func (s *FinanceService) SweepOverdueInvoices(ctx context.Context, actor Actor) []finance.Invoice {
	ctx, span := s.Invoices.start(ctx, "SweepOverdue")
	defer span.End()

	today := s.deps.Today()
	changed := s.invoices.SweepOverdue(today)
	for _, inv := range changed {
		s.deps.Audit.LogAsync(ctx, AuditEntry{
			Actor: actor, Action: domain.ActionSweep, ResourceType: s.Invoices.Resource(), ResourceID: inv.ID,
			Changes: map[string]finance.InvoiceStatus{"status": inv.Status},
		})
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.SweepTransitions.WithLabelValues("invoice").Add(float64(len(changed)))
	}
	if len(changed) > 0 {
		s.deps.Log.Info("patient invoices marked overdue",
			zap.Int("count", len(changed)),
			zap.String("today", today.String()),
		)
	}
	span.SetAttributes(attribute.Int("changed", len(changed)))
	return changed
}
