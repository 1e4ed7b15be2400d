package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/expense"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
)

type ReportKind string

const (
	ReportInventory    ReportKind = "inventory"
	ReportExpenses     ReportKind = "expenses"
	ReportAppointments ReportKind = "appointments"
	ReportFinancial    ReportKind = "financial"
)

var ReportKinds = []ReportKind{ReportInventory, ReportExpenses, ReportAppointments, ReportFinancial}

func ParseReportKind(s string) (ReportKind, error) {
	k := ReportKind(s)
	if !slices.Contains(ReportKinds, k) {
		return "", invalid("report kind %q is unknown", s)
	}
	return k, nil
}

// ReportParams narrows a report. Range applies to expense and financial
// reports, Date to appointment reports.
type ReportParams struct {
	Range domain.DateRange
	Date  *domain.Date
}

// Figure is one headline number of a report.
type Figure struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type Report struct {
	Kind        ReportKind `json:"kind"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Summary     []Figure   `json:"summary"`
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
}

// Figure returns the named summary value.
func (r Report) Figure(name string) (decimal.Decimal, bool) {
	for _, f := range r.Summary {
		if f.Name == name {
			return f.Value, true
		}
	}
	return decimal.Zero, false
}

type ReportService struct {
	products         inventory.ProductRepository
	supplierInvoices inventory.SupplierInvoiceRepository
	expenses         expense.Repository
	appointments     appointment.Repository
	finance          *FinanceService

	deps   Deps
	tracer trace.Tracer
}

func NewReportService(
	products inventory.ProductRepository,
	supplierInvoices inventory.SupplierInvoiceRepository,
	expenses expense.Repository,
	appointments appointment.Repository,
	fin *FinanceService,
	deps Deps,
) *ReportService {
	return &ReportService{
		products:         products,
		supplierInvoices: supplierInvoices,
		expenses:         expenses,
		appointments:     appointments,
		finance:          fin,
		deps:             deps,
		tracer:           otel.Tracer(tracerName),
	}
}

func (s *ReportService) Generate(ctx context.Context, kind ReportKind, p ReportParams) (Report, error) {
	ctx, span := s.tracer.Start(ctx, "reports.Generate", trace.WithAttributes(attribute.String("kind", string(kind))))
	defer span.End()

	var rep Report
	switch kind {
	case ReportInventory:
		rep = s.inventoryReport()
	case ReportExpenses:
		rep = s.expenseReport(p.Range)
	case ReportAppointments:
		rep = s.appointmentReport(p.Date)
	case ReportFinancial:
		rep = s.financial(ctx, p.Range)
	default:
		err := invalid("report kind %q is unknown", kind)
		recordErr(span, err)
		return Report{}, err
	}

	rep.Kind = kind
	rep.GeneratedAt = time.Now().UTC()
	if s.deps.Now != nil {
		rep.GeneratedAt = s.deps.Now().UTC()
	}
	s.deps.Log.Info("report generated", zap.String("kind", string(kind)), zap.Int("rows", len(rep.Rows)))
	return rep, nil
}

func count(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func distinct(values []string) int {
	seen := map[string]struct{}{}
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func (s *ReportService) inventoryReport() Report {
	products := s.products.GetAll()
	rep := Report{
		Columns: []string{"id", "name", "category", "stock", "minStock", "price", "stockValue", "status", "supplier"},
		Rows:    [][]string{},
	}

	total := decimal.Zero
	var low, out int
	categories := make([]string, 0, len(products))
	for _, p := range products {
		total = total.Add(p.StockValue())
		switch p.Status {
		case inventory.StockLow:
			low++
		case inventory.StockOut:
			out++
		}
		categories = append(categories, p.Category)
		rep.Rows = append(rep.Rows, []string{
			p.ID, p.Name, p.Category, strconv.Itoa(p.Stock), strconv.Itoa(p.MinStock),
			money(p.Price), money(p.StockValue()), string(p.Status), p.Supplier,
		})
	}

	rep.Summary = []Figure{
		{"totalProducts", count(len(products))},
		{"totalValue", total},
		{"lowStock", count(low)},
		{"outOfStock", count(out)},
		{"categories", count(distinct(categories))},
	}
	return rep
}

func (s *ReportService) expenseReport(r domain.DateRange) Report {
	rep := Report{
		Columns: []string{"id", "date", "description", "category", "amount", "status", "submittedBy"},
		Rows:    [][]string{},
	}

	var n int
	total, approved, pending := decimal.Zero, decimal.Zero, decimal.Zero
	var categories []string
	for _, e := range s.expenses.GetAll() {
		if !r.Contains(e.Date) {
			continue
		}
		n++
		total = total.Add(e.Amount)
		switch e.Status {
		case expense.StatusApproved:
			approved = approved.Add(e.Amount)
		case expense.StatusPending:
			pending = pending.Add(e.Amount)
		}
		categories = append(categories, e.Category)
		rep.Rows = append(rep.Rows, []string{
			e.ID, e.Date.String(), e.Description, e.Category, money(e.Amount), string(e.Status), e.SubmittedBy,
		})
	}

	rep.Summary = []Figure{
		{"totalExpenses", count(n)},
		{"totalAmount", total},
		{"approvedAmount", approved},
		{"pendingAmount", pending},
		{"categories", count(distinct(categories))},
	}
	return rep
}

func (s *ReportService) appointmentReport(date *domain.Date) Report {
	appts := s.appointments.GetAll()
	if date != nil {
		appts = s.appointments.GetByDate(*date)
	}
	rep := Report{
		Columns: []string{"id", "date", "time", "clientName", "service", "staff", "status", "price"},
		Rows:    [][]string{},
	}

	counts := map[appointment.Status]int{}
	revenue := decimal.Zero
	for _, a := range appts {
		counts[a.Status]++
		revenue = revenue.Add(a.Revenue())
		price := ""
		if a.Price != nil {
			price = money(*a.Price)
		}
		rep.Rows = append(rep.Rows, []string{
			a.ID, a.Date.String(), a.Time, a.ClientName, a.Service, a.Staff, string(a.Status), price,
		})
	}

	rep.Summary = []Figure{
		{"totalAppointments", count(len(appts))},
		{"confirmed", count(counts[appointment.StatusConfirmed])},
		{"completed", count(counts[appointment.StatusCompleted])},
		{"cancelled", count(counts[appointment.StatusCancelled])},
		{"revenue", revenue},
	}
	return rep
}

// financial compares income with approved spending over r. Rows break the
// approved spending down by category.
func (s *ReportService) financial(ctx context.Context, r domain.DateRange) Report {
	appointmentRevenue := decimal.Zero
	for _, a := range s.appointments.GetAll() {
		if r.Contains(a.Date) {
			appointmentRevenue = appointmentRevenue.Add(a.Revenue())
		}
	}

	byCategory := map[string]decimal.Decimal{}
	approved := decimal.Zero
	for _, e := range s.expenses.GetByStatus(expense.StatusApproved) {
		if r.Contains(e.Date) {
			approved = approved.Add(e.Amount)
			byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		}
	}

	pendingSupplier := decimal.Zero
	for _, inv := range s.supplierInvoices.GetAll() {
		if inv.Status == inventory.InvoicePending || inv.Status == inventory.InvoiceOverdue {
			pendingSupplier = pendingSupplier.Add(inv.Amount)
		}
	}

	payments := decimal.Zero
	if s.finance != nil {
		payments = s.finance.TotalRevenue(ctx, r)
	}

	income := appointmentRevenue.Add(payments)
	net := income.Sub(approved)
	margin := decimal.Zero
	if !income.IsZero() {
		margin = net.Div(income).Mul(decimal.NewFromInt(100)).Round(2)
	}

	rep := Report{
		Summary: []Figure{
			{"appointmentRevenue", appointmentRevenue},
			{"patientPayments", payments},
			{"totalIncome", income},
			{"approvedExpenses", approved},
			{"netProfit", net},
			{"profitMargin", margin},
			{"pendingSupplierInvoices", pendingSupplier},
		},
		Columns: []string{"category", "approvedExpenses"},
		Rows:    [][]string{},
	}
	for _, c := range slices.Sorted(maps.Keys(byCategory)) {
		rep.Rows = append(rep.Rows, []string{c, money(byCategory[c])})
	}
	return rep
}

// WriteCSV renders the rows under a header line, then the summary as
// name,value pairs after a blank line.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rep.Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(rep.Rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, f := range rep.Summary {
		if err := cw.Write([]string{f.Name, f.Value.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
