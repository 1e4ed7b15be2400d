package finance

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceStatus of a patient invoice:
//
//	draft → sent → paid
//	sent → overdue (automatic, once dueDate has passed)
//	any → cancelled
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

type InvoiceItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	TaxRate     decimal.Decimal `json:"taxRate"` // percent
}

// Invoice is billed to a patient. Not to be confused with inventory.SupplierInvoice.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	PatientID     string          `json:"patientId"`
	PatientName   string          `json:"patientName"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status"`
	IssueDate     domain.Date     `json:"issueDate"`
	DueDate       domain.Date     `json:"dueDate"`
	PaidDate      domain.Date     `json:"paidDate"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (i Invoice) Identifier() string { return i.ID }

func (i Invoice) Clone() Invoice {
	i.Items = slices.Clone(i.Items)
	return i
}

// IsOverdue reports whether a sent invoice's due date has passed.
func (i Invoice) IsOverdue(today domain.Date) bool {
	return i.Status == InvoiceSent && !i.DueDate.IsZero() && i.DueDate.Before(today)
}

// Outstanding is true for invoices still expecting payment.
func (i Invoice) Outstanding() bool {
	return i.Status == InvoiceSent || i.Status == InvoiceOverdue
}

func MarkInvoiceOverdue(i *Invoice) {
	i.Status = InvoiceOverdue
}

// InvoiceTotals computes line totals, subtotal, tax and grand total.
func InvoiceTotals(items []InvoiceItem) (lines []InvoiceItem, subtotal, tax, total decimal.Decimal) {
	lines = slices.Clone(items)
	for n := range lines {
		line := &lines[n]
		line.Total = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(line.Total)
		tax = tax.Add(line.Total.Mul(line.TaxRate).Div(hundred))
	}
	tax = tax.Round(2)
	return lines, subtotal, tax, subtotal.Add(tax)
}

// RecalculateTotals is the store derive hook. Invoices without items keep
// the amounts they were given.
func RecalculateTotals(i *Invoice) {
	if len(i.Items) == 0 {
		return
	}
	i.Items, i.Subtotal, i.Tax, i.Total = InvoiceTotals(i.Items)
	for n := range i.Items {
		if i.Items[n].ID == "" {
			i.Items[n].ID = fmt.Sprintf("%s-item-%d", i.ID, n+1)
		}
	}
}

func validateItems(v *domain.Validator, items []InvoiceItem) {
	for n, it := range items {
		v.Check(it.Quantity > 0, fmt.Sprintf("items[%d].quantity must be positive", n))
		v.Check(!it.UnitPrice.IsNegative(), fmt.Sprintf("items[%d].unitPrice must not be negative", n))
		v.Check(!it.TaxRate.IsNegative(), fmt.Sprintf("items[%d].taxRate must not be negative", n))
	}
}

type CreateInvoiceInput struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	PatientID     string          `json:"patientId"`
	PatientName   string          `json:"patientName"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status,omitempty"`
	IssueDate     domain.Date     `json:"issueDate"`
	DueDate       domain.Date     `json:"dueDate"`
	PaidDate      domain.Date     `json:"paidDate"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"createdBy"`
}

func (in CreateInvoiceInput) Validate() error {
	var v domain.Validator
	v.Required(in.InvoiceNumber, "invoiceNumber")
	v.Required(in.PatientID, "patientId")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	v.Check(!in.DueDate.IsZero(), "dueDate is required")
	validateItems(&v, in.Items)
	return v.Err()
}

func (in CreateInvoiceInput) Build(id string, now time.Time) Invoice {
	status := in.Status
	if status == "" {
		status = InvoiceDraft
	}
	issued := in.IssueDate
	if issued.IsZero() {
		issued = domain.DateOf(now)
	}
	return Invoice{
		ID:            id,
		InvoiceNumber: in.InvoiceNumber,
		PatientID:     in.PatientID,
		PatientName:   in.PatientName,
		Items:         slices.Clone(in.Items),
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		Total:         in.Total,
		Status:        status,
		IssueDate:     issued,
		DueDate:       in.DueDate,
		PaidDate:      in.PaidDate,
		Notes:         in.Notes,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now.UTC(),
	}
}

type UpdateInvoiceInput struct {
	InvoiceNumber *string          `json:"invoiceNumber,omitempty"`
	PatientID     *string          `json:"patientId,omitempty"`
	PatientName   *string          `json:"patientName,omitempty"`
	Items         *[]InvoiceItem   `json:"items,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Status        *InvoiceStatus   `json:"status,omitempty"`
	IssueDate     *domain.Date     `json:"issueDate,omitempty"`
	DueDate       *domain.Date     `json:"dueDate,omitempty"`
	PaidDate      *domain.Date     `json:"paidDate,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (in UpdateInvoiceInput) Validate() error {
	var v domain.Validator
	if in.InvoiceNumber != nil {
		v.Required(*in.InvoiceNumber, "invoiceNumber")
	}
	if in.PatientID != nil {
		v.Required(*in.PatientID, "patientId")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	if in.Items != nil {
		validateItems(&v, *in.Items)
	}
	return v.Err()
}

func (in UpdateInvoiceInput) Apply(i *Invoice, _ time.Time) {
	if in.InvoiceNumber != nil {
		i.InvoiceNumber = *in.InvoiceNumber
	}
	if in.PatientID != nil {
		i.PatientID = *in.PatientID
	}
	if in.PatientName != nil {
		i.PatientName = *in.PatientName
	}
	if in.Items != nil {
		i.Items = slices.Clone(*in.Items)
		if len(i.Items) == 0 {
			// Totals derived from the old items no longer hold.
			i.Subtotal, i.Tax, i.Total = decimal.Zero, decimal.Zero, decimal.Zero
		}
	}
	if in.Subtotal != nil {
		i.Subtotal = *in.Subtotal
	}
	if in.Tax != nil {
		i.Tax = *in.Tax
	}
	if in.Total != nil {
		i.Total = *in.Total
	}
	if in.Status != nil {
		i.Status = *in.Status
	}
	if in.IssueDate != nil {
		i.IssueDate = *in.IssueDate
	}
	if in.DueDate != nil {
		i.DueDate = *in.DueDate
	}
	if in.PaidDate != nil {
		i.PaidDate = *in.PaidDate
	}
	if in.Notes != nil {
		i.Notes = *in.Notes
	}
}
