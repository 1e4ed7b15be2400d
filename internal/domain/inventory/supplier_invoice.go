package inventory

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceStatus of a supplier invoice. pending → overdue is the only
// transition the system makes on its own.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePending InvoiceStatus = "pending"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePaid, InvoicePending, InvoiceOverdue:
		return true
	}
	return false
}

// SupplierInvoice is a bill received from a vendor.
type SupplierInvoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Supplier      string          `json:"supplier"`
	Amount        decimal.Decimal `json:"amount"`
	IssueDate     domain.Date     `json:"issueDate"`
	DueDate       domain.Date     `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PaidDate      domain.Date     `json:"paidDate"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

func (i SupplierInvoice) Identifier() string { return i.ID }

// IsOverdue reports whether a pending invoice's due date has passed.
func (i SupplierInvoice) IsOverdue(today domain.Date) bool {
	return i.Status == InvoicePending && !i.DueDate.IsZero() && i.DueDate.Before(today)
}

// MarkOverdue is the sweep mutation.
func MarkOverdue(i *SupplierInvoice) {
	i.Status = InvoiceOverdue
}

type CreateSupplierInvoiceInput struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	Supplier      string          `json:"supplier"`
	Amount        decimal.Decimal `json:"amount"`
	IssueDate     domain.Date     `json:"issueDate"`
	DueDate       domain.Date     `json:"dueDate"`
	Status        InvoiceStatus   `json:"status,omitempty"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	PaidDate      domain.Date     `json:"paidDate"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

func (in CreateSupplierInvoiceInput) Validate() error {
	var v domain.Validator
	v.Required(in.InvoiceNumber, "invoiceNumber")
	v.Required(in.Supplier, "supplier")
	v.NonNegative(in.Amount, "amount")
	v.Check(!in.DueDate.IsZero(), "dueDate is required")
	v.Check(in.IssueDate.IsZero() || in.DueDate.IsZero() || !in.DueDate.Before(in.IssueDate),
		"dueDate must not precede issueDate")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	return v.Err()
}

func (in CreateSupplierInvoiceInput) Build(id string, now time.Time) SupplierInvoice {
	status := in.Status
	if status == "" {
		status = InvoicePending
	}
	issued := in.IssueDate
	if issued.IsZero() {
		issued = domain.DateOf(now)
	}
	return SupplierInvoice{
		ID:            id,
		InvoiceNumber: in.InvoiceNumber,
		Supplier:      in.Supplier,
		Amount:        in.Amount,
		IssueDate:     issued,
		DueDate:       in.DueDate,
		Status:        status,
		Category:      in.Category,
		Description:   in.Description,
		PaidDate:      in.PaidDate,
		PaymentMethod: in.PaymentMethod,
	}
}

type UpdateSupplierInvoiceInput struct {
	InvoiceNumber *string          `json:"invoiceNumber,omitempty"`
	Supplier      *string          `json:"supplier,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	IssueDate     *domain.Date     `json:"issueDate,omitempty"`
	DueDate       *domain.Date     `json:"dueDate,omitempty"`
	Status        *InvoiceStatus   `json:"status,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Description   *string          `json:"description,omitempty"`
	PaidDate      *domain.Date     `json:"paidDate,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
}

func (in UpdateSupplierInvoiceInput) Validate() error {
	var v domain.Validator
	if in.InvoiceNumber != nil {
		v.Required(*in.InvoiceNumber, "invoiceNumber")
	}
	if in.Supplier != nil {
		v.Required(*in.Supplier, "supplier")
	}
	if in.Amount != nil {
		v.NonNegative(*in.Amount, "amount")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	return v.Err()
}

func (in UpdateSupplierInvoiceInput) Apply(i *SupplierInvoice, _ time.Time) {
	if in.InvoiceNumber != nil {
		i.InvoiceNumber = *in.InvoiceNumber
	}
	if in.Supplier != nil {
		i.Supplier = *in.Supplier
	}
	if in.Amount != nil {
		i.Amount = *in.Amount
	}
	if in.IssueDate != nil {
		i.IssueDate = *in.IssueDate
	}
	if in.DueDate != nil {
		i.DueDate = *in.DueDate
	}
	if in.Status != nil {
		i.Status = *in.Status
	}
	if in.Category != nil {
		i.Category = *in.Category
	}
	if in.Description != nil {
		i.Description = *in.Description
	}
	if in.PaidDate != nil {
		i.PaidDate = *in.PaidDate
	}
	if in.PaymentMethod != nil {
		i.PaymentMethod = *in.PaymentMethod
	}
}
