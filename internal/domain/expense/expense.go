package expense

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	}
	return false
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        domain.Date     `json:"date"`
	Status      Status          `json:"status"`
	Receipt     bool            `json:"receipt"`
	ReceiptURL  string          `json:"receiptUrl,omitempty"`
	SubmittedBy string          `json:"submittedBy"`
	ApprovedBy  string          `json:"approvedBy,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

func (e Expense) Identifier() string { return e.ID }

// Matches searches description, category and submitter, ignoring case.
func (e Expense) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.Category), q) ||
		strings.Contains(strings.ToLower(e.SubmittedBy), q)
}

type CreateExpenseInput struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Receipt     bool            `json:"receipt"`
	ReceiptURL  string          `json:"receiptUrl,omitempty"`
	SubmittedBy string          `json:"submittedBy"`
	Notes       string          `json:"notes,omitempty"`
}

func (in CreateExpenseInput) Validate() error {
	var v domain.Validator
	v.Required(in.Description, "description")
	v.Required(in.Category, "category")
	v.Check(in.Amount.IsPositive(), "amount must be positive")
	return v.Err()
}

// Build files the expense for today in pending state.
func (in CreateExpenseInput) Build(id string, now time.Time) Expense {
	return Expense{
		ID:          id,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		Date:        domain.DateOf(now),
		Status:      StatusPending,
		Receipt:     in.Receipt,
		ReceiptURL:  in.ReceiptURL,
		SubmittedBy: in.SubmittedBy,
		Notes:       in.Notes,
	}
}

type UpdateExpenseInput struct {
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *domain.Date     `json:"date,omitempty"`
	Status      *Status          `json:"status,omitempty"`
	Receipt     *bool            `json:"receipt,omitempty"`
	ReceiptURL  *string          `json:"receiptUrl,omitempty"`
	SubmittedBy *string          `json:"submittedBy,omitempty"`
	ApprovedBy  *string          `json:"approvedBy,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (in UpdateExpenseInput) Validate() error {
	var v domain.Validator
	if in.Description != nil {
		v.Required(*in.Description, "description")
	}
	if in.Amount != nil {
		v.Check(in.Amount.IsPositive(), "amount must be positive")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	return v.Err()
}

func (in UpdateExpenseInput) Apply(e *Expense, _ time.Time) {
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Receipt != nil {
		e.Receipt = *in.Receipt
	}
	if in.ReceiptURL != nil {
		e.ReceiptURL = *in.ReceiptURL
	}
	if in.SubmittedBy != nil {
		e.SubmittedBy = *in.SubmittedBy
	}
	if in.ApprovedBy != nil {
		e.ApprovedBy = *in.ApprovedBy
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
}
