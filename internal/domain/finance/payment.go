package finance

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash      PaymentMethod = "cash"
	MethodCard      PaymentMethod = "card"
	MethodTransfer  PaymentMethod = "transfer"
	MethodInsurance PaymentMethod = "insurance"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodInsurance:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentCompleted, PaymentPending, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Payment struct {
	ID          string          `json:"id"`
	PatientID   string          `json:"patientId"`
	PatientName string          `json:"patientName"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	Date        domain.Date     `json:"date"`
	Time        string          `json:"time"`
	Description string          `json:"description"`
	SessionID   string          `json:"sessionId,omitempty"`
	InvoiceID   string          `json:"invoiceId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ProcessedBy string          `json:"processedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p Payment) Identifier() string { return p.ID }

type CreatePaymentInput struct {
	PatientID   string          `json:"patientId"`
	PatientName string          `json:"patientName"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	Date        domain.Date     `json:"date"`
	Time        string          `json:"time"`
	Description string          `json:"description"`
	SessionID   string          `json:"sessionId,omitempty"`
	InvoiceID   string          `json:"invoiceId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ProcessedBy string          `json:"processedBy"`
}

func (in CreatePaymentInput) Validate() error {
	var v domain.Validator
	v.Required(in.PatientID, "patientId")
	v.Check(in.Amount.IsPositive(), "amount must be positive")
	v.Check(in.Method.IsValid(), "method is invalid")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	v.Check(in.Time == "" || domain.ValidClock(in.Time), "time must be HH:MM")
	return v.Err()
}

func (in CreatePaymentInput) Build(id string, now time.Time) Payment {
	status := in.Status
	if status == "" {
		status = PaymentPending
	}
	date := in.Date
	if date.IsZero() {
		date = domain.DateOf(now)
	}
	clock := in.Time
	if clock == "" {
		clock = now.Format("15:04")
	}
	return Payment{
		ID:          id,
		PatientID:   in.PatientID,
		PatientName: in.PatientName,
		Amount:      in.Amount,
		Method:      in.Method,
		Status:      status,
		Date:        date,
		Time:        clock,
		Description: in.Description,
		SessionID:   in.SessionID,
		InvoiceID:   in.InvoiceID,
		Notes:       in.Notes,
		ProcessedBy: in.ProcessedBy,
		CreatedAt:   now.UTC(),
	}
}

type UpdatePaymentInput struct {
	PatientID   *string          `json:"patientId,omitempty"`
	PatientName *string          `json:"patientName,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Method      *PaymentMethod   `json:"method,omitempty"`
	Status      *PaymentStatus   `json:"status,omitempty"`
	Date        *domain.Date     `json:"date,omitempty"`
	Time        *string          `json:"time,omitempty"`
	Description *string          `json:"description,omitempty"`
	SessionID   *string          `json:"sessionId,omitempty"`
	InvoiceID   *string          `json:"invoiceId,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	ProcessedBy *string          `json:"processedBy,omitempty"`
}

func (in UpdatePaymentInput) Validate() error {
	var v domain.Validator
	if in.PatientID != nil {
		v.Required(*in.PatientID, "patientId")
	}
	if in.Amount != nil {
		v.Check(in.Amount.IsPositive(), "amount must be positive")
	}
	if in.Method != nil {
		v.Check(in.Method.IsValid(), "method is invalid")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	if in.Time != nil {
		v.Clock(*in.Time, "time")
	}
	return v.Err()
}

func (in UpdatePaymentInput) Apply(p *Payment, _ time.Time) {
	if in.PatientID != nil {
		p.PatientID = *in.PatientID
	}
	if in.PatientName != nil {
		p.PatientName = *in.PatientName
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Method != nil {
		p.Method = *in.Method
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Date != nil {
		p.Date = *in.Date
	}
	if in.Time != nil {
		p.Time = *in.Time
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.SessionID != nil {
		p.SessionID = *in.SessionID
	}
	if in.InvoiceID != nil {
		p.InvoiceID = *in.InvoiceID
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.ProcessedBy != nil {
		p.ProcessedBy = *in.ProcessedBy
	}
}
