package appointment

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

// Status of a client booking. New bookings start pending:
//
//	pending → confirmed → completed
//	pending → cancelled
//	confirmed → cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID          string           `json:"id"`
	ClientName  string           `json:"clientName"`
	ClientPhone string           `json:"clientPhone"`
	ClientEmail string           `json:"clientEmail,omitempty"`
	Service     string           `json:"service"`
	Time        string           `json:"time"`
	Date        domain.Date      `json:"date"`
	Duration    int              `json:"duration"`
	Status      Status           `json:"status"`
	Staff       string           `json:"staff"`
	Notes       string           `json:"notes,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

func (a Appointment) Identifier() string { return a.ID }

// Revenue is the booking's price when it has been completed, zero otherwise.
func (a Appointment) Revenue() decimal.Decimal {
	if a.Status != StatusCompleted || a.Price == nil {
		return decimal.Zero
	}
	return *a.Price
}

// Matches searches client name, service and staff, ignoring case.
func (a Appointment) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.ClientName), q) ||
		strings.Contains(strings.ToLower(a.Service), q) ||
		strings.Contains(strings.ToLower(a.Staff), q)
}

func (a Appointment) Clone() Appointment {
	if a.Price != nil {
		p := *a.Price
		a.Price = &p
	}
	return a
}

type CreateAppointmentInput struct {
	ClientName  string           `json:"clientName"`
	ClientPhone string           `json:"clientPhone"`
	ClientEmail string           `json:"clientEmail,omitempty"`
	Service     string           `json:"service"`
	Time        string           `json:"time"`
	Date        domain.Date      `json:"date"`
	Duration    int              `json:"duration"`
	Staff       string           `json:"staff"`
	Notes       string           `json:"notes,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

func (in CreateAppointmentInput) Validate() error {
	var v domain.Validator
	v.Required(in.ClientName, "clientName")
	v.Required(in.Service, "service")
	v.Clock(in.Time, "time")
	v.Check(!in.Date.IsZero(), "date is required")
	v.Check(in.Duration > 0, "duration must be positive")
	if in.Price != nil {
		v.NonNegative(*in.Price, "price")
	}
	return v.Err()
}

func (in CreateAppointmentInput) Build(id string, _ time.Time) Appointment {
	return Appointment{
		ID:          id,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientPhone: in.ClientPhone,
		ClientEmail: strings.ToLower(strings.TrimSpace(in.ClientEmail)),
		Service:     in.Service,
		Time:        in.Time,
		Date:        in.Date,
		Duration:    in.Duration,
		Status:      StatusPending,
		Staff:       in.Staff,
		Notes:       in.Notes,
		Price:       in.Price,
	}.Clone()
}

type UpdateAppointmentInput struct {
	ClientName  *string          `json:"clientName,omitempty"`
	ClientPhone *string          `json:"clientPhone,omitempty"`
	ClientEmail *string          `json:"clientEmail,omitempty"`
	Service     *string          `json:"service,omitempty"`
	Time        *string          `json:"time,omitempty"`
	Date        *domain.Date     `json:"date,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	Status      *Status          `json:"status,omitempty"`
	Staff       *string          `json:"staff,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

func (in UpdateAppointmentInput) Validate() error {
	var v domain.Validator
	if in.ClientName != nil {
		v.Required(*in.ClientName, "clientName")
	}
	if in.Time != nil {
		v.Clock(*in.Time, "time")
	}
	if in.Duration != nil {
		v.Check(*in.Duration > 0, "duration must be positive")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	if in.Price != nil {
		v.NonNegative(*in.Price, "price")
	}
	return v.Err()
}

func (in UpdateAppointmentInput) Apply(a *Appointment, _ time.Time) {
	if in.ClientName != nil {
		a.ClientName = strings.TrimSpace(*in.ClientName)
	}
	if in.ClientPhone != nil {
		a.ClientPhone = *in.ClientPhone
	}
	if in.ClientEmail != nil {
		a.ClientEmail = strings.ToLower(strings.TrimSpace(*in.ClientEmail))
	}
	if in.Service != nil {
		a.Service = *in.Service
	}
	if in.Time != nil {
		a.Time = *in.Time
	}
	if in.Date != nil {
		a.Date = *in.Date
	}
	if in.Duration != nil {
		a.Duration = *in.Duration
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Staff != nil {
		a.Staff = *in.Staff
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if in.Price != nil {
		p := *in.Price
		a.Price = &p
	}
}
