package phonelog

import (
	"errors"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var ErrPhoneLogNotFound = errors.New("phone log not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// PhoneLog is a call taken at the front desk.
type PhoneLog struct {
	ID               string      `json:"id"`
	Date             domain.Date `json:"date"`
	Time             string      `json:"time"`
	CallerName       string      `json:"callerName"`
	CallerPhone      string      `json:"callerPhone"`
	Purpose          string      `json:"purpose"`
	Message          string      `json:"message"`
	TakenBy          string      `json:"takenBy"`
	FollowUpRequired bool        `json:"followUpRequired"`
	Status           Status      `json:"status"`
}

func (l PhoneLog) Identifier() string { return l.ID }

// AwaitingFollowUp is true while a follow-up was requested and not done.
func (l PhoneLog) AwaitingFollowUp() bool {
	return l.FollowUpRequired && l.Status == StatusPending
}

type CreatePhoneLogInput struct {
	Date             domain.Date `json:"date"`
	Time             string      `json:"time"`
	CallerName       string      `json:"callerName"`
	CallerPhone      string      `json:"callerPhone"`
	Purpose          string      `json:"purpose"`
	Message          string      `json:"message"`
	TakenBy          string      `json:"takenBy"`
	FollowUpRequired bool        `json:"followUpRequired"`
	Status           Status      `json:"status,omitempty"`
}

func (in CreatePhoneLogInput) Validate() error {
	var v domain.Validator
	v.Required(in.CallerName, "callerName")
	v.Check(in.Time == "" || domain.ValidClock(in.Time), "time must be HH:MM")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	return v.Err()
}

// Build defaults date and time to the moment the call is logged.
func (in CreatePhoneLogInput) Build(id string, now time.Time) PhoneLog {
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	date := in.Date
	if date.IsZero() {
		date = domain.DateOf(now)
	}
	clock := in.Time
	if clock == "" {
		clock = now.Format("15:04")
	}
	return PhoneLog{
		ID:               id,
		Date:             date,
		Time:             clock,
		CallerName:       in.CallerName,
		CallerPhone:      in.CallerPhone,
		Purpose:          in.Purpose,
		Message:          in.Message,
		TakenBy:          in.TakenBy,
		FollowUpRequired: in.FollowUpRequired,
		Status:           status,
	}
}

type UpdatePhoneLogInput struct {
	Date             *domain.Date `json:"date,omitempty"`
	Time             *string      `json:"time,omitempty"`
	CallerName       *string      `json:"callerName,omitempty"`
	CallerPhone      *string      `json:"callerPhone,omitempty"`
	Purpose          *string      `json:"purpose,omitempty"`
	Message          *string      `json:"message,omitempty"`
	TakenBy          *string      `json:"takenBy,omitempty"`
	FollowUpRequired *bool        `json:"followUpRequired,omitempty"`
	Status           *Status      `json:"status,omitempty"`
}

func (in UpdatePhoneLogInput) Validate() error {
	var v domain.Validator
	if in.CallerName != nil {
		v.Required(*in.CallerName, "callerName")
	}
	if in.Time != nil {
		v.Clock(*in.Time, "time")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	return v.Err()
}

func (in UpdatePhoneLogInput) Apply(l *PhoneLog, _ time.Time) {
	if in.Date != nil {
		l.Date = *in.Date
	}
	if in.Time != nil {
		l.Time = *in.Time
	}
	if in.CallerName != nil {
		l.CallerName = *in.CallerName
	}
	if in.CallerPhone != nil {
		l.CallerPhone = *in.CallerPhone
	}
	if in.Purpose != nil {
		l.Purpose = *in.Purpose
	}
	if in.Message != nil {
		l.Message = *in.Message
	}
	if in.TakenBy != nil {
		l.TakenBy = *in.TakenBy
	}
	if in.FollowUpRequired != nil {
		l.FollowUpRequired = *in.FollowUpRequired
	}
	if in.Status != nil {
		l.Status = *in.Status
	}
}

type Repository interface {
	domain.Repository[PhoneLog, CreatePhoneLogInput, UpdatePhoneLogInput]

	GetByDate(date domain.Date) []PhoneLog
}
