package meeting

import (
	"errors"
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var ErrMeetingNotFound = errors.New("meeting not found")

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Meeting struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        domain.Date `json:"date"`
	Time        string      `json:"time"`
	Duration    int         `json:"duration"`
	Attendees   []string    `json:"attendees"`
	Location    string      `json:"location"`
	Status      Status      `json:"status"`
	Agenda      []string    `json:"agenda,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	MeetingLink string      `json:"meetingLink,omitempty"`
}

func (m Meeting) Identifier() string { return m.ID }

func (m Meeting) Clone() Meeting {
	m.Attendees = slices.Clone(m.Attendees)
	m.Agenda = slices.Clone(m.Agenda)
	return m
}

type CreateMeetingInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        domain.Date `json:"date"`
	Time        string      `json:"time"`
	Duration    int         `json:"duration"`
	Attendees   []string    `json:"attendees"`
	Location    string      `json:"location"`
	Agenda      []string    `json:"agenda,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	MeetingLink string      `json:"meetingLink,omitempty"`
}

func (in CreateMeetingInput) Validate() error {
	var v domain.Validator
	v.Required(in.Title, "title")
	v.Check(!in.Date.IsZero(), "date is required")
	v.Clock(in.Time, "time")
	v.Check(in.Duration > 0, "duration must be positive")
	return v.Err()
}

func (in CreateMeetingInput) Build(id string, _ time.Time) Meeting {
	return Meeting{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Duration:    in.Duration,
		Attendees:   slices.Clone(in.Attendees),
		Location:    in.Location,
		Status:      StatusScheduled,
		Agenda:      slices.Clone(in.Agenda),
		Notes:       in.Notes,
		MeetingLink: in.MeetingLink,
	}
}

type UpdateMeetingInput struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Date        *domain.Date `json:"date,omitempty"`
	Time        *string      `json:"time,omitempty"`
	Duration    *int         `json:"duration,omitempty"`
	Attendees   *[]string    `json:"attendees,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Status      *Status      `json:"status,omitempty"`
	Agenda      *[]string    `json:"agenda,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	MeetingLink *string      `json:"meetingLink,omitempty"`
}

func (in UpdateMeetingInput) Validate() error {
	var v domain.Validator
	if in.Title != nil {
		v.Required(*in.Title, "title")
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
	return v.Err()
}

func (in UpdateMeetingInput) Apply(m *Meeting, _ time.Time) {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.Time != nil {
		m.Time = *in.Time
	}
	if in.Duration != nil {
		m.Duration = *in.Duration
	}
	if in.Attendees != nil {
		m.Attendees = slices.Clone(*in.Attendees)
	}
	if in.Location != nil {
		m.Location = *in.Location
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.Agenda != nil {
		m.Agenda = slices.Clone(*in.Agenda)
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
	if in.MeetingLink != nil {
		m.MeetingLink = *in.MeetingLink
	}
}

type Repository interface {
	domain.Repository[Meeting, CreateMeetingInput, UpdateMeetingInput]

	GetByDate(date domain.Date) []Meeting
}
