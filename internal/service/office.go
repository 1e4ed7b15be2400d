package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/expense"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/meeting"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/shift"
)

type (
	ExpenseResource     = ResourceService[expense.Expense, expense.CreateExpenseInput, expense.UpdateExpenseInput]
	AppointmentResource = ResourceService[appointment.Appointment, appointment.CreateAppointmentInput, appointment.UpdateAppointmentInput]
	ShiftResource       = ResourceService[shift.Shift, shift.CreateShiftInput, shift.UpdateShiftInput]
	MeetingResource     = ResourceService[meeting.Meeting, meeting.CreateMeetingInput, meeting.UpdateMeetingInput]
)

// OfficeService covers the business side of the practice: spending,
// bookings, staff rota and meetings.
type OfficeService struct {
	Expenses     *ExpenseResource
	Appointments *AppointmentResource
	Shifts       *ShiftResource
	Meetings     *MeetingResource

	expenses     expense.Repository
	appointments appointment.Repository
	shifts       shift.Repository
	meetings     meeting.Repository
}

func NewOfficeService(
	expenses expense.Repository,
	appointments appointment.Repository,
	shifts shift.Repository,
	meetings meeting.Repository,
	deps Deps,
) *OfficeService {
	return &OfficeService{
		Expenses: NewResourceService("expenses", expenses, expense.ErrExpenseNotFound, deps).
			WithFilter("status", byEnum("status", expenses.GetByStatus)).
			WithFilter("q", byKey(expenses.Search)),
		Appointments: NewResourceService("appointments", appointments, appointment.ErrAppointmentNotFound, deps).
			WithFilter("date", byDate(appointments.GetByDate)).
			WithFilter("q", byKey(appointments.Search)),
		Shifts: NewResourceService("shifts", shifts, shift.ErrShiftNotFound, deps).
			WithFilter("employeeId", byKey(shifts.GetByEmployee)).
			WithFilter("date", byDate(shifts.GetByDate)),
		Meetings: NewResourceService("meetings", meetings, meeting.ErrMeetingNotFound, deps).
			WithFilter("date", byDate(meetings.GetByDate)),

		expenses:     expenses,
		appointments: appointments,
		shifts:       shifts,
		meetings:     meetings,
	}
}

// Agenda is everything happening in the office on one day.
type Agenda struct {
	Date         domain.Date               `json:"date"`
	Appointments []appointment.Appointment `json:"appointments"`
	Shifts       []shift.Shift             `json:"shifts"`
	Meetings     []meeting.Meeting         `json:"meetings"`
}

func (s *OfficeService) Agenda(ctx context.Context, date domain.Date) Agenda {
	_, span := s.Appointments.start(ctx, "Agenda", attribute.String("date", date.String()))
	defer span.End()

	return Agenda{
		Date:         date,
		Appointments: orEmpty(s.appointments.GetByDate(date)),
		Shifts:       orEmpty(s.shifts.GetByDate(date)),
		Meetings:     orEmpty(s.meetings.GetByDate(date)),
	}
}

type OfficeSearchResult struct {
	Query        string                    `json:"query"`
	Expenses     []expense.Expense         `json:"expenses"`
	Appointments []appointment.Appointment `json:"appointments"`
}

// Search runs the expense and appointment text searches together. A blank
// query matches nothing.
func (s *OfficeService) Search(ctx context.Context, query string) OfficeSearchResult {
	_, span := s.Appointments.start(ctx, "Search", attribute.String("query", query))
	defer span.End()

	res := OfficeSearchResult{
		Query:        query,
		Expenses:     []expense.Expense{},
		Appointments: []appointment.Appointment{},
	}
	if strings.TrimSpace(query) == "" {
		return res
	}
	res.Expenses = orEmpty(s.expenses.Search(query))
	res.Appointments = orEmpty(s.appointments.Search(query))
	return res
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
