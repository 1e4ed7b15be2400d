package memory

import (
	"strings"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/expense"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/meeting"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/shift"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

type expenseTable = table[expense.Expense, expense.CreateExpenseInput, expense.UpdateExpenseInput]

type ExpenseRepository struct {
	*expenseTable
}

var _ expense.Repository = (*ExpenseRepository)(nil)

func NewExpenseRepository(opts Options) *ExpenseRepository {
	s := store.New("expenses",
		store.WithIDs[expense.Expense](opts.ids("exp_")),
		store.WithIndex("status", func(e expense.Expense) string { return string(e.Status) }),
	)
	return &ExpenseRepository{expenseTable: &expenseTable{s: s, now: opts.clock()}}
}

func (r *ExpenseRepository) GetByStatus(status expense.Status) []expense.Expense {
	return r.s.Lookup("status", string(status))
}

func (r *ExpenseRepository) Search(query string) []expense.Expense {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.s.All()
	}
	return r.s.Filter(func(e expense.Expense) bool { return e.Matches(query) })
}

type appointmentTable = table[appointment.Appointment, appointment.CreateAppointmentInput, appointment.UpdateAppointmentInput]

type AppointmentRepository struct {
	*appointmentTable
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(opts Options) *AppointmentRepository {
	s := store.New("appointments",
		store.WithIDs[appointment.Appointment](opts.ids("apt_")),
		store.WithClone(appointment.Appointment.Clone),
		store.WithIndex("date", func(a appointment.Appointment) string { return a.Date.String() }),
	)
	return &AppointmentRepository{appointmentTable: &appointmentTable{s: s, now: opts.clock()}}
}

func (r *AppointmentRepository) GetByDate(date domain.Date) []appointment.Appointment {
	return r.s.Lookup("date", date.String())
}

func (r *AppointmentRepository) Search(query string) []appointment.Appointment {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.s.All()
	}
	return r.s.Filter(func(a appointment.Appointment) bool { return a.Matches(query) })
}

type shiftTable = table[shift.Shift, shift.CreateShiftInput, shift.UpdateShiftInput]

type ShiftRepository struct {
	*shiftTable
}

var _ shift.Repository = (*ShiftRepository)(nil)

func NewShiftRepository(opts Options) *ShiftRepository {
	s := store.New("shifts",
		store.WithIDs[shift.Shift](opts.ids("shf_")),
		store.WithIndex("employee", func(s shift.Shift) string { return s.EmployeeID }),
		store.WithIndex("date", func(s shift.Shift) string { return s.Date.String() }),
	)
	return &ShiftRepository{shiftTable: &shiftTable{s: s, now: opts.clock()}}
}

func (r *ShiftRepository) GetByEmployee(employeeID string) []shift.Shift {
	return r.s.Lookup("employee", employeeID)
}

func (r *ShiftRepository) GetByDate(date domain.Date) []shift.Shift {
	return r.s.Lookup("date", date.String())
}

type meetingTable = table[meeting.Meeting, meeting.CreateMeetingInput, meeting.UpdateMeetingInput]

type MeetingRepository struct {
	*meetingTable
}

var _ meeting.Repository = (*MeetingRepository)(nil)

func NewMeetingRepository(opts Options) *MeetingRepository {
	s := store.New("meetings",
		store.WithIDs[meeting.Meeting](opts.ids("mtg_")),
		store.WithClone(meeting.Meeting.Clone),
		store.WithIndex("date", func(m meeting.Meeting) string { return m.Date.String() }),
	)
	return &MeetingRepository{meetingTable: &meetingTable{s: s, now: opts.clock()}}
}

func (r *MeetingRepository) GetByDate(date domain.Date) []meeting.Meeting {
	return r.s.Lookup("date", date.String())
}
