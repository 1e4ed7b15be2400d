package shift

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusAbsent    Status = "absent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusAbsent:
		return true
	}
	return false
}

type Shift struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Date         domain.Date `json:"date"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Position     string      `json:"position"`
	Status       Status      `json:"status"`
	Notes        string      `json:"notes,omitempty"`
	BreakTime    int         `json:"breakTime,omitempty"` // minutes
}

func (s Shift) Identifier() string { return s.ID }

// WorkedMinutes is the scheduled span minus the break. Overnight shifts wrap.
func (s Shift) WorkedMinutes() int {
	start, err1 := time.Parse("15:04", s.StartTime)
	end, err2 := time.Parse("15:04", s.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	span := int(end.Sub(start).Minutes())
	if span <= 0 {
		span += 24 * 60
	}
	return max(span-s.BreakTime, 0)
}

type CreateShiftInput struct {
	EmployeeID   string      `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Date         domain.Date `json:"date"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Position     string      `json:"position"`
	Notes        string      `json:"notes,omitempty"`
	BreakTime    int         `json:"breakTime,omitempty"`
}

func (in CreateShiftInput) Validate() error {
	var v domain.Validator
	v.Required(in.EmployeeID, "employeeId")
	v.Check(!in.Date.IsZero(), "date is required")
	v.Clock(in.StartTime, "startTime")
	v.Clock(in.EndTime, "endTime")
	v.Check(in.BreakTime >= 0, "breakTime must not be negative")
	return v.Err()
}

func (in CreateShiftInput) Build(id string, _ time.Time) Shift {
	return Shift{
		ID:           id,
		EmployeeID:   in.EmployeeID,
		EmployeeName: in.EmployeeName,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Position:     in.Position,
		Status:       StatusScheduled,
		Notes:        in.Notes,
		BreakTime:    in.BreakTime,
	}
}

type UpdateShiftInput struct {
	EmployeeID   *string      `json:"employeeId,omitempty"`
	EmployeeName *string      `json:"employeeName,omitempty"`
	Date         *domain.Date `json:"date,omitempty"`
	StartTime    *string      `json:"startTime,omitempty"`
	EndTime      *string      `json:"endTime,omitempty"`
	Position     *string      `json:"position,omitempty"`
	Status       *Status      `json:"status,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	BreakTime    *int         `json:"breakTime,omitempty"`
}

func (in UpdateShiftInput) Validate() error {
	var v domain.Validator
	if in.EmployeeID != nil {
		v.Required(*in.EmployeeID, "employeeId")
	}
	if in.StartTime != nil {
		v.Clock(*in.StartTime, "startTime")
	}
	if in.EndTime != nil {
		v.Clock(*in.EndTime, "endTime")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	if in.BreakTime != nil {
		v.Check(*in.BreakTime >= 0, "breakTime must not be negative")
	}
	return v.Err()
}

func (in UpdateShiftInput) Apply(s *Shift, _ time.Time) {
	if in.EmployeeID != nil {
		s.EmployeeID = *in.EmployeeID
	}
	if in.EmployeeName != nil {
		s.EmployeeName = *in.EmployeeName
	}
	if in.Date != nil {
		s.Date = *in.Date
	}
	if in.StartTime != nil {
		s.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		s.EndTime = *in.EndTime
	}
	if in.Position != nil {
		s.Position = *in.Position
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	if in.BreakTime != nil {
		s.BreakTime = *in.BreakTime
	}
}
