package clinical

import (
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

type SessionType string

const (
	SessionIndividual SessionType = "individual"
	SessionGroup      SessionType = "group"
	SessionFamily     SessionType = "family"
	SessionAssessment SessionType = "assessment"
)

func (t SessionType) IsValid() bool {
	switch t {
	case SessionIndividual, SessionGroup, SessionFamily, SessionAssessment:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionNoShow    SessionStatus = "no_show"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled, SessionNoShow:
		return true
	}
	return false
}

type Session struct {
	ID              string        `json:"id"`
	PatientID       string        `json:"patientId"`
	PsychologistID  string        `json:"psychologistId"`
	Date            domain.Date   `json:"date"`
	StartTime       string        `json:"startTime"`
	EndTime         string        `json:"endTime"`
	Type            SessionType   `json:"type"`
	Status          SessionStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	Interventions   []string      `json:"interventions,omitempty"`
	Homework        string        `json:"homework,omitempty"`
	NextSessionPlan string        `json:"nextSessionPlan,omitempty"`
	Mood            *int          `json:"mood,omitempty"` // 1-10
	Progress        string        `json:"progress,omitempty"`
	Duration        int           `json:"duration"`
}

func (s Session) Identifier() string { return s.ID }

func (s Session) Clone() Session {
	s.Interventions = slices.Clone(s.Interventions)
	if s.Mood != nil {
		m := *s.Mood
		s.Mood = &m
	}
	return s
}

func validMood(m *int) bool {
	return m == nil || (*m >= 1 && *m <= 10)
}

type CreateSessionInput struct {
	PatientID       string        `json:"patientId"`
	PsychologistID  string        `json:"psychologistId"`
	Date            domain.Date   `json:"date"`
	StartTime       string        `json:"startTime"`
	EndTime         string        `json:"endTime"`
	Type            SessionType   `json:"type"`
	Status          SessionStatus `json:"status,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Interventions   []string      `json:"interventions,omitempty"`
	Homework        string        `json:"homework,omitempty"`
	NextSessionPlan string        `json:"nextSessionPlan,omitempty"`
	Mood            *int          `json:"mood,omitempty"`
	Progress        string        `json:"progress,omitempty"`
	Duration        int           `json:"duration"`
}

func (in CreateSessionInput) Validate() error {
	var v domain.Validator
	v.Required(in.PatientID, "patientId")
	v.Required(in.PsychologistID, "psychologistId")
	v.Check(!in.Date.IsZero(), "date is required")
	v.Clock(in.StartTime, "startTime")
	v.Clock(in.EndTime, "endTime")
	v.Check(in.Type.IsValid(), "type is invalid")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	v.Check(validMood(in.Mood), "mood must be between 1 and 10")
	v.Check(in.Duration > 0, "duration must be positive")
	return v.Err()
}

func (in CreateSessionInput) Build(id string, _ time.Time) Session {
	status := in.Status
	if status == "" {
		status = SessionScheduled
	}
	return Session{
		ID:              id,
		PatientID:       in.PatientID,
		PsychologistID:  in.PsychologistID,
		Date:            in.Date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Type:            in.Type,
		Status:          status,
		Notes:           in.Notes,
		Interventions:   in.Interventions,
		Homework:        in.Homework,
		NextSessionPlan: in.NextSessionPlan,
		Mood:            in.Mood,
		Progress:        in.Progress,
		Duration:        in.Duration,
	}.Clone()
}

type UpdateSessionInput struct {
	PatientID       *string        `json:"patientId,omitempty"`
	PsychologistID  *string        `json:"psychologistId,omitempty"`
	Date            *domain.Date   `json:"date,omitempty"`
	StartTime       *string        `json:"startTime,omitempty"`
	EndTime         *string        `json:"endTime,omitempty"`
	Type            *SessionType   `json:"type,omitempty"`
	Status          *SessionStatus `json:"status,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	Interventions   *[]string      `json:"interventions,omitempty"`
	Homework        *string        `json:"homework,omitempty"`
	NextSessionPlan *string        `json:"nextSessionPlan,omitempty"`
	Mood            *int           `json:"mood,omitempty"`
	Progress        *string        `json:"progress,omitempty"`
	Duration        *int           `json:"duration,omitempty"`
}

func (in UpdateSessionInput) Validate() error {
	var v domain.Validator
	if in.PatientID != nil {
		v.Required(*in.PatientID, "patientId")
	}
	if in.StartTime != nil {
		v.Clock(*in.StartTime, "startTime")
	}
	if in.EndTime != nil {
		v.Clock(*in.EndTime, "endTime")
	}
	if in.Type != nil {
		v.Check(in.Type.IsValid(), "type is invalid")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	v.Check(validMood(in.Mood), "mood must be between 1 and 10")
	if in.Duration != nil {
		v.Check(*in.Duration > 0, "duration must be positive")
	}
	return v.Err()
}

func (in UpdateSessionInput) Apply(s *Session, _ time.Time) {
	if in.PatientID != nil {
		s.PatientID = *in.PatientID
	}
	if in.PsychologistID != nil {
		s.PsychologistID = *in.PsychologistID
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
	if in.Type != nil {
		s.Type = *in.Type
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	if in.Interventions != nil {
		s.Interventions = slices.Clone(*in.Interventions)
	}
	if in.Homework != nil {
		s.Homework = *in.Homework
	}
	if in.NextSessionPlan != nil {
		s.NextSessionPlan = *in.NextSessionPlan
	}
	if in.Mood != nil {
		m := *in.Mood
		s.Mood = &m
	}
	if in.Progress != nil {
		s.Progress = *in.Progress
	}
	if in.Duration != nil {
		s.Duration = *in.Duration
	}
}
