package clinical

import (
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanModified  PlanStatus = "modified"
)

func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanModified:
		return true
	}
	return false
}

type TherapyPlan struct {
	ID             string      `json:"id"`
	PatientID      string      `json:"patientId"`
	PsychologistID string      `json:"psychologistId"`
	Goals          []string    `json:"goals"`
	Interventions  []string    `json:"interventions"`
	Timeline       string      `json:"timeline"`
	ReviewDate     domain.Date `json:"reviewDate"`
	Status         PlanStatus  `json:"status"`
	CreatedDate    domain.Date `json:"createdDate"`
	Progress       string      `json:"progress,omitempty"`
}

func (p TherapyPlan) Identifier() string { return p.ID }

func (p TherapyPlan) Clone() TherapyPlan {
	p.Goals = slices.Clone(p.Goals)
	p.Interventions = slices.Clone(p.Interventions)
	return p
}

// ReviewDue reports whether an active plan's review date has been reached.
func (p TherapyPlan) ReviewDue(today domain.Date) bool {
	return p.Status == PlanActive && !p.ReviewDate.IsZero() && !p.ReviewDate.After(today)
}

type CreateTherapyPlanInput struct {
	PatientID      string      `json:"patientId"`
	PsychologistID string      `json:"psychologistId"`
	Goals          []string    `json:"goals"`
	Interventions  []string    `json:"interventions"`
	Timeline       string      `json:"timeline"`
	ReviewDate     domain.Date `json:"reviewDate"`
	Status         PlanStatus  `json:"status,omitempty"`
	Progress       string      `json:"progress,omitempty"`
}

func (in CreateTherapyPlanInput) Validate() error {
	var v domain.Validator
	v.Required(in.PatientID, "patientId")
	v.Check(len(in.Goals) > 0, "at least one goal is required")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	return v.Err()
}

func (in CreateTherapyPlanInput) Build(id string, now time.Time) TherapyPlan {
	status := in.Status
	if status == "" {
		status = PlanActive
	}
	return TherapyPlan{
		ID:             id,
		PatientID:      in.PatientID,
		PsychologistID: in.PsychologistID,
		Goals:          in.Goals,
		Interventions:  in.Interventions,
		Timeline:       in.Timeline,
		ReviewDate:     in.ReviewDate,
		Status:         status,
		CreatedDate:    domain.DateOf(now),
		Progress:       in.Progress,
	}.Clone()
}

type UpdateTherapyPlanInput struct {
	PatientID      *string      `json:"patientId,omitempty"`
	PsychologistID *string      `json:"psychologistId,omitempty"`
	Goals          *[]string    `json:"goals,omitempty"`
	Interventions  *[]string    `json:"interventions,omitempty"`
	Timeline       *string      `json:"timeline,omitempty"`
	ReviewDate     *domain.Date `json:"reviewDate,omitempty"`
	Status         *PlanStatus  `json:"status,omitempty"`
	Progress       *string      `json:"progress,omitempty"`
}

func (in UpdateTherapyPlanInput) Validate() error {
	var v domain.Validator
	if in.PatientID != nil {
		v.Required(*in.PatientID, "patientId")
	}
	if in.Goals != nil {
		v.Check(len(*in.Goals) > 0, "at least one goal is required")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	return v.Err()
}

func (in UpdateTherapyPlanInput) Apply(p *TherapyPlan, _ time.Time) {
	if in.PatientID != nil {
		p.PatientID = *in.PatientID
	}
	if in.PsychologistID != nil {
		p.PsychologistID = *in.PsychologistID
	}
	if in.Goals != nil {
		p.Goals = slices.Clone(*in.Goals)
	}
	if in.Interventions != nil {
		p.Interventions = slices.Clone(*in.Interventions)
	}
	if in.Timeline != nil {
		p.Timeline = *in.Timeline
	}
	if in.ReviewDate != nil {
		p.ReviewDate = *in.ReviewDate
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}
}
