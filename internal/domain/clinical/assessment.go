package clinical

import (
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

type AssessmentStatus string

const (
	AssessmentDraft     AssessmentStatus = "draft"
	AssessmentCompleted AssessmentStatus = "completed"
	AssessmentReviewed  AssessmentStatus = "reviewed"
)

func (s AssessmentStatus) IsValid() bool {
	switch s {
	case AssessmentDraft, AssessmentCompleted, AssessmentReviewed:
		return true
	}
	return false
}

// Assessment records a psychometric instrument's outcome. Results are
// free-form because every instrument scores differently.
type Assessment struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	PsychologistID  string           `json:"psychologistId"`
	Type            string           `json:"type"`
	Date            domain.Date      `json:"date"`
	Results         map[string]any   `json:"results"`
	Interpretation  string           `json:"interpretation"`
	Recommendations []string         `json:"recommendations"`
	Status          AssessmentStatus `json:"status"`
}

func (a Assessment) Identifier() string { return a.ID }

func (a Assessment) Clone() Assessment {
	a.Results = cloneResults(a.Results)
	a.Recommendations = slices.Clone(a.Recommendations)
	return a
}

func cloneResults(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneResults(t)
	case []any:
		c := make([]any, len(t))
		for i := range t {
			c[i] = cloneValue(t[i])
		}
		return c
	}
	return v
}

type CreateAssessmentInput struct {
	PatientID       string           `json:"patientId"`
	PsychologistID  string           `json:"psychologistId"`
	Type            string           `json:"type"`
	Date            domain.Date      `json:"date"`
	Results         map[string]any   `json:"results"`
	Interpretation  string           `json:"interpretation"`
	Recommendations []string         `json:"recommendations"`
	Status          AssessmentStatus `json:"status,omitempty"`
}

func (in CreateAssessmentInput) Validate() error {
	var v domain.Validator
	v.Required(in.PatientID, "patientId")
	v.Required(in.Type, "type")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	return v.Err()
}

func (in CreateAssessmentInput) Build(id string, now time.Time) Assessment {
	status := in.Status
	if status == "" {
		status = AssessmentDraft
	}
	date := in.Date
	if date.IsZero() {
		date = domain.DateOf(now)
	}
	return Assessment{
		ID:              id,
		PatientID:       in.PatientID,
		PsychologistID:  in.PsychologistID,
		Type:            in.Type,
		Date:            date,
		Results:         in.Results,
		Interpretation:  in.Interpretation,
		Recommendations: in.Recommendations,
		Status:          status,
	}.Clone()
}

type UpdateAssessmentInput struct {
	PatientID       *string           `json:"patientId,omitempty"`
	PsychologistID  *string           `json:"psychologistId,omitempty"`
	Type            *string           `json:"type,omitempty"`
	Date            *domain.Date      `json:"date,omitempty"`
	Results         map[string]any    `json:"results,omitempty"`
	Interpretation  *string           `json:"interpretation,omitempty"`
	Recommendations *[]string         `json:"recommendations,omitempty"`
	Status          *AssessmentStatus `json:"status,omitempty"`
}

func (in UpdateAssessmentInput) Validate() error {
	var v domain.Validator
	if in.PatientID != nil {
		v.Required(*in.PatientID, "patientId")
	}
	if in.Type != nil {
		v.Required(*in.Type, "type")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	return v.Err()
}

// Apply replaces Results wholesale when present; keys are not merged.
func (in UpdateAssessmentInput) Apply(a *Assessment, _ time.Time) {
	if in.PatientID != nil {
		a.PatientID = *in.PatientID
	}
	if in.PsychologistID != nil {
		a.PsychologistID = *in.PsychologistID
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Date != nil {
		a.Date = *in.Date
	}
	if in.Results != nil {
		a.Results = cloneResults(in.Results)
	}
	if in.Interpretation != nil {
		a.Interpretation = *in.Interpretation
	}
	if in.Recommendations != nil {
		a.Recommendations = slices.Clone(*in.Recommendations)
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
}
