package clinical

import (
	"errors"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrTherapyPlanNotFound = errors.New("therapy plan not found")
)

type SessionRepository interface {
	domain.Repository[Session, CreateSessionInput, UpdateSessionInput]

	GetByPatient(patientID string) []Session
	GetByPsychologist(psychologistID string) []Session
	GetByDate(date domain.Date) []Session
}

type AssessmentRepository interface {
	domain.Repository[Assessment, CreateAssessmentInput, UpdateAssessmentInput]

	GetByPatient(patientID string) []Assessment
}

type TherapyPlanRepository interface {
	domain.Repository[TherapyPlan, CreateTherapyPlanInput, UpdateTherapyPlanInput]

	GetByPatient(patientID string) []TherapyPlan
}
