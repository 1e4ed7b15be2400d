package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/clinical"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/phonelog"
)

type (
	PatientResource     = ResourceService[patient.Patient, patient.CreatePatientInput, patient.UpdatePatientInput]
	SessionResource     = ResourceService[clinical.Session, clinical.CreateSessionInput, clinical.UpdateSessionInput]
	AssessmentResource  = ResourceService[clinical.Assessment, clinical.CreateAssessmentInput, clinical.UpdateAssessmentInput]
	TherapyPlanResource = ResourceService[clinical.TherapyPlan, clinical.CreateTherapyPlanInput, clinical.UpdateTherapyPlanInput]
	DocumentResource    = ResourceService[document.Document, document.CreateDocumentInput, document.UpdateDocumentInput]
	PhoneLogResource    = ResourceService[phonelog.PhoneLog, phonelog.CreatePhoneLogInput, phonelog.UpdatePhoneLogInput]
)

// ClinicalRepos are the repositories behind the clinical side. Payments and
// invoices are read for the patient chart only.
type ClinicalRepos struct {
	Patients     patient.Repository
	Sessions     clinical.SessionRepository
	Assessments  clinical.AssessmentRepository
	TherapyPlans clinical.TherapyPlanRepository
	Documents    document.Repository
	PhoneLogs    phonelog.Repository
	Payments     finance.PaymentRepository
	Invoices     finance.InvoiceRepository
}

type ClinicalService struct {
	Patients     *PatientResource
	Sessions     *SessionResource
	Assessments  *AssessmentResource
	TherapyPlans *TherapyPlanResource
	Documents    *DocumentResource
	PhoneLogs    *PhoneLogResource

	repos ClinicalRepos
	deps  Deps
}

// NewClinicalService wires the clinical resources. Single-record reads of
// patient data are audited.
func NewClinicalService(repos ClinicalRepos, deps Deps) *ClinicalService {
	return &ClinicalService{
		Patients: NewResourceService("patients", repos.Patients, patient.ErrPatientNotFound, deps).
			WithFilter("psychologist", byKey(repos.Patients.GetByPsychologist)).
			AuditReads(),
		Sessions: NewResourceService("sessions", repos.Sessions, clinical.ErrSessionNotFound, deps).
			WithFilter("patientId", byKey(repos.Sessions.GetByPatient)).
			WithFilter("psychologistId", byKey(repos.Sessions.GetByPsychologist)).
			WithFilter("date", byDate(repos.Sessions.GetByDate)).
			AuditReads(),
		Assessments: NewResourceService("assessments", repos.Assessments, clinical.ErrAssessmentNotFound, deps).
			WithFilter("patientId", byKey(repos.Assessments.GetByPatient)).
			AuditReads(),
		TherapyPlans: NewResourceService("therapy-plans", repos.TherapyPlans, clinical.ErrTherapyPlanNotFound, deps).
			WithFilter("patientId", byKey(repos.TherapyPlans.GetByPatient)).
			AuditReads(),
		Documents: NewResourceService("documents", repos.Documents, document.ErrDocumentNotFound, deps).
			WithFilter("patientId", byKey(repos.Documents.GetByPatient)).
			WithFilter("type", byEnum("type", repos.Documents.GetByType)).
			AuditReads(),
		PhoneLogs: NewResourceService("phone-logs", repos.PhoneLogs, phonelog.ErrPhoneLogNotFound, deps).
			WithFilter("date", byDate(repos.PhoneLogs.GetByDate)),

		repos: repos,
		deps:  deps,
	}
}

// Chart is a patient's full file.
type Chart struct {
	Patient      patient.Patient        `json:"patient"`
	Age          int                    `json:"age"`
	Sessions     []clinical.Session     `json:"sessions"`
	Assessments  []clinical.Assessment  `json:"assessments"`
	TherapyPlans []clinical.TherapyPlan `json:"therapyPlans"`
	Documents    []document.Document    `json:"documents"`
	Payments     []finance.Payment      `json:"payments"`
	Invoices     []finance.Invoice      `json:"invoices"`

	// PlansDueForReview are active plan ids whose review date has come.
	PlansDueForReview []string `json:"plansDueForReview"`
}

// Chart gathers every record that references the patient. Records are read
// from separate stores one after another, so a concurrent write may land
// between two reads.
func (s *ClinicalService) Chart(ctx context.Context, actor Actor, patientID string) (Chart, error) {
	ctx, span := s.Patients.start(ctx, "Chart", attribute.String("id", patientID))
	defer span.End()

	p, ok := s.repos.Patients.GetByID(patientID)
	if !ok {
		err := notFound(patient.ErrPatientNotFound, patientID)
		recordErr(span, err)
		return Chart{}, err
	}

	today := s.deps.Today()
	chart := Chart{
		Patient:           p,
		Age:               p.AgeOn(today),
		Sessions:          orEmpty(s.repos.Sessions.GetByPatient(patientID)),
		Assessments:       orEmpty(s.repos.Assessments.GetByPatient(patientID)),
		TherapyPlans:      orEmpty(s.repos.TherapyPlans.GetByPatient(patientID)),
		Documents:         orEmpty(s.repos.Documents.GetByPatient(patientID)),
		Payments:          orEmpty(s.repos.Payments.GetByPatient(patientID)),
		Invoices:          orEmpty(s.repos.Invoices.GetByPatient(patientID)),
		PlansDueForReview: []string{},
	}
	for _, plan := range chart.TherapyPlans {
		if plan.ReviewDue(today) {
			chart.PlansDueForReview = append(chart.PlansDueForReview, plan.ID)
		}
	}

	s.deps.Audit.LogAsync(ctx, AuditEntry{
		Actor: actor, Action: domain.ActionRead, ResourceType: "patient-chart", ResourceID: patientID,
	})
	s.deps.Log.Debug("patient chart assembled",
		zap.String("patient_id", patientID),
		zap.Int("sessions", len(chart.Sessions)),
		zap.String("by", actor.UserID),
	)
	return chart, nil
}

// FollowUps lists phone calls still waiting for a call back.
func (s *ClinicalService) FollowUps(ctx context.Context) []phonelog.PhoneLog {
	_, span := s.PhoneLogs.start(ctx, "FollowUps")
	defer span.End()

	out := []phonelog.PhoneLog{}
	for _, l := range s.repos.PhoneLogs.GetAll() {
		if l.AwaitingFollowUp() {
			out = append(out, l)
		}
	}
	return out
}
