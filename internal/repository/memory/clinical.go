package memory

import (
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/clinical"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/phonelog"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

const byPatient = "patient"

type patientTable = table[patient.Patient, patient.CreatePatientInput, patient.UpdatePatientInput]

type PatientRepository struct {
	*patientTable
}

var _ patient.Repository = (*PatientRepository)(nil)

func NewPatientRepository(opts Options) *PatientRepository {
	s := store.New("patients",
		store.WithIDs[patient.Patient](opts.ids("pat_")),
		store.WithIndex("psychologist", func(p patient.Patient) string { return p.PrimaryPsychologist }),
	)
	return &PatientRepository{patientTable: &patientTable{s: s, now: opts.clock()}}
}

func (r *PatientRepository) GetByPsychologist(psychologist string) []patient.Patient {
	return r.s.Lookup("psychologist", psychologist)
}

type sessionTable = table[clinical.Session, clinical.CreateSessionInput, clinical.UpdateSessionInput]

type SessionRepository struct {
	*sessionTable
}

var _ clinical.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(opts Options) *SessionRepository {
	s := store.New("sessions",
		store.WithIDs[clinical.Session](opts.ids("ses_")),
		store.WithClone(clinical.Session.Clone),
		store.WithIndex(byPatient, func(s clinical.Session) string { return s.PatientID }),
		store.WithIndex("psychologist", func(s clinical.Session) string { return s.PsychologistID }),
		store.WithIndex("date", func(s clinical.Session) string { return s.Date.String() }),
	)
	return &SessionRepository{sessionTable: &sessionTable{s: s, now: opts.clock()}}
}

func (r *SessionRepository) GetByPatient(patientID string) []clinical.Session {
	return r.s.Lookup(byPatient, patientID)
}

func (r *SessionRepository) GetByPsychologist(psychologistID string) []clinical.Session {
	return r.s.Lookup("psychologist", psychologistID)
}

func (r *SessionRepository) GetByDate(date domain.Date) []clinical.Session {
	return r.s.Lookup("date", date.String())
}

type assessmentTable = table[clinical.Assessment, clinical.CreateAssessmentInput, clinical.UpdateAssessmentInput]

type AssessmentRepository struct {
	*assessmentTable
}

var _ clinical.AssessmentRepository = (*AssessmentRepository)(nil)

func NewAssessmentRepository(opts Options) *AssessmentRepository {
	s := store.New("assessments",
		store.WithIDs[clinical.Assessment](opts.ids("asm_")),
		store.WithClone(clinical.Assessment.Clone),
		store.WithIndex(byPatient, func(a clinical.Assessment) string { return a.PatientID }),
	)
	return &AssessmentRepository{assessmentTable: &assessmentTable{s: s, now: opts.clock()}}
}

func (r *AssessmentRepository) GetByPatient(patientID string) []clinical.Assessment {
	return r.s.Lookup(byPatient, patientID)
}

type therapyPlanTable = table[clinical.TherapyPlan, clinical.CreateTherapyPlanInput, clinical.UpdateTherapyPlanInput]

type TherapyPlanRepository struct {
	*therapyPlanTable
}

var _ clinical.TherapyPlanRepository = (*TherapyPlanRepository)(nil)

func NewTherapyPlanRepository(opts Options) *TherapyPlanRepository {
	s := store.New("therapy_plans",
		store.WithIDs[clinical.TherapyPlan](opts.ids("tp_")),
		store.WithClone(clinical.TherapyPlan.Clone),
		store.WithIndex(byPatient, func(p clinical.TherapyPlan) string { return p.PatientID }),
	)
	return &TherapyPlanRepository{therapyPlanTable: &therapyPlanTable{s: s, now: opts.clock()}}
}

func (r *TherapyPlanRepository) GetByPatient(patientID string) []clinical.TherapyPlan {
	return r.s.Lookup(byPatient, patientID)
}

type documentTable = table[document.Document, document.CreateDocumentInput, document.UpdateDocumentInput]

type DocumentRepository struct {
	*documentTable
}

var _ document.Repository = (*DocumentRepository)(nil)

func NewDocumentRepository(opts Options) *DocumentRepository {
	s := store.New("documents",
		store.WithIDs[document.Document](opts.ids("doc_")),
		store.WithClone(document.Document.Clone),
		store.WithIndex(byPatient, func(d document.Document) string { return d.PatientID }),
		store.WithIndex("type", func(d document.Document) string { return string(d.Type) }),
	)
	return &DocumentRepository{documentTable: &documentTable{s: s, now: opts.clock()}}
}

func (r *DocumentRepository) GetByPatient(patientID string) []document.Document {
	return r.s.Lookup(byPatient, patientID)
}

func (r *DocumentRepository) GetByType(t document.Type) []document.Document {
	return r.s.Lookup("type", string(t))
}

type phoneLogTable = table[phonelog.PhoneLog, phonelog.CreatePhoneLogInput, phonelog.UpdatePhoneLogInput]

type PhoneLogRepository struct {
	*phoneLogTable
}

var _ phonelog.Repository = (*PhoneLogRepository)(nil)

func NewPhoneLogRepository(opts Options) *PhoneLogRepository {
	s := store.New("phone_logs",
		store.WithIDs[phonelog.PhoneLog](opts.ids("call_")),
		store.WithIndex("date", func(l phonelog.PhoneLog) string { return l.Date.String() }),
	)
	return &PhoneLogRepository{phoneLogTable: &phoneLogTable{s: s, now: opts.clock()}}
}

func (r *PhoneLogRepository) GetByDate(date domain.Date) []phonelog.PhoneLog {
	return r.s.Lookup("date", date.String())
}
