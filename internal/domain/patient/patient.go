package patient

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Status represents the lifecycle state of a patient record.
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusDischarged Status = "discharged"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDischarged:
		return true
	}
	return false
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Patient struct {
	ID                  string           `json:"id"`
	FirstName           string           `json:"firstName"`
	LastName            string           `json:"lastName"`
	DateOfBirth         domain.Date      `json:"dateOfBirth"`
	Gender              Gender           `json:"gender"`
	Phone               string           `json:"phone"`
	Email               string           `json:"email,omitempty"`
	Address             string           `json:"address,omitempty"`
	EmergencyContact    EmergencyContact `json:"emergencyContact"`
	ReferralSource      string           `json:"referralSource,omitempty"`
	PrimaryPsychologist string           `json:"primaryPsychologist"`
	Status              Status           `json:"status"`
	RegistrationDate    domain.Date      `json:"registrationDate"`

	// Clinical free text.
	Notes              string `json:"notes,omitempty"`
	MedicalHistory     string `json:"medicalHistory,omitempty"`
	CurrentMedications string `json:"currentMedications,omitempty"`
}

func (p Patient) Identifier() string { return p.ID }

func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// AgeOn returns the patient's age in whole years on the given day.
func (p Patient) AgeOn(day domain.Date) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	dob := p.DateOfBirth
	years := day.Year() - dob.Year()
	if day.Month() < dob.Month() ||
		(day.Month() == dob.Month() && day.Time().Day() < dob.Time().Day()) {
		years--
	}
	return years
}

func (p Patient) IsActive() bool {
	return p.Status == StatusActive
}

type CreatePatientInput struct {
	FirstName           string           `json:"firstName"`
	LastName            string           `json:"lastName"`
	DateOfBirth         domain.Date      `json:"dateOfBirth"`
	Gender              Gender           `json:"gender"`
	Phone               string           `json:"phone"`
	Email               string           `json:"email,omitempty"`
	Address             string           `json:"address,omitempty"`
	EmergencyContact    EmergencyContact `json:"emergencyContact"`
	ReferralSource      string           `json:"referralSource,omitempty"`
	PrimaryPsychologist string           `json:"primaryPsychologist"`
	Status              Status           `json:"status,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	MedicalHistory      string           `json:"medicalHistory,omitempty"`
	CurrentMedications  string           `json:"currentMedications,omitempty"`
}

func (in CreatePatientInput) Validate() error {
	var v domain.Validator
	v.Required(in.FirstName, "firstName")
	v.Required(in.LastName, "lastName")
	v.Check(in.Gender.IsValid(), "gender is invalid")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	return v.Err()
}

// Build registers the patient today; status defaults to active.
func (in CreatePatientInput) Build(id string, now time.Time) Patient {
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	return Patient{
		ID:                  id,
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		DateOfBirth:         in.DateOfBirth,
		Gender:              in.Gender,
		Phone:               strings.TrimSpace(in.Phone),
		Email:               strings.ToLower(strings.TrimSpace(in.Email)),
		Address:             in.Address,
		EmergencyContact:    in.EmergencyContact,
		ReferralSource:      in.ReferralSource,
		PrimaryPsychologist: in.PrimaryPsychologist,
		Status:              status,
		RegistrationDate:    domain.DateOf(now),
		Notes:               in.Notes,
		MedicalHistory:      in.MedicalHistory,
		CurrentMedications:  in.CurrentMedications,
	}
}

type UpdatePatientInput struct {
	FirstName           *string           `json:"firstName,omitempty"`
	LastName            *string           `json:"lastName,omitempty"`
	DateOfBirth         *domain.Date      `json:"dateOfBirth,omitempty"`
	Gender              *Gender           `json:"gender,omitempty"`
	Phone               *string           `json:"phone,omitempty"`
	Email               *string           `json:"email,omitempty"`
	Address             *string           `json:"address,omitempty"`
	EmergencyContact    *EmergencyContact `json:"emergencyContact,omitempty"`
	ReferralSource      *string           `json:"referralSource,omitempty"`
	PrimaryPsychologist *string           `json:"primaryPsychologist,omitempty"`
	Status              *Status           `json:"status,omitempty"`
	Notes               *string           `json:"notes,omitempty"`
	MedicalHistory      *string           `json:"medicalHistory,omitempty"`
	CurrentMedications  *string           `json:"currentMedications,omitempty"`
}

func (in UpdatePatientInput) Validate() error {
	var v domain.Validator
	if in.FirstName != nil {
		v.Required(*in.FirstName, "firstName")
	}
	if in.LastName != nil {
		v.Required(*in.LastName, "lastName")
	}
	if in.Gender != nil {
		v.Check(in.Gender.IsValid(), "gender is invalid")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	return v.Err()
}

func (in UpdatePatientInput) Apply(p *Patient, _ time.Time) {
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.DateOfBirth != nil {
		p.DateOfBirth = *in.DateOfBirth
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		p.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.EmergencyContact != nil {
		p.EmergencyContact = *in.EmergencyContact
	}
	if in.ReferralSource != nil {
		p.ReferralSource = *in.ReferralSource
	}
	if in.PrimaryPsychologist != nil {
		p.PrimaryPsychologist = *in.PrimaryPsychologist
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.MedicalHistory != nil {
		p.MedicalHistory = *in.MedicalHistory
	}
	if in.CurrentMedications != nil {
		p.CurrentMedications = *in.CurrentMedications
	}
}
