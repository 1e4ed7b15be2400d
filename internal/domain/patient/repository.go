package patient

import "github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"

type Repository interface {
	domain.Repository[Patient, CreatePatientInput, UpdatePatientInput]

	// GetByPsychologist filters on PrimaryPsychologist, which holds the
	// psychologist's display name.
	GetByPsychologist(psychologist string) []Patient
}
