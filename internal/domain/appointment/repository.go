package appointment

import "github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"

type Repository interface {
	domain.Repository[Appointment, CreateAppointmentInput, UpdateAppointmentInput]

	GetByDate(date domain.Date) []Appointment
	Search(query string) []Appointment
}
