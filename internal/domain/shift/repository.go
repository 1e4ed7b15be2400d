package shift

import (
	"errors"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var ErrShiftNotFound = errors.New("shift not found")

type Repository interface {
	domain.Repository[Shift, CreateShiftInput, UpdateShiftInput]

	GetByEmployee(employeeID string) []Shift
	GetByDate(date domain.Date) []Shift
}
