package expense

import "github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"

type Repository interface {
	domain.Repository[Expense, CreateExpenseInput, UpdateExpenseInput]

	GetByStatus(status Status) []Expense
	Search(query string) []Expense
}
