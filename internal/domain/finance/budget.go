package finance

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// BudgetStatus is maintained by users; spending changes never update it.
type BudgetStatus string

const (
	BudgetActive    BudgetStatus = "active"
	BudgetExceeded  BudgetStatus = "exceeded"
	BudgetCompleted BudgetStatus = "completed"
)

func (s BudgetStatus) IsValid() bool {
	switch s {
	case BudgetActive, BudgetExceeded, BudgetCompleted:
		return true
	}
	return false
}

type Budget struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	SpentAmount  decimal.Decimal `json:"spentAmount"`
	Period       Period          `json:"period"`
	Year         int             `json:"year"`
	Month        *int            `json:"month,omitempty"`
	Quarter      *int            `json:"quarter,omitempty"`
	Status       BudgetStatus    `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (b Budget) Identifier() string { return b.ID }

func (b Budget) Clone() Budget {
	if b.Month != nil {
		m := *b.Month
		b.Month = &m
	}
	if b.Quarter != nil {
		q := *b.Quarter
		b.Quarter = &q
	}
	return b
}

// Utilization returns spent/budget as a percentage. A zero budget has no
// defined utilization: the result is 0 and ok is false.
func (b Budget) Utilization() (pct float64, ok bool) {
	if b.BudgetAmount.IsZero() {
		return 0, false
	}
	return b.SpentAmount.Div(b.BudgetAmount).Mul(hundred).Round(2).InexactFloat64(), true
}

// Remaining may be negative once spending exceeds the budget.
func (b Budget) Remaining() decimal.Decimal {
	return b.BudgetAmount.Sub(b.SpentAmount)
}

// InPeriod matches period and year, and month when one is given.
func (b Budget) InPeriod(period Period, year int, month *int) bool {
	if b.Period != period || b.Year != year {
		return false
	}
	if month == nil {
		return true
	}
	return b.Month != nil && *b.Month == *month
}

func validatePeriodFields(v *domain.Validator, month, quarter *int) {
	if month != nil {
		v.Check(*month >= 1 && *month <= 12, "month must be between 1 and 12")
	}
	if quarter != nil {
		v.Check(*quarter >= 1 && *quarter <= 4, "quarter must be between 1 and 4")
	}
}

type CreateBudgetInput struct {
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	SpentAmount  decimal.Decimal `json:"spentAmount"`
	Period       Period          `json:"period"`
	Year         int             `json:"year"`
	Month        *int            `json:"month,omitempty"`
	Quarter      *int            `json:"quarter,omitempty"`
	Status       BudgetStatus    `json:"status,omitempty"`
}

func (in CreateBudgetInput) Validate() error {
	var v domain.Validator
	v.Required(in.Category, "category")
	v.NonNegative(in.BudgetAmount, "budgetAmount")
	v.NonNegative(in.SpentAmount, "spentAmount")
	v.Check(in.Period.IsValid(), "period is invalid")
	v.Check(in.Year > 0, "year is required")
	v.Check(in.Status == "" || in.Status.IsValid(), "status is invalid")
	validatePeriodFields(&v, in.Month, in.Quarter)
	return v.Err()
}

func (in CreateBudgetInput) Build(id string, now time.Time) Budget {
	status := in.Status
	if status == "" {
		status = BudgetActive
	}
	return Budget{
		ID:           id,
		Category:     in.Category,
		BudgetAmount: in.BudgetAmount,
		SpentAmount:  in.SpentAmount,
		Period:       in.Period,
		Year:         in.Year,
		Month:        in.Month,
		Quarter:      in.Quarter,
		Status:       status,
		CreatedAt:    now.UTC(),
	}.Clone()
}

type UpdateBudgetInput struct {
	Category     *string          `json:"category,omitempty"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount,omitempty"`
	SpentAmount  *decimal.Decimal `json:"spentAmount,omitempty"`
	Period       *Period          `json:"period,omitempty"`
	Year         *int             `json:"year,omitempty"`
	Month        *int             `json:"month,omitempty"`
	Quarter      *int             `json:"quarter,omitempty"`
	Status       *BudgetStatus    `json:"status,omitempty"`
}

func (in UpdateBudgetInput) Validate() error {
	var v domain.Validator
	if in.Category != nil {
		v.Required(*in.Category, "category")
	}
	if in.BudgetAmount != nil {
		v.NonNegative(*in.BudgetAmount, "budgetAmount")
	}
	if in.SpentAmount != nil {
		v.NonNegative(*in.SpentAmount, "spentAmount")
	}
	if in.Period != nil {
		v.Check(in.Period.IsValid(), "period is invalid")
	}
	if in.Year != nil {
		v.Check(*in.Year > 0, "year is required")
	}
	if in.Status != nil {
		v.Check(in.Status.IsValid(), "status is invalid")
	}
	validatePeriodFields(&v, in.Month, in.Quarter)
	return v.Err()
}

func (in UpdateBudgetInput) Apply(b *Budget, _ time.Time) {
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.BudgetAmount != nil {
		b.BudgetAmount = *in.BudgetAmount
	}
	if in.SpentAmount != nil {
		b.SpentAmount = *in.SpentAmount
	}
	if in.Period != nil {
		b.Period = *in.Period
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if in.Month != nil {
		m := *in.Month
		b.Month = &m
	}
	if in.Quarter != nil {
		q := *in.Quarter
		b.Quarter = &q
	}
	if in.Status != nil {
		b.Status = *in.Status
	}
}
