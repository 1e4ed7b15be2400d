package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Validator collects field problems and turns them into a *ValidationError.
type Validator struct {
	errs []string
}

func (v *Validator) Check(ok bool, msg string) {
	if !ok {
		v.errs = append(v.errs, msg)
	}
}

func (v *Validator) Required(value, field string) {
	v.Check(strings.TrimSpace(value) != "", field+" is required")
}

func (v *Validator) NonNegative(d decimal.Decimal, field string) {
	v.Check(!d.IsNegative(), field+" must not be negative")
}

func (v *Validator) Clock(value, field string) {
	v.Check(ValidClock(value), field+" must be HH:MM")
}

func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}
