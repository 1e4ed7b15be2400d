package service

import (
	"fmt"
	"strconv"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

func invalid(format string, args ...any) error {
	return &domain.ValidationError{Fields: []string{fmt.Sprintf(format, args...)}}
}

// byKey passes the value through untouched, e.g. for foreign keys.
func byKey[T any](f func(string) []T) Filter[T] {
	return func(v string, _ Query) ([]T, error) { return f(v), nil }
}

func byDate[T any](f func(domain.Date) []T) Filter[T] {
	return func(v string, _ Query) ([]T, error) {
		d, err := domain.ParseDate(v)
		if err != nil {
			return nil, invalid("date must be YYYY-MM-DD, got %q", v)
		}
		return f(d), nil
	}
}

type enum interface {
	~string
	IsValid() bool
}

func byEnum[T any, E enum](field string, f func(E) []T) Filter[T] {
	return func(v string, _ Query) ([]T, error) {
		e := E(v)
		if !e.IsValid() {
			return nil, invalid("%s %q is invalid", field, v)
		}
		return f(e), nil
	}
}

// ParseDateRange reads optional inclusive from/to bounds.
func ParseDateRange(from, to string) (domain.DateRange, error) {
	var r domain.DateRange
	if from != "" {
		d, err := domain.ParseDate(from)
		if err != nil {
			return r, invalid("from must be YYYY-MM-DD, got %q", from)
		}
		r.From = &d
	}
	if to != "" {
		d, err := domain.ParseDate(to)
		if err != nil {
			return r, invalid("to must be YYYY-MM-DD, got %q", to)
		}
		r.To = &d
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, invalid("to must not precede from")
	}
	return r, nil
}

func parseInt(field, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid("%s must be a number, got %q", field, v)
	}
	return n, nil
}
