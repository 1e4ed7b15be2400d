package domain

import "time"

// Input is a create payload able to build a full record once the store
// has assigned an id.
type Input[T any] interface {
	Validate() error
	Build(id string, now time.Time) T
}

// Patch is a partial update. Apply copies only the fields that were set.
type Patch[T any] interface {
	Validate() error
	Apply(rec *T, now time.Time)
}

// Repository is the uniform CRUD façade every entity store exposes.
// Absence is reported through the boolean, never through the error;
// the error return carries a *ValidationError only.
type Repository[T, C, U any] interface {
	GetAll() []T
	GetByID(id string) (T, bool)
	Create(in C) (T, error)
	Update(id string, patch U) (T, bool, error)
	// Replace is Update that also returns the record it overwrote.
	Replace(id string, patch U) (prev, next T, ok bool, err error)
	Delete(id string) (T, bool)
}
