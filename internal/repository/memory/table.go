// Package memory implements every domain repository on top of the
// process-local stores in internal/store.
package memory

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

// Clock supplies "now" for lifecycle fields such as createdAt and lastUpdated.
type Clock func() time.Time

// table is the uniform CRUD façade shared by all entity repositories.
// Validation runs before the store lock is taken; a rejected input never
// reaches the store.
type table[T store.Entity, C domain.Input[T], U domain.Patch[T]] struct {
	s   *store.Store[T]
	now Clock
}

func (t *table[T, C, U]) GetAll() []T {
	return t.s.All()
}

func (t *table[T, C, U]) GetByID(id string) (T, bool) {
	return t.s.Get(id)
}

func (t *table[T, C, U]) Create(in C) (T, error) {
	if err := in.Validate(); err != nil {
		var zero T
		return zero, err
	}
	now := t.now()
	return t.s.Insert(func(id string) T { return in.Build(id, now) }), nil
}

func (t *table[T, C, U]) Update(id string, patch U) (T, bool, error) {
	_, rec, ok, err := t.Replace(id, patch)
	return rec, ok, err
}

func (t *table[T, C, U]) Replace(id string, patch U) (prev, next T, ok bool, err error) {
	if err = patch.Validate(); err != nil {
		return prev, next, false, err
	}
	now := t.now()
	prev, next, ok = t.s.Swap(id, func(r *T) { patch.Apply(r, now) })
	return prev, next, ok, nil
}

func (t *table[T, C, U]) Delete(id string) (T, bool) {
	return t.s.Delete(id)
}

// Seed loads records that already carry ids, e.g. demo data.
func (t *table[T, C, U]) Seed(recs ...T) {
	t.s.Load(recs...)
}

// Count is the number of stored records.
func (t *table[T, C, U]) Count() int {
	return t.s.Len()
}
