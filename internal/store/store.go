// Package store holds the process-local entity collections backing every
// repository. A Store keeps records in display order, guards them with a
// single RWMutex and hands out copies so callers never alias its state.
package store

import (
	"cmp"
	"slices"
	"sync"
)

type Entity interface {
	Identifier() string
}

type Option[T Entity] func(*Store[T])

// WithIDs overrides the default uuid id generator.
func WithIDs[T Entity](f IDFunc) Option[T] {
	return func(s *Store[T]) { s.newID = f }
}

// Prepend makes Insert place new records first instead of last.
func Prepend[T Entity]() Option[T] {
	return func(s *Store[T]) { s.prepend = true }
}

// WithDerive registers a hook that recomputes derived fields. It runs on
// every insert, load and update while the write lock is held.
func WithDerive[T Entity](f func(*T)) Option[T] {
	return func(s *Store[T]) { s.derive = f }
}

// WithClone registers a deep-copy function for records carrying slices or maps.
func WithClone[T Entity](f func(T) T) Option[T] {
	return func(s *Store[T]) { s.clone = f }
}

// WithIndex maintains a secondary lookup keyed by key(record). Records with
// an empty key are not indexed.
func WithIndex[T Entity](name string, key func(T) string) Option[T] {
	return func(s *Store[T]) {
		s.indexes[name] = &index[T]{key: key, buckets: make(map[string][]string)}
	}
}

type index[T Entity] struct {
	key     func(T) string
	buckets map[string][]string
}

type Store[T Entity] struct {
	mu      sync.RWMutex
	name    string
	order   []string
	byID    map[string]T
	seq     map[string]int64
	head    int64
	tail    int64
	indexes map[string]*index[T]

	newID   IDFunc
	prepend bool
	derive  func(*T)
	clone   func(T) T
}

func New[T Entity](name string, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:    name,
		byID:    make(map[string]T),
		seq:     make(map[string]int64),
		indexes: make(map[string]*index[T]),
		newID:   PrefixedUUID(""),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[T]) Name() string { return s.name }

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// All returns every record in display order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.copy(s.byID[id]))
	}
	return out
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.copy(rec), true
}

// Filter returns, in display order, the records matching pred.
func (s *Store[T]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range s.order {
		if rec := s.byID[id]; pred(rec) {
			out = append(out, s.copy(rec))
		}
	}
	return out
}

// Lookup returns the records whose indexed key equals key, in display order.
// It panics on an unknown index name since that is a wiring bug.
func (s *Store[T]) Lookup(name, key string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[name]
	if !ok {
		panic("store " + s.name + ": unknown index " + name)
	}
	ids := idx.buckets[key]
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.copy(s.byID[id]))
	}
	return out
}

// Insert assigns a fresh id, builds the record and stores it.
func (s *Store[T]) Insert(build func(id string) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.has(id) {
		id = s.newID()
	}
	rec := build(id)
	if s.derive != nil {
		s.derive(&rec)
	}

	var pos int64
	if s.prepend {
		s.head--
		pos = s.head
		s.order = slices.Insert(s.order, 0, id)
	} else {
		s.tail++
		pos = s.tail
		s.order = append(s.order, id)
	}
	s.put(id, pos, rec)
	return s.copy(rec)
}

// Load stores records that already carry ids, appending them in the given
// order. Records whose id is already present replace the stored version.
func (s *Store[T]) Load(recs ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range recs {
		rec = s.copy(rec)
		if s.derive != nil {
			s.derive(&rec)
		}
		id := rec.Identifier()
		if old, ok := s.byID[id]; ok {
			s.unindex(id, old)
			s.byID[id] = rec
			s.index(id, rec)
			continue
		}
		s.tail++
		s.order = append(s.order, id)
		s.put(id, s.tail, rec)
	}
}

// Update applies mutate to a copy of the record and stores the result.
// The boolean is false when id is unknown, in which case nothing changes.
func (s *Store[T]) Update(id string, mutate func(*T)) (T, bool) {
	_, rec, ok := s.Swap(id, mutate)
	return rec, ok
}

// Swap is Update that also returns the record as it was just before the
// mutation, read under the same lock.
func (s *Store[T]) Swap(id string, mutate func(*T)) (prev, next T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[id]
	if !ok {
		return prev, next, false
	}
	return s.copy(old), s.replace(id, old, mutate), true
}

// UpdateWhere mutates every record matching pred under one lock and returns
// the updated records in display order.
func (s *Store[T]) UpdateWhere(pred func(T) bool, mutate func(*T)) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0)
	for _, id := range s.order {
		old := s.byID[id]
		if !pred(old) {
			continue
		}
		out = append(out, s.replace(id, old, mutate))
	}
	return out
}

func (s *Store[T]) Delete(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	s.unindex(id, rec)
	delete(s.byID, id)
	delete(s.seq, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return rec, true
}

func (s *Store[T]) replace(id string, old T, mutate func(*T)) T {
	rec := s.copy(old)
	mutate(&rec)
	if s.derive != nil {
		s.derive(&rec)
	}
	s.unindex(id, old)
	s.byID[id] = rec
	s.index(id, rec)
	return s.copy(rec)
}

func (s *Store[T]) has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *Store[T]) put(id string, pos int64, rec T) {
	s.byID[id] = rec
	s.seq[id] = pos
	s.index(id, rec)
}

func (s *Store[T]) index(id string, rec T) {
	for _, idx := range s.indexes {
		key := idx.key(rec)
		if key == "" {
			continue
		}
		bucket := idx.buckets[key]
		at, _ := slices.BinarySearchFunc(bucket, s.seq[id], func(other string, target int64) int {
			return cmp.Compare(s.seq[other], target)
		})
		idx.buckets[key] = slices.Insert(bucket, at, id)
	}
}

func (s *Store[T]) unindex(id string, rec T) {
	for _, idx := range s.indexes {
		key := idx.key(rec)
		bucket := idx.buckets[key]
		if i := slices.Index(bucket, id); i >= 0 {
			bucket = slices.Delete(bucket, i, i+1)
			if len(bucket) == 0 {
				delete(idx.buckets, key)
			} else {
				idx.buckets[key] = bucket
			}
		}
	}
}

func (s *Store[T]) copy(rec T) T {
	if s.clone == nil {
		return rec
	}
	return s.clone(rec)
}
