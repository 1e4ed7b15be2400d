package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/metrics"
)

const tracerName = "github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"

// Deps are the cross-cutting collaborators every service shares. Metrics may
// be nil; Now defaults to time.Now.
type Deps struct {
	Audit   *AuditService
	Metrics *metrics.Collector
	Log     *zap.Logger
	Now     func() time.Time
}

// Today is the current calendar date in the clock's location.
func (d Deps) Today() domain.Date {
	if d.Now == nil {
		return domain.DateOf(time.Now())
	}
	return domain.DateOf(d.Now())
}

// Query holds raw query-string values keyed by parameter name.
type Query map[string]string

// Filter answers one getByX query for a raw query-string value. Some
// filters read companion parameters from q.
type Filter[T any] func(value string, q Query) ([]T, error)

// SaveHook runs after a successful create (before is nil) or update.
type SaveHook[T any] func(ctx context.Context, actor Actor, before *T, after T)

// ResourceService is the uniform service over one entity repository. It adds
// spans, logs, metrics and audit entries, and turns absent records into
// not-found errors.
type ResourceService[T store.Entity, C domain.Input[T], U domain.Patch[T]] struct {
	resource   string
	repo       domain.Repository[T, C, U]
	notFound   error
	filters    map[string]Filter[T]
	params     map[string]bool
	hooks      []SaveHook[T]
	auditReads bool

	deps   Deps
	tracer trace.Tracer
}

func NewResourceService[T store.Entity, C domain.Input[T], U domain.Patch[T]](
	resource string, repo domain.Repository[T, C, U], notFound error, deps Deps,
) *ResourceService[T, C, U] {
	return &ResourceService[T, C, U]{
		resource: resource,
		repo:     repo,
		notFound: notFound,
		filters:  map[string]Filter[T]{},
		params:   map[string]bool{},
		deps:     deps,
		tracer:   otel.Tracer(tracerName),
	}
}

// WithFilter registers a named getByX query usable from List and ListBy.
func (s *ResourceService[T, C, U]) WithFilter(name string, f Filter[T]) *ResourceService[T, C, U] {
	s.filters[name] = f
	return s
}

// WithParam declares a companion parameter that only modifies filters.
func (s *ResourceService[T, C, U]) WithParam(name string) *ResourceService[T, C, U] {
	s.params[name] = true
	return s
}

func (s *ResourceService[T, C, U]) OnSave(h SaveHook[T]) *ResourceService[T, C, U] {
	s.hooks = append(s.hooks, h)
	return s
}

// AuditReads makes single-record reads leave an audit entry, as clinical
// records require.
func (s *ResourceService[T, C, U]) AuditReads() *ResourceService[T, C, U] {
	s.auditReads = true
	return s
}

func (s *ResourceService[T, C, U]) Resource() string { return s.resource }

func (s *ResourceService[T, C, U]) Filters() []string {
	return slices.Sorted(maps.Keys(s.filters))
}

// List returns every record, or the records matching all given filters.
// Filters with an empty value are ignored; unknown ones are rejected.
func (s *ResourceService[T, C, U]) List(ctx context.Context, query Query) ([]T, error) {
	_, span := s.start(ctx, "List")
	defer span.End()

	var result []T
	applied := false
	for _, name := range slices.Sorted(maps.Keys(query)) {
		value := query[name]
		if value == "" || s.params[name] {
			continue
		}
		matches, err := s.listBy(name, value, query)
		if err != nil {
			recordErr(span, err)
			return nil, err
		}
		if !applied {
			result, applied = matches, true
			continue
		}
		result = intersect(result, matches)
	}
	if !applied {
		result = s.repo.GetAll()
	}

	span.SetAttributes(attribute.Int("result.count", len(result)))
	return result, nil
}

func (s *ResourceService[T, C, U]) ListBy(ctx context.Context, filter, value string) ([]T, error) {
	_, span := s.start(ctx, "ListBy", attribute.String("filter", filter))
	defer span.End()

	out, err := s.listBy(filter, value, Query{})
	if err != nil {
		recordErr(span, err)
	}
	return out, err
}

func (s *ResourceService[T, C, U]) listBy(filter, value string, q Query) ([]T, error) {
	f, ok := s.filters[filter]
	if !ok {
		return nil, &domain.ValidationError{Fields: []string{
			fmt.Sprintf("unknown filter %q for %s", filter, s.resource),
		}}
	}
	return f(value, q)
}

func (s *ResourceService[T, C, U]) Get(ctx context.Context, actor Actor, id string) (T, error) {
	ctx, span := s.start(ctx, "Get", attribute.String("id", id))
	defer span.End()

	rec, ok := s.repo.GetByID(id)
	if !ok {
		err := notFound(s.notFound, id)
		recordErr(span, err)
		return rec, err
	}

	if s.auditReads {
		s.deps.Audit.LogAsync(ctx, AuditEntry{
			Actor: actor, Action: domain.ActionRead, ResourceType: s.resource, ResourceID: id,
		})
	}
	return rec, nil
}

func (s *ResourceService[T, C, U]) Create(ctx context.Context, actor Actor, in C) (T, error) {
	ctx, span := s.start(ctx, "Create")
	defer span.End()

	rec, err := s.repo.Create(in)
	if err != nil {
		s.count(domain.ActionCreate, err)
		recordErr(span, err)
		return rec, err
	}
	s.count(domain.ActionCreate, nil)
	span.SetAttributes(attribute.String("id", rec.Identifier()))

	s.deps.Audit.LogAsync(ctx, AuditEntry{
		Actor: actor, Action: domain.ActionCreate, ResourceType: s.resource, ResourceID: rec.Identifier(),
	})
	s.deps.Log.Info(s.resource+" created",
		zap.String("id", rec.Identifier()),
		zap.String("by", actor.UserID),
	)

	for _, h := range s.hooks {
		h(ctx, actor, nil, rec)
	}
	return rec, nil
}

func (s *ResourceService[T, C, U]) Update(ctx context.Context, actor Actor, id string, patch U) (T, error) {
	ctx, span := s.start(ctx, "Update", attribute.String("id", id))
	defer span.End()

	before, rec, ok, err := s.repo.Replace(id, patch)
	if err == nil && !ok {
		err = notFound(s.notFound, id)
	}
	s.count(domain.ActionUpdate, err)
	if err != nil {
		recordErr(span, err)
		return rec, err
	}

	s.deps.Audit.LogAsync(ctx, AuditEntry{
		Actor: actor, Action: domain.ActionUpdate, ResourceType: s.resource, ResourceID: id, Changes: patch,
	})
	s.deps.Log.Info(s.resource+" updated", zap.String("id", id), zap.String("by", actor.UserID))

	for _, h := range s.hooks {
		h(ctx, actor, &before, rec)
	}
	return rec, nil
}

func (s *ResourceService[T, C, U]) Delete(ctx context.Context, actor Actor, id string) (T, error) {
	ctx, span := s.start(ctx, "Delete", attribute.String("id", id))
	defer span.End()

	rec, ok := s.repo.Delete(id)
	var err error
	if !ok {
		err = notFound(s.notFound, id)
	}
	s.count(domain.ActionDelete, err)
	if err != nil {
		recordErr(span, err)
		return rec, err
	}

	s.deps.Audit.LogAsync(ctx, AuditEntry{
		Actor: actor, Action: domain.ActionDelete, ResourceType: s.resource, ResourceID: id,
	})
	s.deps.Log.Info(s.resource+" deleted", zap.String("id", id), zap.String("by", actor.UserID))
	return rec, nil
}

func (s *ResourceService[T, C, U]) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("resource", s.resource))
	return s.tracer.Start(ctx, s.resource+"."+op, trace.WithAttributes(attrs...))
}

func (s *ResourceService[T, C, U]) count(action domain.AuditAction, err error) {
	if s.deps.Metrics == nil {
		return
	}
	s.deps.Metrics.MutationsTotal.WithLabelValues(s.resource, string(action), outcome(err)).Inc()
}

func outcome(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}
	return "error"
}

func recordErr(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// intersect keeps the records of a that also appear in b, in a's order.
func intersect[T store.Entity](a, b []T) []T {
	ids := make(map[string]struct{}, len(b))
	for _, rec := range b {
		ids[rec.Identifier()] = struct{}{}
	}
	return slices.DeleteFunc(a, func(rec T) bool {
		_, ok := ids[rec.Identifier()]
		return !ok
	})
}
