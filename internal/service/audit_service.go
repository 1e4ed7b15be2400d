package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// LogAuditRepository writes audit entries to the process log. It is the
// default sink when no audit database is configured.
type LogAuditRepository struct {
	log *zap.Logger
}

func NewLogAuditRepository(log *zap.Logger) *LogAuditRepository {
	return &LogAuditRepository{log: log.Named("audit")}
}

func (r *LogAuditRepository) Create(_ context.Context, e *domain.AuditLog) error {
	r.log.Info("audit",
		zap.String("user_id", e.UserID),
		zap.String("role", string(e.UserRole)),
		zap.String("action", string(e.Action)),
		zap.String("resource_type", e.ResourceType),
		zap.String("resource_id", e.ResourceID),
		zap.String("request_id", e.RequestID),
		zap.String("ip", e.IPAddress),
	)
	return nil
}

type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
	entries chan *domain.AuditLog
	done    chan struct{}

	// mu guards closed; senders hold the read lock so Shutdown never closes
	// entries under them.
	mu     sync.RWMutex
	closed bool
}

const auditBufferSize = 10_000

// NewAuditService starts the persistence worker. Call Shutdown to drain it.
// m may be nil.
func NewAuditService(repo AuditRepository, m *metrics.Collector, log *zap.Logger) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		now:     time.Now,
		entries: make(chan *domain.AuditLog, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence.
// If the buffer is full, or the service has shut down, the entry is dropped
// and a warning is emitted.
func (s *AuditService) LogAsync(_ context.Context, entry AuditEntry) {
	al := &domain.AuditLog{
		OccurredAt:   s.now().UTC(),
		UserID:       entry.Actor.UserID,
		UserRole:     entry.Actor.Role,
		IPAddress:    entry.Actor.IP,
		RequestID:    entry.Actor.RequestID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Changes:      "{}",
	}
	if entry.Changes != nil {
		if b, err := json.Marshal(entry.Changes); err == nil {
			al.Changes = string(b)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		if s.metrics != nil {
			s.metrics.AuditBufferDropped.Inc()
		}
		s.log.Warn("audit service stopped, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("resource", entry.ResourceType),
		)
		return
	}

	select {
	case s.entries <- al:
	default:
		if s.metrics != nil {
			s.metrics.AuditBufferDropped.Inc()
		}
		s.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("resource", entry.ResourceType),
		)
	}
}

// Shutdown stops intake and waits for queued entries to be written. It is
// safe to call more than once.
func (s *AuditService) Shutdown() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else if s.metrics != nil {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
