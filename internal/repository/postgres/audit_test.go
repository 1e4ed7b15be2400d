package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

var insertAudit = regexp.QuoteMeta(`INSERT INTO "audit"."logs" ` +
	`("occurred_at","user_id","user_role","ip_address","action","resource_type","resource_id","request_id","changes") ` +
	`VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING "id"`)

func sampleEntry() *domain.AuditLog {
	return &domain.AuditLog{
		OccurredAt:   time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC),
		UserID:       "usr_001",
		UserRole:     domain.RoleAdmin,
		IPAddress:    "127.0.0.1",
		RequestID:    "req-1",
		Action:       domain.ActionUpdate,
		ResourceType: "products",
		ResourceID:   "prd_001",
		Changes:      `{"stock":3}`,
	}
}

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(insertAudit).
		WithArgs(sqlmock.AnyArg(), "usr_001", "admin", "127.0.0.1", "update", "products", "prd_001", "req-1", `{"stock":3}`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
	mock.ExpectCommit()

	entry := sampleEntry()
	require.NoError(t, NewAuditRepository(db).Create(context.Background(), entry))
	assert.Equal(t, id, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryCreateError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertAudit).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewAuditRepository(db).Create(context.Background(), sampleEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting audit log")
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
