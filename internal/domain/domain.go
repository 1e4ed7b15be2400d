package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin                 Role = "admin"
	RoleITManager             Role = "it_manager"
	RoleSecretary             Role = "secretary"
	RoleAssistantPsychologist Role = "assistant_psychologist"
	RolePsychologist          Role = "psychologist"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleITManager, RoleSecretary, RoleAssistantPsychologist, RolePsychologist:
		return true
	}
	return false
}

// Permission is a capability string checked by the HTTP layer.
type Permission string

const (
	PermAllAccess                Permission = "all_access"
	PermUserManagement           Permission = "user_management"
	PermSystemSettings           Permission = "system_settings"
	PermReportsAll               Permission = "reports_all"
	PermDataExport               Permission = "data_export"
	PermFinanceManagement        Permission = "finance_management"
	PermSystemMonitoring         Permission = "system_monitoring"
	PermTechnicalReports         Permission = "technical_reports"
	PermBackupManagement         Permission = "backup_management"
	PermSecuritySettings         Permission = "security_settings"
	PermPerformanceAnalytics     Permission = "performance_analytics"
	PermAppointmentManagement    Permission = "appointment_management"
	PermPatientRegistration      Permission = "patient_registration"
	PermPhoneLogs                Permission = "phone_logs"
	PermDocumentManagement       Permission = "document_management"
	PermCalendarManagement       Permission = "calendar_management"
	PermBasicReports             Permission = "basic_reports"
	PermPatientAppointments      Permission = "patient_appointments"
	PermSessionNotes             Permission = "session_notes"
	PermPatientFilesBasic        Permission = "patient_files_basic"
	PermSupervisionRecords       Permission = "supervision_records"
	PermBasicAssessments         Permission = "basic_assessments"
	PermSessionScheduling        Permission = "session_scheduling"
	PermPatientManagement        Permission = "patient_management"
	PermSessionRecords           Permission = "session_records"
	PermPsychologicalAssessments Permission = "psychological_assessments"
	PermTherapyPlans             Permission = "therapy_plans"
	PermClinicalReports          Permission = "clinical_reports"
	PermSupervisionManagement    Permission = "supervision_management"
	PermPatientFilesFull         Permission = "patient_files_full"
	PermFinanceView              Permission = "finance_view"
)

var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermAllAccess, PermUserManagement, PermSystemSettings,
		PermReportsAll, PermDataExport, PermFinanceManagement,
	},
	RoleITManager: {
		PermSystemMonitoring, PermUserManagement, PermTechnicalReports,
		PermBackupManagement, PermSecuritySettings, PermPerformanceAnalytics,
	},
	RoleSecretary: {
		PermAppointmentManagement, PermPatientRegistration, PermPhoneLogs,
		PermDocumentManagement, PermCalendarManagement, PermBasicReports,
	},
	RoleAssistantPsychologist: {
		PermPatientAppointments, PermSessionNotes, PermPatientFilesBasic,
		PermSupervisionRecords, PermBasicAssessments, PermSessionScheduling,
	},
	RolePsychologist: {
		PermPatientManagement, PermSessionRecords, PermPsychologicalAssessments,
		PermTherapyPlans, PermClinicalReports, PermSupervisionManagement,
		PermPatientFilesFull, PermFinanceView,
	},
}

// HasPermission reports whether role carries perm. all_access grants everything.
func HasPermission(role Role, perm Permission) bool {
	perms := RolePermissions[role]
	return slices.Contains(perms, perm) || slices.Contains(perms, PermAllAccess)
}

// HasAnyPermission reports whether role carries at least one of perms.
func HasAnyPermission(role Role, perms ...Permission) bool {
	for _, p := range perms {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// RoleModules lists the dashboard modules a role can navigate to.
func RoleModules(role Role) []string {
	switch role {
	case RoleAdmin:
		return []string{"dashboard", "user_management", "system_settings", "reports",
			"patient_management", "appointments", "sessions", "documents", "finance"}
	case RoleITManager:
		return []string{"dashboard", "system_monitoring", "user_management", "technical_reports",
			"backup_management", "security_settings", "performance_analytics"}
	case RoleSecretary:
		return []string{"dashboard", "appointments", "patient_registration", "phone_logs",
			"documents", "calendar", "basic_reports"}
	case RoleAssistantPsychologist:
		return []string{"dashboard", "appointments", "sessions", "patient_files",
			"supervision", "assessments", "scheduling"}
	case RolePsychologist:
		return []string{"dashboard", "patient_management", "sessions", "assessments",
			"therapy_plans", "reports", "supervision", "calendar", "finance"}
	}
	return []string{"dashboard"}
}

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	Department     string `json:"department"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Avatar         string `json:"avatar,omitempty"`

	PasswordHash     string     `json:"-"`
	IsActive         bool       `json:"isActive"`
	FailedLoginCount int        `json:"-"`
	LockedUntil      *time.Time `json:"-"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
}

func (u User) Identifier() string { return u.ID }

// Permissions returns the role's permission set.
func (u User) Permissions() []Permission {
	return slices.Clone(RolePermissions[u.Role])
}

const (
	MaxFailedLogins   = 5
	LoginLockDuration = 15 * time.Minute
)

// IsLocked returns true if the account is temporarily locked due to failed logins.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// RecordLogin updates the failed-attempt counter, locking the account once
// MaxFailedLogins consecutive failures accumulate.
func (u *User) RecordLogin(success bool, now time.Time) {
	if success {
		u.FailedLoginCount = 0
		u.LockedUntil = nil
		u.LastLoginAt = &now
		return
	}
	u.FailedLoginCount++
	if u.FailedLoginCount >= MaxFailedLogins {
		until := now.Add(LoginLockDuration)
		u.LockedUntil = &until
		u.FailedLoginCount = 0
	}
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionSweep  AuditAction = "sweep"
	ActionLogin  AuditAction = "login"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	UserID    string `gorm:"column:user_id;type:varchar(64);index"`
	UserRole  Role   `gorm:"column:user_role;type:varchar(30)"`
	IPAddress string `gorm:"column:ip_address;type:varchar(45)"`

	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(64);index"`

	RequestID string `gorm:"column:request_id;type:varchar(64);index"`
	Changes   string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
