package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/config"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/pkg/metrics"
)

// Role checks are permission-string lookups. all_access (admin) passes all
// of them.
var (
	inventoryAccess = access{
		read:  []domain.Permission{domain.PermFinanceView, domain.PermReportsAll},
		write: []domain.Permission{domain.PermFinanceManagement},
	}
	financeAccess = access{
		read:  []domain.Permission{domain.PermFinanceView, domain.PermReportsAll},
		write: []domain.Permission{domain.PermFinanceManagement},
	}
	paymentAccess = access{
		read:  []domain.Permission{domain.PermFinanceView, domain.PermPatientManagement},
		write: []domain.Permission{domain.PermFinanceManagement, domain.PermPatientRegistration},
	}
	expenseAccess = access{
		read:  []domain.Permission{domain.PermFinanceView, domain.PermReportsAll},
		write: []domain.Permission{domain.PermFinanceManagement},
	}
	appointmentAccess = access{
		read: []domain.Permission{domain.PermPatientAppointments, domain.PermCalendarManagement},
		write: []domain.Permission{
			domain.PermAppointmentManagement, domain.PermSessionScheduling, domain.PermPatientManagement,
		},
	}
	calendarAccess = access{
		read: []domain.Permission{domain.PermAppointmentManagement, domain.PermPatientAppointments},
		write: []domain.Permission{
			domain.PermCalendarManagement, domain.PermSessionScheduling, domain.PermPatientManagement,
		},
	}
	patientAccess = access{
		read:  []domain.Permission{domain.PermPatientFilesBasic, domain.PermPatientAppointments},
		write: []domain.Permission{domain.PermPatientManagement, domain.PermPatientRegistration},
	}
	sessionAccess = access{
		read:  []domain.Permission{domain.PermPatientFilesFull, domain.PermSupervisionManagement},
		write: []domain.Permission{domain.PermSessionRecords, domain.PermSessionNotes},
	}
	assessmentAccess = access{
		read:  []domain.Permission{domain.PermPatientFilesFull, domain.PermSupervisionRecords},
		write: []domain.Permission{domain.PermPsychologicalAssessments, domain.PermBasicAssessments},
	}
	therapyPlanAccess = access{
		read:  []domain.Permission{domain.PermPatientFilesFull, domain.PermPatientFilesBasic},
		write: []domain.Permission{domain.PermTherapyPlans},
	}
	documentAccess = access{
		read:  []domain.Permission{domain.PermPatientFilesFull, domain.PermPatientFilesBasic},
		write: []domain.Permission{domain.PermDocumentManagement, domain.PermPatientManagement},
	}
	phoneLogAccess = access{
		write: []domain.Permission{domain.PermPhoneLogs},
	}

	chartPermissions = []domain.Permission{
		domain.PermPatientFilesFull, domain.PermPatientFilesBasic, domain.PermPatientManagement,
	}
	officePermissions = []domain.Permission{
		domain.PermCalendarManagement, domain.PermAppointmentManagement,
		domain.PermPatientAppointments, domain.PermFinanceView,
	}
	reportPermissions = []domain.Permission{
		domain.PermReportsAll, domain.PermBasicReports, domain.PermClinicalReports,
		domain.PermTechnicalReports, domain.PermFinanceView,
	}
)

type RouterConfig struct {
	Config   *config.Config
	Services *service.Services
	Auth     *service.AuthService
	JWT      *auth.JWTManager
	Metrics  *metrics.Collector
	Log      *zap.Logger
	// Counts reports record counts per resource for the health endpoint.
	Counts func() map[string]int
	Today  func() domain.Date
}

// NewRouter builds the gin engine with the full middleware chain and every
// /api/v1 route.
func NewRouter(rc RouterConfig) *gin.Engine {
	if !rc.Config.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if rc.Today == nil {
		rc.Today = func() domain.Date { return domain.DateOf(time.Now()) }
	}

	r := gin.New()
	r.Use(
		RequestID(),
		Recovery(rc.Log),
		AccessLog(rc.Log),
		Metrics(rc.Metrics),
		Tracing(rc.Config.Tracing.ServiceName),
		CORS(rc.Config.CORS),
	)

	r.GET("/healthz", healthz(rc.Config.App, rc.Counts))
	r.GET("/metrics", gin.WrapH(rc.Metrics.Handler()))

	api := r.Group("/api/v1", RateLimit(rc.Config.RateLimit))
	authn := Authenticate(rc.JWT)

	NewAuthHandler(rc.Auth).register(api, authn, LoginRateLimit(rc.Config.RateLimit))

	protected := api.Group("", authn)
	NewNotificationHandler(rc.Services.Notifications).register(protected)
	NewInventoryHandler(rc.Services.Inventory).register(protected)
	NewOfficeHandler(rc.Services.Office, rc.Today).register(protected)
	NewClinicalHandler(rc.Services.Clinical).register(protected)
	NewFinanceHandler(rc.Services.Finance).register(protected)
	NewReportHandler(rc.Services.Reports).register(protected)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})
	return r
}

func healthz(app config.AppConfig, counts func() map[string]int) gin.HandlerFunc {
	started := time.Now()
	return func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": app.Name,
			"version": app.Version,
			"uptime":  time.Since(started).Round(time.Second).String(),
		}
		if counts != nil {
			body["records"] = counts()
		}
		c.JSON(http.StatusOK, body)
	}
}
