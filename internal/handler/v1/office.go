package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type OfficeHandler struct {
	svc   *service.OfficeService
	today func() domain.Date
}

func NewOfficeHandler(svc *service.OfficeService, today func() domain.Date) *OfficeHandler {
	return &OfficeHandler{svc: svc, today: today}
}

// Agenda handles GET /office/agenda?date=YYYY-MM-DD, defaulting to today.
func (h *OfficeHandler) Agenda(c *gin.Context) {
	date := h.today()
	if raw := c.Query("date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			respondServiceError(c, &domain.ValidationError{Fields: []string{"date must be YYYY-MM-DD"}})
			return
		}
		date = d
	}
	respondOK(c, h.svc.Agenda(c.Request.Context(), date))
}

func (h *OfficeHandler) Search(c *gin.Context) {
	respondOK(c, h.svc.Search(c.Request.Context(), c.Query("q")))
}

func (h *OfficeHandler) register(api *gin.RouterGroup) {
	registerResource(api, h.svc.Expenses, expenseAccess)
	registerResource(api, h.svc.Appointments, appointmentAccess)
	registerResource(api, h.svc.Shifts, calendarAccess)
	registerResource(api, h.svc.Meetings, calendarAccess)

	g := api.Group("/office", RequirePermission(officePermissions...))
	g.GET("/agenda", h.Agenda)
	g.GET("/search", h.Search)
}
