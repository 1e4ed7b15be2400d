package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type ClinicalHandler struct {
	svc *service.ClinicalService
}

func NewClinicalHandler(svc *service.ClinicalService) *ClinicalHandler {
	return &ClinicalHandler{svc: svc}
}

// Chart returns everything on file for one patient.
func (h *ClinicalHandler) Chart(c *gin.Context) {
	chart, err := h.svc.Chart(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, chart)
}

func (h *ClinicalHandler) FollowUps(c *gin.Context) {
	respondOK(c, orEmpty(h.svc.FollowUps(c.Request.Context())))
}

func (h *ClinicalHandler) register(api *gin.RouterGroup) {
	patients := registerResource(api, h.svc.Patients, patientAccess)
	patients.GET("/:id/chart", RequirePermission(chartPermissions...), h.Chart)

	registerResource(api, h.svc.Sessions, sessionAccess)
	registerResource(api, h.svc.Assessments, assessmentAccess)
	registerResource(api, h.svc.TherapyPlans, therapyPlanAccess)
	registerResource(api, h.svc.Documents, documentAccess)

	phoneLogs := registerResource(api, h.svc.PhoneLogs, phoneLogAccess)
	phoneLogs.GET("/follow-ups", RequirePermission(phoneLogAccess.write...), h.FollowUps)
}
