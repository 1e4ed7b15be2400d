package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Generate handles GET /reports/:kind?format=json|csv. Expense and financial
// reports take from/to, appointment reports take date.
func (h *ReportHandler) Generate(c *gin.Context) {
	kind, err := service.ParseReportKind(c.Param("kind"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var params service.ReportParams
	if params.Range, err = service.ParseDateRange(c.Query("from"), c.Query("to")); err != nil {
		respondServiceError(c, err)
		return
	}
	if raw := c.Query("date"); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			respondServiceError(c, &domain.ValidationError{Fields: []string{"date must be YYYY-MM-DD"}})
			return
		}
		params.Date = &d
	}

	rep, err := h.svc.Generate(c.Request.Context(), kind, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		respondOK(c, rep)
	case "csv":
		name := fmt.Sprintf("%s-report-%s.csv", kind, rep.GeneratedAt.Format("2006-01-02"))
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := service.WriteCSV(c.Writer, rep); err != nil {
			_ = c.Error(err)
		}
	default:
		respondServiceError(c, &domain.ValidationError{Fields: []string{
			fmt.Sprintf("format %q is not one of json, csv", format),
		}})
	}
}

func (h *ReportHandler) register(api *gin.RouterGroup) {
	api.GET("/reports/:kind", RequirePermission(reportPermissions...), h.Generate)
}
