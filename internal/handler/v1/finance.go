package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type FinanceHandler struct {
	svc *service.FinanceService
}

func NewFinanceHandler(svc *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// Summary handles GET /finance/summary?from=&to=. Both bounds are optional
// and inclusive.
func (h *FinanceHandler) Summary(c *gin.Context) {
	r, ok := dateRangeOf(c)
	if !ok {
		return
	}
	respondOK(c, h.svc.Summary(c.Request.Context(), r))
}

func (h *FinanceHandler) OverdueInvoices(c *gin.Context) {
	respondOK(c, h.svc.OverdueInvoices(c.Request.Context()))
}

func (h *FinanceHandler) BudgetUtilization(c *gin.Context) {
	usage, err := h.svc.BudgetUtilization(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, usage)
}

// Sweep marks past-due sent invoices overdue and returns the ones it moved.
func (h *FinanceHandler) Sweep(c *gin.Context) {
	moved := h.svc.SweepOverdueInvoices(c.Request.Context(), actorFrom(c))
	respondOK(c, orEmpty(moved))
}

func (h *FinanceHandler) register(api *gin.RouterGroup) {
	registerResource(api, h.svc.Payments, paymentAccess)
	registerResource(api, h.svc.Invoices, paymentAccess)
	budgets := registerResource(api, h.svc.Budgets, financeAccess)
	budgets.GET("/:id/utilization", RequirePermission(financeAccess.read...), h.BudgetUtilization)

	g := api.Group("/finance")
	g.GET("/summary", RequirePermission(financeAccess.read...), h.Summary)
	g.GET("/overdue-invoices", RequirePermission(financeAccess.read...), h.OverdueInvoices)
	g.POST("/sweep", RequirePermission(financeAccess.write...), h.Sweep)
}
