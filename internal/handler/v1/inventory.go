package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	respondOK(c, orEmpty(h.svc.LowStock(c.Request.Context())))
}

// Search matches products by name, category or supplier.
func (h *InventoryHandler) Search(c *gin.Context) {
	respondOK(c, orEmpty(h.svc.Search(c.Request.Context(), c.Query("q"))))
}

// RefreshStatus recomputes stored stock statuses and reports how many moved.
func (h *InventoryHandler) RefreshStatus(c *gin.Context) {
	n := h.svc.RefreshStockStatuses(c.Request.Context(), actorFrom(c))
	respondOK(c, gin.H{"changed": n})
}

func (h *InventoryHandler) Sweep(c *gin.Context) {
	moved := h.svc.SweepOverdueInvoices(c.Request.Context(), actorFrom(c))
	respondOK(c, orEmpty(moved))
}

func (h *InventoryHandler) register(api *gin.RouterGroup) {
	registerResource(api, h.svc.Products, inventoryAccess)
	registerResource(api, h.svc.SupplierInvoices, inventoryAccess)

	g := api.Group("/inventory")
	g.GET("/low-stock", RequirePermission(inventoryAccess.read...), h.LowStock)
	g.GET("/search", RequirePermission(inventoryAccess.read...), h.Search)
	g.POST("/refresh-status", RequirePermission(inventoryAccess.write...), h.RefreshStatus)
	g.POST("/sweep", RequirePermission(inventoryAccess.write...), h.Sweep)
}
