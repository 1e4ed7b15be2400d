package v1

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

// access lists the permissions guarding reads and writes of one resource.
// Any single permission from the list is enough.
type access struct {
	read  []domain.Permission
	write []domain.Permission
}

// resourceHandler serves the uniform CRUD routes of one entity.
type resourceHandler[T store.Entity, C domain.Input[T], U domain.Patch[T]] struct {
	svc *service.ResourceService[T, C, U]
}

// registerResource mounts list/get/create/update/delete under g/path.
func registerResource[T store.Entity, C domain.Input[T], U domain.Patch[T]](
	g *gin.RouterGroup, svc *service.ResourceService[T, C, U], acc access,
) *gin.RouterGroup {
	h := &resourceHandler[T, C, U]{svc: svc}
	rg := g.Group("/" + svc.Resource())

	read := RequirePermission(slices.Concat(acc.read, acc.write)...)
	write := RequirePermission(acc.write...)

	rg.GET("", read, h.list)
	rg.GET("/:id", read, h.get)
	rg.POST("", write, h.create)
	rg.PUT("/:id", write, h.update)
	rg.PATCH("/:id", write, h.update)
	rg.DELETE("/:id", write, h.delete)
	return rg
}

// list answers GET /resource, applying any named filters from the query
// string, e.g. ?patientId=pat_001.
func (h *resourceHandler[T, C, U]) list(c *gin.Context) {
	recs, err := h.svc.List(c.Request.Context(), queryOf(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, orEmpty(recs))
}

func (h *resourceHandler[T, C, U]) get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *resourceHandler[T, C, U]) create(c *gin.Context) {
	var in C
	if !bindJSON(c, &in) {
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, rec)
}

func (h *resourceHandler[T, C, U]) update(c *gin.Context) {
	var patch U
	if !bindJSON(c, &patch) {
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), actorFrom(c), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, rec)
}

func (h *resourceHandler[T, C, U]) delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.svc.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Success: true, ID: id})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
