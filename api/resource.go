package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// resourceHandler exposes the gin handlers of one API resource keyed by the
// operation the capability table knows them as.
type resourceHandler interface {
	Resource() access.Resource
	Handlers() map[access.Operation]gin.HandlerFunc
}

type modelRequest[T, R any] interface {
	*R
	model() *T
}

// CatalogHandler serves list/retrieve/create/update/delete for a reference
// entity. R is the request body bound and validated on writes.
type CatalogHandler[T, R any, PR modelRequest[T, R]] struct {
	resource access.Resource
	service  catalog.CatalogUseCase[T]
	pages    query.PageConfig
	filter   func(url.Values) (query.Where, error)
}

func NewCatalogHandler[T, R any, PR modelRequest[T, R]](resource access.Resource, service catalog.CatalogUseCase[T], pages query.PageConfig) *CatalogHandler[T, R, PR] {
	return &CatalogHandler[T, R, PR]{resource: resource, service: service, pages: pages}
}

// WithFilter installs a list filter built from the query string.
func (h *CatalogHandler[T, R, PR]) WithFilter(filter func(url.Values) (query.Where, error)) *CatalogHandler[T, R, PR] {
	h.filter = filter
	return h
}

func (h *CatalogHandler[T, R, PR]) Resource() access.Resource {
	return h.resource
}

func (h *CatalogHandler[T, R, PR]) Handlers() map[access.Operation]gin.HandlerFunc {
	return map[access.Operation]gin.HandlerFunc{
		access.List:     h.list,
		access.Retrieve: h.get,
		access.Create:   h.create,
		access.Update:   h.update,
		access.Delete:   h.delete,
	}
}

func (h *CatalogHandler[T, R, PR]) list(c *gin.Context) {
	values := c.Request.URL.Query()
	page, err := query.ParsePage(values, h.pages)
	if err != nil {
		respond(c, err)
		return
	}
	var where query.Where
	if h.filter != nil {
		if where, err = h.filter(values); err != nil {
			respond(c, err)
			return
		}
	}

	result, err := h.service.List(c.Request.Context(), where, page)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CatalogHandler[T, R, PR]) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler[T, R, PR]) create(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), PR(&req).model())
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler[T, R, PR]) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, err)
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, PR(&req).model())
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler[T, R, PR]) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respond(c, domain.NewValidationError("id", "invalid id"))
		return 0, false
	}
	return id, true
}

func pageFrom(c *gin.Context, cfg query.PageConfig) (query.Page, bool) {
	page, err := query.ParsePage(c.Request.URL.Query(), cfg)
	if err != nil {
		respond(c, err)
		return query.Page{}, false
	}
	return page, true
}
