package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service booking.BookingUseCase
	pages   query.PageConfig
}

func NewOrderHandler(service booking.BookingUseCase, pages query.PageConfig) *OrderHandler {
	return &OrderHandler{service: service, pages: pages}
}

func (h *OrderHandler) Resource() access.Resource {
	return access.Orders
}

func (h *OrderHandler) Handlers() map[access.Operation]gin.HandlerFunc {
	return map[access.Operation]gin.HandlerFunc{
		access.List:     h.list,
		access.Retrieve: h.get,
		access.Create:   h.create,
	}
}

// identity is set by the gate before any order handler runs.
func identity(c *gin.Context) (access.Identity, bool) {
	id := auth.IdentityFrom(c)
	if id == nil {
		respond(c, domain.ErrUnauthorized)
		return access.Identity{}, false
	}
	return *id, true
}

func (h *OrderHandler) list(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	page, ok := pageFrom(c, h.pages)
	if !ok {
		return
	}
	result, err := h.service.ListOrders(c.Request.Context(), id.UserID, page)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), id, orderID)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// create books every ticket of the order or none of them.
func (h *OrderHandler) create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, err)
		return
	}
	order, err := h.service.CreateOrder(c.Request.Context(), id.UserID, req.tickets())
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
