package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	pages   query.PageConfig
}

func NewFlightHandler(service flights.FlightUseCase, pages query.PageConfig) *FlightHandler {
	return &FlightHandler{service: service, pages: pages}
}

func (h *FlightHandler) Resource() access.Resource {
	return access.Flights
}

func (h *FlightHandler) Handlers() map[access.Operation]gin.HandlerFunc {
	return map[access.Operation]gin.HandlerFunc{
		access.List:     h.list,
		access.Retrieve: h.get,
		access.Create:   h.create,
		access.Update:   h.update,
		access.Delete:   h.delete,
	}
}

// list filters by departure_date (YYYY-MM-DD, UTC), airplane and route.
func (h *FlightHandler) list(c *gin.Context) {
	filter, err := query.ParseFlightFilter(c.Request.URL.Query())
	if err != nil {
		respond(c, err)
		return
	}
	page, ok := pageFrom(c, h.pages)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, err)
		return
	}
	flight, err := h.service.Create(c.Request.Context(), req.model())
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, err)
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, req.model())
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
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
