package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Domenick1991/airport/internal/docs"
)

const BasePath = "/api/airport"

type route struct {
	method string
	path   string
}

var operationRoutes = map[access.Operation]route{
	access.List:        {http.MethodGet, ""},
	access.Retrieve:    {http.MethodGet, "/:id"},
	access.Create:      {http.MethodPost, ""},
	access.Update:      {http.MethodPut, "/:id"},
	access.Delete:      {http.MethodDelete, "/:id"},
	access.UploadImage: {http.MethodPost, "/:id/upload-image"},
}

type Services struct {
	Airports      catalog.CatalogUseCase[domain.Airport]
	Routes        catalog.CatalogUseCase[domain.Route]
	AirplaneTypes catalog.CatalogUseCase[domain.AirplaneType]
	Airlines      AirlineUseCase
	Airplanes     catalog.CatalogUseCase[domain.Airplane]
	Crews         catalog.CatalogUseCase[domain.Crew]
	TicketClasses catalog.CatalogUseCase[domain.TicketClass]
	Flights       flights.FlightUseCase
	Orders        booking.BookingUseCase
}

type RouterConfig struct {
	Table    access.Table
	Tokens   *auth.Tokens
	Pages    query.PageConfig
	Limiter  RateLimiter
	Log      logrus.FieldLogger
	Swagger  bool
	MediaDir string
	MediaURL string
	Health   func(*gin.Context) error
}

func NewRouter(cfg RouterConfig, svc Services) (*gin.Engine, error) {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Log), auth.Middleware(cfg.Tokens))
	if cfg.Limiter != nil {
		router.Use(RateLimit(cfg.Limiter, cfg.Log))
	}

	router.GET("/health", func(c *gin.Context) {
		if cfg.Health != nil {
			if err := cfg.Health(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Swagger {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}
	if cfg.MediaDir != "" && cfg.MediaURL != "" {
		router.Static(cfg.MediaURL, cfg.MediaDir)
	}

	handlers := []resourceHandler{
		NewCatalogHandler[domain.Airport, airportRequest](access.Airports, svc.Airports, cfg.Pages),
		NewCatalogHandler[domain.Route, routeRequest](access.Routes, svc.Routes, cfg.Pages),
		NewCatalogHandler[domain.AirplaneType, airplaneTypeRequest](access.AirplaneTypes, svc.AirplaneTypes, cfg.Pages),
		NewAirlineHandler(svc.Airlines, cfg.Pages),
		NewCatalogHandler[domain.Airplane, airplaneRequest](access.Airplanes, svc.Airplanes, cfg.Pages).WithFilter(airplaneFilter),
		NewCatalogHandler[domain.Crew, crewRequest](access.Crews, svc.Crews, cfg.Pages),
		NewCatalogHandler[domain.TicketClass, ticketClassRequest](access.TicketClasses, svc.TicketClasses, cfg.Pages),
		NewFlightHandler(svc.Flights, cfg.Pages),
		NewOrderHandler(svc.Orders, cfg.Pages),
	}

	gate := NewGate(cfg.Table)
	api := router.Group(BasePath)
	for _, h := range handlers {
		if err := register(api, gate, cfg.Table, h); err != nil {
			return nil, err
		}
	}
	return router, nil
}

// register mounts exactly the operations the capability table grants for
// the resource, each behind the gate.
func register(group *gin.RouterGroup, gate *Gate, table access.Table, h resourceHandler) error {
	resource := h.Resource()
	available := h.Handlers()
	sub := group.Group("/" + string(resource))

	for _, op := range table.Operations(resource) {
		handler, ok := available[op]
		if !ok {
			return fmt.Errorf("%s: no handler for operation %s", resource, op)
		}
		rt, ok := operationRoutes[op]
		if !ok {
			return fmt.Errorf("%s: no route for operation %s", resource, op)
		}
		sub.Handle(rt.method, rt.path, gate.Require(resource, op), handler)
	}
	return nil
}

func airplaneFilter(values url.Values) (query.Where, error) {
	return query.ParseAirplaneFilter(values).Where(), nil
}
