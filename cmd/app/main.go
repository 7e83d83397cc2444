package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/media"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("init logger: %v", err)
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

// run closes everything it opens before returning.
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("database schema is up to date")
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, flights cache and seat guard degrade to no-ops")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.WithError(err).Warn("kafka unavailable, order events will be dropped")
	}

	mediaStore := media.NewStore(cfg.Media)

	flightService := flights.NewFlightService(repository.NewFlightRepository(pool), redisCache, log)
	bookingService := booking.NewBookingService(
		repository.NewOrderRepository(pool),
		log,
		booking.WithSeatGuard(redisCache, cfg.Booking.GuardTTL()),
		booking.WithFlightsInvalidator(redisCache),
		booking.WithProducer(producer, cfg.Kafka.OrdersTopic),
	)
	// entities rendered inside flight listings
	listed := catalog.WithFlightsInvalidator(redisCache, log)

	routerCfg := api.RouterConfig{
		Table:    access.DefaultTable(),
		Tokens:   auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Pages:    query.PageConfig{DefaultSize: cfg.Pagination.PageSize, MaxSize: cfg.Pagination.MaxPageSize},
		Log:      log,
		Swagger:  cfg.HTTP.Swagger,
		MediaDir: mediaStore.Dir(),
		MediaURL: mediaStore.URLPrefix(),
		Health: func(c *gin.Context) error {
			return pool.Ping(c.Request.Context())
		},
	}
	if cfg.RateLimit.Enabled {
		routerCfg.Limiter = redisCache.Limiter(cfg.RateLimit.Prefix, cfg.RateLimit.Requests, cfg.RateLimit.WindowDuration())
	}

	router, err := api.NewRouter(routerCfg, api.Services{
		Airports:      catalog.NewService(repository.NewAirportStore(pool), catalog.ValidateAirport, listed),
		Routes:        catalog.NewService(repository.NewRouteStore(pool), catalog.ValidateRoute, listed),
		AirplaneTypes: catalog.NewService(repository.NewAirplaneTypeStore(pool), catalog.ValidateAirplaneType),
		Airlines:      catalog.NewAirlineService(repository.NewAirlineStore(pool), mediaStore, log, listed),
		Airplanes:     catalog.NewService(repository.NewAirplaneStore(pool), catalog.ValidateAirplane, listed),
		Crews:         catalog.NewService(repository.NewCrewStore(pool), catalog.ValidateCrew, listed),
		TicketClasses: catalog.NewService(repository.NewTicketClassStore(pool), catalog.ValidateTicketClass),
		Flights:       flightService,
		Orders:        bookingService,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	if err := bootstrap.Run(ctx, cfg, router, log); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
