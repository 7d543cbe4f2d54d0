package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	airlinesHttp "route-analytics-service/internal/airlines/adapters/http/fiber"
	airlinesRepoPg "route-analytics-service/internal/airlines/adapters/postgres"
	airlinesRepoSQL "route-analytics-service/internal/airlines/adapters/sqlstore"
	airlineports "route-analytics-service/internal/airlines/core/ports"
	airlinesUsecase "route-analytics-service/internal/airlines/core/usecase"

	filterHttp "route-analytics-service/internal/filter/adapters/http/fiber"
	filterdomain "route-analytics-service/internal/filter/core/domain"
	filterUsecase "route-analytics-service/internal/filter/core/usecase"

	routesHttp "route-analytics-service/internal/routes/adapters/http/fiber"
	routesRepoPg "route-analytics-service/internal/routes/adapters/postgres"
	routesRepoSQL "route-analytics-service/internal/routes/adapters/sqlstore"
	routedomain "route-analytics-service/internal/routes/core/domain"
	routeports "route-analytics-service/internal/routes/core/ports"
	routesUsecase "route-analytics-service/internal/routes/core/usecase"

	settingsHttp "route-analytics-service/internal/settings/adapters/http/fiber"
	settingsRepoPg "route-analytics-service/internal/settings/adapters/postgres"
	settingsRepoSQL "route-analytics-service/internal/settings/adapters/sqlstore"
	settingports "route-analytics-service/internal/settings/core/ports"
	settingsUsecase "route-analytics-service/internal/settings/core/usecase"

	"route-analytics-service/internal/config"
	"route-analytics-service/internal/platform/cache"
	"route-analytics-service/internal/platform/database"
	"route-analytics-service/internal/platform/events"

	_ "route-analytics-service/docs"
)

// routeStore covers both route ports; every backend implements them on one
// repository type.
type routeStore interface {
	routeports.RouteRepositoryPort
	routeports.RouteReaderPort
}

type repositories struct {
	routes   routeStore
	settings settingports.SettingRepositoryPort
	airlines airlineports.AirlineRepositoryPort
}

func newRepositories(db *sql.DB, backend database.Backend) (*repositories, error) {
	sqlDB := database.NewSQLDB(db)

	if backend == database.Postgres {
		return &repositories{
			routes:   routesRepoPg.NewRouteRepository(sqlDB),
			settings: settingsRepoPg.NewSettingRepository(sqlDB),
			airlines: airlinesRepoPg.NewAirlineRepository(sqlDB),
		}, nil
	}

	routes, err := routesRepoSQL.NewRouteRepository(sqlDB, backend)
	if err != nil {
		return nil, err
	}
	settings, err := settingsRepoSQL.NewSettingRepository(sqlDB, backend)
	if err != nil {
		return nil, err
	}
	airlines, err := airlinesRepoSQL.NewAirlineRepository(sqlDB, backend)
	if err != nil {
		return nil, err
	}
	return &repositories{routes: routes, settings: settings, airlines: airlines}, nil
}

// openDatabase migrates (when enabled) and opens the configured database.
func openDatabase(ctx context.Context, c *config.Config) (*sql.DB, error) {
	if err := c.RequireDSN(); err != nil {
		return nil, err
	}

	if c.DB.AutoMigrate {
		res, err := database.Migrate(ctx, c.DB.Backend, c.DB.DSN, database.Up)
		if err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if res.Changed {
			log.Infow("schema migrated", "backend", c.DB.Backend, "from", res.From, "to", res.To)
		}
	}

	return database.Open(ctx, c.DB.Backend, c.DB.DSN, c.DB.Options)
}

// newServer wires repositories, use cases and handlers into a fiber app.
// Route ingestion invalidates both result caches through bus.
func newServer(c *config.Config, db *sql.DB, bus *events.Bus) (*fiber.App, error) {
	repos, err := newRepositories(db, c.DB.Backend)
	if err != nil {
		return nil, err
	}

	// Caches
	filterCache := cache.New[filterdomain.Result](c.Cache.Capacity, c.Cache.TTL)
	yearCache := cache.New[[]routedomain.Route](c.Cache.Capacity, c.Cache.TTL)

	// Usecases
	storeRouteUC := routesUsecase.NewStoreRouteUseCase(repos.routes, bus)
	findRoutesUC := routesUsecase.NewFindRoutesUseCase(repos.routes, yearCache)
	filterRoutesUC := filterUsecase.NewFilterRoutesUseCase(repos.routes, filterCache)
	settingsUC := settingsUsecase.NewSettingsUseCase(repos.settings)
	airlinesUC := airlinesUsecase.NewAirlinesUseCase(repos.airlines)
	if c.ValidateAirlines {
		storeRouteUC.WithAirlineCheck(airlinesUC)
	}

	bus.OnInvalidate(func(scope string) {
		if scope != events.ScopeRoutes {
			return
		}
		filterRoutesUC.InvalidateCache()
		findRoutesUC.InvalidateCache()
		log.Debugw("route caches cleared")
	})

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{AppName: "route-analytics-service"})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	routesHttp.NewRouteHandler(storeRouteUC, findRoutesUC).Register(app)
	filterHttp.NewFilterHandler(filterRoutesUC).Register(app)
	settingsHttp.NewSettingHandler(settingsUC).Register(app)
	airlinesHttp.NewAirlineHandler(airlinesUC).Register(app)

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return ctx.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	return app, nil
}

// newBus connects to NATS when a URL is configured.
func newBus(c *config.Config) (*events.Bus, error) {
	if c.NATS.URL == "" {
		return events.NewLocalBus(), nil
	}
	return events.ConnectBus(c.NATS.URL, c.NATS.Subject)
}
