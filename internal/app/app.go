package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/validation"
	pkgerrors "inventory/pkg/errors"
	"inventory/pkg/logger"
	"inventory/pkg/metrics"
	"inventory/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 2 * time.Second

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Products  repositories.ProductRepository
	Suppliers repositories.SupplierRepository
	// Events may be nil; writes then publish nothing.
	Events services.EventPublisher
	// Ping reports storage health for /health.
	Ping     func(ctx context.Context) error
	Registry *prometheus.Registry
	Logger   *logger.Logger
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// App owns the HTTP server and the resources it was built on.
type App struct {
	fiber *fiber.App
	cfg   *config.Config
	log   *logger.Logger
	db    *database.Client
	mq    *rabbitmq.Client
}

// New wires storage, events and handlers according to cfg.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{cfg: cfg, log: log}

	deps := Dependencies{
		Registry:  prometheus.NewRegistry(),
		Logger:    log,
		AccessLog: true,
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := a.openStorage(ctx, &deps); err != nil {
		return nil, err
	}

	if cfg.App.SeedDemoData {
		n, err := services.SeedProducts(ctx, deps.Products)
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("seeding demo data: %w", err)
		}
		if n > 0 {
			log.Info(log.WithField(ctx, "products", n), "seeded demo products")
		}
	}

	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.mq = mq
		deps.Events = mq
		log.Info(log.WithField(ctx, "queue", mq.Queue()), "inventory events enabled")
	}

	a.fiber = NewHTTP(deps)
	return a, nil
}

func (a *App) openStorage(ctx context.Context, deps *Dependencies) error {
	if a.cfg.Database.Driver == config.DriverMemory {
		store := repositories.NewMemoryStore()
		deps.Products = repositories.NewMemoryProductRepository(store)
		deps.Suppliers = repositories.NewMemorySupplierRepository(store)
		deps.Ping = func(context.Context) error { return store.Ping() }
		return nil
	}

	db, err := database.Open(ctx, a.cfg.Database, a.log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if a.cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, a.log); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	a.db = db
	deps.Products = repositories.NewGORMProductRepository(db.DB())
	deps.Suppliers = repositories.NewGORMSupplierRepository(db.DB())
	deps.Ping = db.Ping
	return nil
}

// NewHTTP builds the Fiber app serving the inventory routes plus /health
// and /metrics.
func NewHTTP(deps Dependencies) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	v := validation.NewValidation()
	productService := services.NewProductService(deps.Products, v, deps.Events, log)
	supplierService := services.NewSupplierService(deps.Suppliers, v, deps.Events, log)

	productHandler := handlers.NewProductHandler(productService, log)
	supplierHandler := handlers.NewSupplierHandler(supplierService, log)

	app := fiber.New(fiber.Config{
		AppName:               "inventory",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID(log))
	if deps.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(middleware.Metrics(metrics.NewHTTPMetrics(registry)))

	productHandler.RegisterRoutes(app)
	supplierHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		events := "disabled"
		if deps.Events != nil {
			events = "enabled"
		}

		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				log.Error(c.UserContext(), "storage health check failed", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unhealthy",
					"time":   time.Now().Format(time.RFC3339),
					"events": events,
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events,
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return app
}

// errorHandler renders unmatched routes and recovered panics as JSON.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		log.Error(log.WithFields(c.UserContext(), pkgerrors.Dump(err).Fields()), "unhandled error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}

// Fiber exposes the HTTP app, mainly for tests.
func (a *App) Fiber() *fiber.App {
	return a.fiber
}

// Listen serves HTTP on the configured port until Shutdown.
func (a *App) Listen() error {
	a.log.Info(a.log.WithFields(context.Background(), map[string]any{
		"port":   a.cfg.App.Port,
		"driver": a.cfg.Database.Driver,
	}), "starting server")
	return a.fiber.Listen(a.cfg.App.Port)
}

// Shutdown stops the server and releases storage and broker connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeResources() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
		a.db = nil
	}
	return errors.Join(errs...)
}
