// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"learning-platform-service/internal/app/service"
	"learning-platform-service/internal/domain"
	"learning-platform-service/internal/transport/httpserver/dto"
	"learning-platform-service/internal/transport/httpserver/handler"
	"learning-platform-service/internal/transport/httpserver/middleware"
	"learning-platform-service/internal/validator"
	"learning-platform-service/web"
)

// AdminRole is the JWT role allowed to call admin endpoints.
const AdminRole = "admin"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name      string
	Port      int
	BodyLimit int
	Debug     bool
}

// Services are the application services the server exposes.
type Services struct {
	Content       *service.ContentService
	Catalog       *service.CatalogService
	Subscriptions *service.SubscriptionService
	Donations     *service.DonationService

	// Importer is nil when the catalog is served straight from fixtures.
	Importer handler.CatalogImportRunner
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	auth domain.AuthProvider,
	ready middleware.ReadyFunc,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	engine.Reload(cfg.Debug)

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(ready))

	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())
	app.Use(middleware.Auth(auth, logger))

	contentHandler := handler.NewContentHandler(svcs.Content, v, logger)
	catalogHandler := handler.NewCatalogHandler(svcs.Catalog, v, logger)
	subscriptionHandler := handler.NewSubscriptionHandler(svcs.Subscriptions, v, logger)
	donationHandler := handler.NewDonationHandler(svcs.Donations, v, logger)
	adminHandler := handler.NewAdminHandler(svcs.Importer, logger)
	pageHandler := handler.NewPageHandler(svcs.Content, svcs.Catalog, logger)

	registerRoutes(app, routes{
		content:       contentHandler,
		catalog:       catalogHandler,
		subscriptions: subscriptionHandler,
		donations:     donationHandler,
		admin:         adminHandler,
		pages:         pageHandler,
	})

	return &Server{
		App:    app,
		Logger: logger,
	}
}

type routes struct {
	content       *handler.ContentHandler
	catalog       *handler.CatalogHandler
	subscriptions *handler.SubscriptionHandler
	donations     *handler.DonationHandler
	admin         *handler.AdminHandler
	pages         *handler.PageHandler
}

// registerRoutes sets up the HTML pages and the JSON API.
func registerRoutes(app *fiber.App, r routes) {
	// Health checks are handled by middleware (/livez, /readyz)

	v1 := app.Group("/api/v1")

	v1.Get("/home", r.catalog.Home)

	courses := v1.Group("/courses")
	courses.Get("/", r.catalog.ListCourses)
	courses.Get("/beginner", r.catalog.BeginnerCourses)
	courses.Get("/:id", r.catalog.GetCourse)

	v1.Get("/contents/:id", r.content.Watch)

	subscriptions := v1.Group("/subscriptions")
	subscriptions.Get("/plans", r.subscriptions.Plans)
	subscriptions.Post("/", r.subscriptions.Subscribe)

	donations := v1.Group("/donations")
	donations.Get("/presets", r.donations.Presets)
	donations.Post("/", r.donations.Donate)

	admin := v1.Group("/admin", middleware.RequireRole(AdminRole))
	admin.Post("/catalog/sync", r.admin.SyncCatalog)

	v1.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	app.Get("/", r.pages.Home)
	app.Get("/courses", r.pages.Courses)
	app.Get("/browse", r.pages.Courses)
	app.Get("/courses/:courseId", r.pages.Course)
	app.Get("/watch/:contentId", r.pages.Watch)

	app.Use(r.pages.NotFound)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
