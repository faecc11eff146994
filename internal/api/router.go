package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/todoapp/todo-service/internal/api/handler"
	"github.com/todoapp/todo-service/internal/api/middleware"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/pkg/clock"
	"github.com/todoapp/todo-service/internal/pkg/config"
	"github.com/todoapp/todo-service/pkg/logger"
)

// Deps holds everything the router needs. Registerer and Gatherer default to
// the prometheus globals.
type Deps struct {
	Config   *config.Config
	Log      zerolog.Logger
	Clock    clock.Clock
	Auth     ports.AuthService
	Resolver ports.ActorResolver
	Todos    ports.TodoService

	HealthChecks []handler.DependencyCheck

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Clock)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "todo",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.RequestLogger(d.Log, logger.NewFilter(d.Config.Log.FilterParams)))

	// --- Dependencies ---
	guard := middleware.NewGuard(d.Resolver)
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(guard, d.Auth)
	todoHandler := handler.NewTodoHandler(guard, d.Todos)
	adminHandler := handler.NewAdminHandler(guard, d.Todos)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimiter(d.Config.Auth.LoginRatePerMinute))

	// --- Current user ---
	users := e.Group("/users")
	users.GET("/me", userHandler.Me)
	users.PUT("/me/password", userHandler.ChangePassword)

	// --- Todos (owner scoped) ---
	todos := e.Group("/todos")
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Admin ---
	admin := e.Group("/admin")
	admin.GET("/todos", adminHandler.ListTodos)
	admin.DELETE("/todos/:id", adminHandler.DeleteTodo)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: d.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
