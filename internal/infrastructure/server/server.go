package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/roozegaar/calendar/internal/adapters/cache"
	"github.com/roozegaar/calendar/internal/adapters/events"
	httpHandlers "github.com/roozegaar/calendar/internal/adapters/http"
	"github.com/roozegaar/calendar/internal/adapters/repository"
	"github.com/roozegaar/calendar/internal/application/services"
	"github.com/roozegaar/calendar/internal/infrastructure/config"
	"github.com/roozegaar/calendar/internal/infrastructure/database"
	"github.com/roozegaar/calendar/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo       *echo.Echo
	config     *config.Config
	logger     *logger.Logger
	db         *database.DB
	eventCache *cache.Memory
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize adapters
	eventCache := cache.NewMemory(cfg.EventsAPI.CacheTTL)
	eventsClient := events.NewClient(
		cfg.EventsAPI.BaseURL,
		cfg.EventsAPI.Timeout,
		appLogger.WithComponent("events_client"),
		events.WithMaxRetries(cfg.EventsAPI.MaxRetries),
	)
	personalRepo := repository.NewPersonalEventRepository(db.DB)

	// Initialize services
	eventsService := services.NewEventsService(eventsClient, eventCache, appLogger.WithComponent("events_service"))
	calendarService := services.NewCalendarService()
	personalService := services.NewPersonalEventService(personalRepo, appLogger.WithComponent("personal_service"))

	// Initialize handlers
	calendarHandler := httpHandlers.NewCalendarHandler(calendarService, appLogger)
	eventsHandler := httpHandlers.NewEventsHandler(eventsService, appLogger)
	personalHandler := httpHandlers.NewPersonalEventHandler(personalService, appLogger)

	server := &Server{
		echo:       e,
		config:     cfg,
		logger:     appLogger,
		db:         db,
		eventCache: eventCache,
	}

	server.setupMiddleware()
	server.setupRoutes(calendarHandler, eventsHandler, personalHandler)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(calendarHandler *httpHandlers.CalendarHandler, eventsHandler *httpHandlers.EventsHandler, personalHandler *httpHandlers.PersonalEventHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	calendarGroup := v1.Group("/calendar")
	calendarGroup.GET("/month", calendarHandler.MonthGrid)
	calendarGroup.GET("/convert", calendarHandler.Convert)
	calendarGroup.GET("/today", calendarHandler.Today)

	eventsGroup := v1.Group("/events")
	eventsGroup.GET("/monthly", eventsHandler.Monthly)
	eventsGroup.GET("/daily", eventsHandler.Daily)
	eventsGroup.GET("/range", eventsHandler.Range)
	eventsGroup.GET("/current", eventsHandler.CurrentMonth)
	eventsGroup.DELETE("/cache", eventsHandler.ClearCache)

	personalGroup := v1.Group("/personal-events")
	personalGroup.GET("", personalHandler.List)
	personalGroup.POST("", personalHandler.Create)
	personalGroup.GET("/:id", personalHandler.Get)
	personalGroup.PUT("/:id", personalHandler.Update)
	personalGroup.DELETE("/:id", personalHandler.Delete)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	cacheHits := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "events_cache_hits_total",
			Help: "Total number of fresh events-cache lookups",
		},
		func() float64 { return float64(s.eventCache.Hits()) },
	)

	cacheMisses := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "events_cache_misses_total",
			Help: "Total number of events-cache lookups that required a fetch",
		},
		func() float64 { return float64(s.eventCache.Misses()) },
	)

	cacheEntries := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "events_cache_entries",
			Help: "Number of entries currently held by the events cache",
		},
		func() float64 { return float64(s.eventCache.Len()) },
	)

	registry.MustRegister(requestsTotal, requestDuration, cacheHits, cacheMisses, cacheEntries)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	checks["events_cache"] = map[string]interface{}{
		"status":  "ok",
		"entries": s.eventCache.Len(),
		"hits":    s.eventCache.Hits(),
		"misses":  s.eventCache.Misses(),
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if ve, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
