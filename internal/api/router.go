package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/olufemi424/cpa-automation/docs"
	"github.com/olufemi424/cpa-automation/internal/api/handler"
	"github.com/olufemi424/cpa-automation/internal/api/middleware"
	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/service"
	"github.com/olufemi424/cpa-automation/internal/infrastructure/config"
	mongorepo "github.com/olufemi424/cpa-automation/internal/infrastructure/db/mongo"
	redisinfra "github.com/olufemi424/cpa-automation/internal/infrastructure/db/redis"
	"github.com/olufemi424/cpa-automation/internal/infrastructure/storage"
	"github.com/olufemi424/cpa-automation/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cpa"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	clientRepo := mongorepo.NewClientRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	documentRepo := mongorepo.NewDocumentRepository(db)
	messageRepo := mongorepo.NewMessageRepository(db)

	// --- Collaborators ---
	fileStore := storage.NewLocalStore(cfg.UploadDir)
	classifier := service.NewFilenameClassifier()
	limiter := redisinfra.NewRateLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	// --- Services ---
	log := logger.Get()
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	clientService := service.NewClientService(clientRepo, userRepo, documentRepo, taskRepo, log)
	taskService := service.NewTaskService(taskRepo, clientRepo, userRepo, log)
	documentService := service.NewDocumentService(documentRepo, clientRepo, fileStore, classifier, log)
	messageService := service.NewMessageService(messageRepo, clientRepo, log)
	userService := service.NewUserService(userRepo, clientRepo, log)
	analyticsService := service.NewAnalyticsService(clientRepo, taskRepo, messageRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	taskHandler := handler.NewTaskHandler(taskService)
	documentHandler := handler.NewDocumentHandler(documentService)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(userService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authMW := middleware.Auth(cfg.JWTSecret)
	rateMW := middleware.RateLimit(limiter)

	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleCPA)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes (no token, rate-limited by IP) ---
	auth := e.Group("/api/auth", rateMW)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Authenticated API ---
	apiGroup := e.Group("/api", authMW, rateMW)

	clients := apiGroup.Group("/clients")
	clients.POST("", clientHandler.Create, staffOnly)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)

	tasks := apiGroup.Group("/tasks")
	tasks.POST("", taskHandler.Create, staffOnly)
	tasks.GET("", taskHandler.List)
	tasks.PUT("/:id", taskHandler.Update, staffOnly)

	documents := apiGroup.Group("/documents")
	documents.POST("", documentHandler.Upload)
	documents.GET("/client/:clientId", documentHandler.ListByClient)
	documents.PUT("/:id/verify", documentHandler.Verify, staffOnly)

	messages := apiGroup.Group("/messages")
	messages.POST("", messageHandler.Send)
	messages.GET("/client/:clientId", messageHandler.ListByClient)

	users := apiGroup.Group("/users", adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	analytics := apiGroup.Group("/analytics", staffOnly)
	analytics.GET("/overview", analyticsHandler.Overview)
	analytics.GET("/pipeline", analyticsHandler.Pipeline)
	analytics.GET("/productivity", analyticsHandler.Productivity)
	analytics.GET("/deadlines", analyticsHandler.Deadlines)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
