package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/colegio/school-system/docs"
	"github.com/colegio/school-system/internal/api/handler"
	"github.com/colegio/school-system/internal/api/middleware"
	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/service"
	mongodb "github.com/colegio/school-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/colegio/school-system/internal/infrastructure/db/redis"
	"github.com/colegio/school-system/internal/pkg/config"
	"github.com/colegio/school-system/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The role allow-list of every uniform endpoint is declared here, next to its
// route; only the self-access reads carry an additional check in the handler.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit handler.AuditSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("school"))

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	classroomRepo := mongodb.NewClassroomRepository(db)
	subjectRepo := mongodb.NewSubjectRepository(db)
	throttle := redisinfra.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, codec, throttle, log)
	userService := service.NewUserService(userRepo, cfg.BcryptCost, log)
	classroomService := service.NewClassroomService(classroomRepo, userRepo, subjectRepo, log)
	subjectService := service.NewSubjectService(subjectRepo, log)

	authHandler := handler.NewAuthHandler(authService, audit)
	userHandler := handler.NewUserHandler(userService, audit)
	classroomHandler := handler.NewClassroomHandler(classroomService, audit)
	subjectHandler := handler.NewSubjectHandler(subjectService, audit)

	authGate := middleware.Auth(codec, userRepo)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staffOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleTeacher)

	// --- Auth ---
	e.POST("/user/login", authHandler.Login)

	// --- Users ---
	users := e.Group("/user", authGate)
	users.GET("", userHandler.List, staffOnly)
	users.GET("/:id", userHandler.Get) // self-access handled in the handler
	users.POST("", userHandler.Create, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Classrooms ---
	classrooms := e.Group("/classroom", authGate)
	classrooms.GET("", classroomHandler.List, staffOnly)
	classrooms.GET("/:id", classroomHandler.Get, staffOnly)
	classrooms.GET("/name/:name", classroomHandler.GetByName, staffOnly)
	classrooms.POST("", classroomHandler.Create, adminOnly)
	classrooms.PUT("/:id", classroomHandler.Update, adminOnly)
	classrooms.DELETE("/:id", classroomHandler.Delete, adminOnly)

	// --- Subjects ---
	subjects := e.Group("/subject", authGate)
	subjects.GET("", subjectHandler.List, staffOnly)
	subjects.GET("/:id", subjectHandler.Get) // self-access handled in the handler
	subjects.POST("", subjectHandler.Create, adminOnly)
	subjects.PUT("/:id", subjectHandler.Update, adminOnly)
	subjects.DELETE("/:id", subjectHandler.Delete, adminOnly)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
