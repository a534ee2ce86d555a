package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zeecare/hospital-system/internal/api/handler"
	"github.com/zeecare/hospital-system/internal/api/middleware"
	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/service"
	"github.com/zeecare/hospital-system/internal/core/token"
	"github.com/zeecare/hospital-system/internal/infrastructure/config"
	mongodb "github.com/zeecare/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/zeecare/hospital-system/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. rdb may be
// nil; the token denylist and the Redis readiness check are then disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("hospital"))

	// --- Dependencies ---
	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.CookieTTL(), cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	userRepo := mongodb.NewUserRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	var denylist *redisdb.Denylist
	if rdb != nil {
		denylist = redisdb.NewDenylist(rdb)
	}

	userService := service.NewUserService(userRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, log)
	messageService := service.NewMessageService(messageRepo, log)

	var guard *middleware.Guard
	var userHandler *handler.UserHandler
	if denylist != nil {
		guard = middleware.NewGuard(issuer, userRepo, denylist)
		userHandler = handler.NewUserHandler(userService, issuer, denylist)
	} else {
		guard = middleware.NewGuard(issuer, userRepo, nil)
		userHandler = handler.NewUserHandler(userService, issuer, nil)
	}
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	messageHandler := handler.NewMessageHandler(messageService)

	patientOnly := guard.Require(domain.RolePatient)
	adminOnly := guard.Require(domain.RoleAdmin)

	// --- User routes ---
	user := e.Group("/api/v1/user")
	user.POST("/login", userHandler.Login)
	user.POST("/patient/register", userHandler.RegisterPatient)
	user.POST("/admin/addnew", userHandler.AddAdmin, adminOnly)
	user.POST("/doctor/addnew", userHandler.AddDoctor, adminOnly)
	user.GET("/doctors", userHandler.Doctors)
	user.GET("/patient/me", userHandler.Me, patientOnly)
	user.GET("/admin/me", userHandler.Me, adminOnly)
	user.GET("/patient/logout", userHandler.LogoutPatient, patientOnly)
	user.GET("/admin/logout", userHandler.LogoutAdmin, adminOnly)

	// --- Appointment routes ---
	appointment := e.Group("/api/v1/appointment")
	appointment.POST("/post", appointmentHandler.Book, patientOnly)
	appointment.GET("/getall", appointmentHandler.List, adminOnly)
	appointment.PUT("/update/:id", appointmentHandler.Update, adminOnly)
	appointment.DELETE("/delete/:id", appointmentHandler.Delete, adminOnly)

	// --- Message routes ---
	message := e.Group("/api/v1/message")
	message.POST("/send", messageHandler.Send)
	message.GET("/getall", messageHandler.List, adminOnly)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
