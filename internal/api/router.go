package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/car-rental-backend/internal/booking/http"
	"github.com/nekogravitycat/car-rental-backend/internal/car"
	carHttp "github.com/nekogravitycat/car-rental-backend/internal/car/http"
	"github.com/nekogravitycat/car-rental-backend/internal/file"
	fileHttp "github.com/nekogravitycat/car-rental-backend/internal/file/http"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/logger"
	"github.com/nekogravitycat/car-rental-backend/internal/user"
	userHttp "github.com/nekogravitycat/car-rental-backend/internal/user/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction   bool
	ClientURL      string
	Logger         *zap.Logger
	Sessions       *auth.SessionManager
	UserService    user.Service
	CarService     car.Service
	FileService    file.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Session) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: structured access log.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.GinLogger(log), gin.Recovery())

	// The web client is served from its own origin and sends the session cookie.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.ClientURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware: rejects requests without a resolved session.
	authMiddleware := auth.AuthRequired()
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	cookie := auth.CookieOptions{Production: cfg.IsProduction}

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.Sessions, cookie)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	carHandler := carHttp.NewHandler(cfg.CarService, fileHandler)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	fileHttp.RegisterRoutes(r, fileHandler)

	// Every API route sees the session principal, if any.
	apiGroup := r.Group("/api")
	apiGroup.Use(auth.ResolveSession(cfg.Sessions))
	{
		userHttp.RegisterRoutes(apiGroup, userHandler, authMiddleware)
		carHttp.RegisterRoutes(apiGroup, carHandler, authMiddleware, sysAdminMiddleware)
		bookingHttp.RegisterRoutes(apiGroup, bookingHandler)
	}

	return r
}
