package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nekogravitycat/car-rental-backend/internal/api"
	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/booking"
	"github.com/nekogravitycat/car-rental-backend/internal/car"
	"github.com/nekogravitycat/car-rental-backend/internal/file"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/storage"
	"github.com/nekogravitycat/car-rental-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction  bool
	ClientURL     string
	DBPool        *pgxpool.Pool
	Redis         *redis.Client
	Storage       storage.Storage
	Logger        *zap.Logger
	SessionSecret string
	SessionTTL    time.Duration
	CarsCacheTTL  time.Duration
	BcryptCost    int
	AdminEmails   []string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	Sessions   *auth.SessionManager
	CarService car.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	tokens := auth.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)
	sessions := auth.NewSessionManager(auth.NewRedisSessionStore(cfg.Redis), tokens, cfg.SessionTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger, user.WithAdminEmails(cfg.AdminEmails))

	// Car Module
	carRepo := car.NewPgxRepository(cfg.DBPool)
	carCache := car.NewRedisCache(cfg.Redis, cfg.CarsCacheTTL)
	carService := car.NewService(carRepo, carCache, cfg.Logger)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, cfg.Storage, cfg.Logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, carService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ClientURL:      cfg.ClientURL,
		Logger:         cfg.Logger,
		Sessions:       sessions,
		UserService:    userService,
		CarService:     carService,
		FileService:    fileService,
		BookingService: bookingService,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		Sessions:   sessions,
		CarService: carService,
	}
}
