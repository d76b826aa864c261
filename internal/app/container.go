package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"lendit/internal/api"
	"lendit/internal/booking"
	"lendit/internal/item"
	"lendit/internal/itemrequest"
	"lendit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	DBPool        *pgxpool.Pool
	Logger        zerolog.Logger
	BookingPolicy booking.Policy
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, cfg.Logger)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, cfg.Logger)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, itemService, userService, cfg.BookingPolicy, cfg.Logger)

	// Item request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, itemService, userService, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}
