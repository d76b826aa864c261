package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"lendit/internal/auth"
	"lendit/internal/booking"
	bookingHttp "lendit/internal/booking/http"
	"lendit/internal/item"
	itemHttp "lendit/internal/item/http"
	"lendit/internal/itemrequest"
	requestHttp "lendit/internal/itemrequest/http"
	"lendit/internal/metrics"
	"lendit/internal/user"
	userHttp "lendit/internal/user/http"
)

// Config holds the dependencies needed to assemble the router.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         zerolog.Logger
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, logging, identity) and registers routes for all modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(cfg.Logger), metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", auth.SharerHeader}
	r.Use(cors.New(corsConfig))

	identity := auth.IdentityRequired()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identity)
		bookingHttp.RegisterRoutes(root, bookingHandler, identity)
		requestHttp.RegisterRoutes(root, requestHandler, identity)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}

// requestLogger emits one structured log line per request.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
