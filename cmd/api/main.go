package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"studioreserve/internal/config"
	"studioreserve/internal/database"
	"studioreserve/internal/middleware"
	"studioreserve/internal/modules/auth"
	"studioreserve/internal/modules/booking"
	"studioreserve/internal/modules/catalog"
	"studioreserve/internal/modules/equipment"
	"studioreserve/internal/modules/payment"
	"studioreserve/internal/notification"
	jwtsvc "studioreserve/internal/pkg/jwt"
	"studioreserve/internal/repository"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := repository.NewUserRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	jwt := jwtsvc.New(cfg.JWTSecret, cfg.TokenTTL)
	sms := notification.NewSMSSender(log)
	gateway := payment.FakeGateway{}

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwt, cfg.BcryptCost))
	catalogHandler := catalog.NewHandler(catalog.NewService(studioRepo, roomRepo))
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, roomRepo, userRepo, sms, log),
	)
	equipmentHandler := equipment.NewHandler(equipment.NewService(equipmentRepo, studioRepo))
	paymentHandler := payment.NewHandler(
		payment.NewService(paymentRepo, bookingRepo, userRepo, gateway, sms, log),
		gateway,
	)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	api := router.Group("/api/v1")
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterPublicRoutes(api)
	paymentHandler.RegisterCallbackRoutes(api)

	protected := api.Group("", middleware.Auth(jwt))
	catalogHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterRoutes(protected)
	equipmentHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
