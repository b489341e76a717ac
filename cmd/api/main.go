package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"soundbridge/internal/config"
	"soundbridge/internal/database"
	"soundbridge/internal/middleware"
	"soundbridge/internal/modules/admin"
	"soundbridge/internal/modules/auth"
	"soundbridge/internal/modules/payout"
	"soundbridge/internal/modules/release"
	"soundbridge/internal/modules/ticket"
	jwtsvc "soundbridge/internal/pkg/jwt"
	"soundbridge/internal/pkg/logger"
	"soundbridge/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("dev")
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload dir not writable")
	}

	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	releaseRepo := repository.NewReleaseRepository(db)
	dspRepo := repository.NewDSPRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	newsRepo := repository.NewNewsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:   cfg.CookieName,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})

	releaseService := release.NewService(releaseRepo, dspRepo)
	releaseHandler := release.NewHandler(releaseService, cfg.UploadDir)

	payoutService := payout.NewService(payoutRepo, settingRepo)
	payoutHandler := payout.NewHandler(payoutService)

	hub := ticket.NewHub()
	ticketService := ticket.NewService(ticketRepo, hub)
	ticketHandler := ticket.NewHandler(ticketService, hub)

	adminService := admin.NewService(
		userRepo,
		appRepo,
		releaseRepo,
		payoutRepo,
		ticketRepo,
		dspRepo,
		settingRepo,
		newsRepo,
	)
	adminHandler := admin.NewHandler(adminService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Static("/static", cfg.UploadDir)

	authn := middleware.NewAuthenticator(j, userRepo, cfg.CookieName)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		authed := v1.Group("/")
		authed.Use(authn.Authenticate())
		{
			authHandler.RegisterAuthenticatedRoutes(authed)

			approved := authed.Group("/")
			approved.Use(middleware.ApprovedActive())
			{
				releaseHandler.RegisterRoutes(approved)
				payoutHandler.RegisterRoutes(approved)
				ticketHandler.RegisterRoutes(approved)
			}

			adminGroup := authed.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup, authed)
		}
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting api")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
