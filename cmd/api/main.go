package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuspool/internal/config"
	"campuspool/internal/handlers"
	"campuspool/internal/repository"
	"campuspool/internal/service"
	"campuspool/shared/jwt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	var logger *zap.Logger
	var err error
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}

	sessions := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
	})
	defer sessions.Close()

	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	users := repository.NewUserRepository(db)
	rides := repository.NewRideRepository(db)
	requests := repository.NewRideRequestRepository(db)
	ratings := repository.NewRatingRepository(db)
	chats := repository.NewChatRepository(db)
	safety := repository.NewSafetyRepository(db)
	moderation := repository.NewModerationRepository(db)

	trust := service.NewTrustCalculator(cfg.Trust)
	authSvc := service.NewAuthService(users, jwtService, sessions, cfg.AllowedEmailDomain)
	userSvc := service.NewUserService(users, rides, requests, ratings, trust, cfg.Trust.StreakLookback)
	rideSvc := service.NewRideService(rides, requests, users, ratings, moderation, trust, cfg.Rides)
	requestSvc := service.NewRequestService(requests, rides, users, safety, rideSvc, cfg.Rides)
	ratingSvc := service.NewRatingService(ratings, requestSvc)
	chatSvc := service.NewChatService(chats, requestSvc)
	safetySvc := service.NewSafetyService(safety, requestSvc)
	adminSvc := service.NewAdminService(users, rides, requests, safety, moderation, userSvc)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSeed()
	if err := authSvc.SeedAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Logger:   logger,
		Auth:     authSvc,
		Users:    userSvc,
		Rides:    rideSvc,
		Requests: requestSvc,
		Ratings:  ratingSvc,
		Chats:    chatSvc,
		Safety:   safetySvc,
		Admin:    adminSvc,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}
