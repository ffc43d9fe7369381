package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"quickchat/internal/config"
	apihttp "quickchat/internal/http"
	"quickchat/internal/oauth"
	"quickchat/internal/repository"
	"quickchat/internal/service"
	"quickchat/internal/sms"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	otpRepo := repository.NewMemoryOtpRepository()
	contactRepo := repository.NewMemoryContactRepository(repository.SeedContacts())
	chatRepo := repository.NewMemoryChatRepository()
	userRepo := repository.NewMemoryUserRepository(repository.SeedUser())

	sessions := service.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			sessions = service.NewRedisSessionStore(redisClient)
		}
		cancel()
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	tokenServ := service.NewSessionTokenService(cfg.SessionSecret, sessionTTL)

	smsSender := sms.NewLogSender(logger)
	otpServ := service.NewOTPService(logger, otpRepo, smsSender, time.Duration(cfg.OTPTTLMinutes)*time.Minute)
	authServ := service.NewAuthService(logger, otpServ, sessions, sessionTTL)
	chatServ := service.NewChatService(logger, chatRepo, contactRepo, service.NewTimerScheduler(), time.Duration(cfg.AutoReplyDelayMS)*time.Millisecond)
	userServ := service.NewUserService(logger, userRepo)

	providers := oauth.NewRegistry(
		oauth.Credentials{ClientID: cfg.GoogleClientID, ClientSecret: cfg.GoogleClientSecret, CallbackURL: cfg.GoogleCallbackURL},
		oauth.Credentials{ClientID: cfg.FacebookClientID, ClientSecret: cfg.FacebookClientSecret, CallbackURL: cfg.FacebookCallbackURL},
		oauth.Credentials{ClientID: cfg.InstagramClientID, ClientSecret: cfg.InstagramClientSecret, CallbackURL: cfg.InstagramCallbackURL},
	)
	if len(providers.Names()) == 0 {
		logger.Info("no oauth providers configured, phone login only")
	}

	authHandler := apihttp.NewAuthHandler(logger, authServ, otpServ, tokenServ, providers, cfg.LoginFailureURL)
	chatHandler := apihttp.NewChatHandler(logger, contactRepo, chatRepo, chatServ, userServ)
	router := apihttp.NewRouter(logger, authHandler, chatHandler, tokenServ, authServ)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
