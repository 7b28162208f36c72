package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skbr1234/user-authentication-service/internal/config"
	httpx "github.com/skbr1234/user-authentication-service/internal/http"
	"github.com/skbr1234/user-authentication-service/internal/http/handlers"
	"github.com/skbr1234/user-authentication-service/internal/http/middleware"
	"github.com/skbr1234/user-authentication-service/internal/infrastructure/auth"
	"github.com/skbr1234/user-authentication-service/internal/infrastructure/database"
	"github.com/skbr1234/user-authentication-service/internal/infrastructure/notifications"
	"github.com/skbr1234/user-authentication-service/internal/infrastructure/repositories"
	"github.com/skbr1234/user-authentication-service/internal/services"

	"github.com/skbr1234/user-authentication-service/domain"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Initialize infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.ExtendedTTL, cfg.RefreshTTL)
	mailer := notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.BaseURL)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(gdb)
	tokenRepo := repositories.NewTokenRepository(gdb)

	// Initialize services
	tokenConfig := services.TokenConfig{
		VerificationTTL: cfg.VerificationTTL,
		ResetTTL:        cfg.ResetTTL,
		ResendWindow:    cfg.ResendWindow,
	}
	ottSvc := services.NewOneTimeTokenService(tokenRepo, rdb, tokenConfig)
	authSvc := services.NewAuthService(userRepo, passwordSvc, tokenSvc, ottSvc, mailer)

	// Initialize handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, userRepo)
	jwtMW := middleware.AuthMiddleware(tokenSvc)

	r := httpx.BuildRouter(authH, jwtMW)

	// Expired one-time tokens are inert (consumption checks expiry) but the
	// rows still accumulate; reap them periodically.
	go sweepExpiredTokens(context.Background(), tokenRepo, cfg.SweepInterval)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

func sweepExpiredTokens(ctx context.Context, tokenRepo domain.OneTimeTokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reaped, err := tokenRepo.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("TOKEN_SWEEP_FAILED: error=%v", err)
				continue
			}
			if reaped > 0 {
				log.Printf("TOKEN_SWEEP: reaped=%d", reaped)
			}
		}
	}
}
