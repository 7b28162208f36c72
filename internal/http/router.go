package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/skbr1234/user-authentication-service/internal/http/handlers"
)

func BuildRouter(ah *handlers.AuthHandlers, jwtmw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/resend-verification", ah.ResendVerification)

	v := r.Group("/").Use(jwtmw)
	v.GET("/auth/me", ah.Me)

	return r
}
