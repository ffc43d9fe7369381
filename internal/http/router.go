package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickchat/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	authH *AuthHandler,
	chatH *ChatHandler,
	tokenServ *service.SessionTokenService,
	authServ *service.AuthService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y carga de sesion.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), SessionMiddleware(tokenServ, authServ))

	auth := r.Group("/auth")
	auth.POST("/phone", authH.RequestPhoneOTP)
	auth.POST("/verify-otp", authH.VerifyPhoneOTP)
	auth.GET("/logout", authH.Logout)
	// Solo los providers con credenciales configuradas quedan ruteados.
	for _, name := range authH.ProviderNames() {
		auth.GET("/"+name, authH.BeginOAuth(name))
		auth.GET("/"+name+"/callback", authH.OAuthCallback(name))
	}

	r.GET("/profile", authH.GetProfile)

	api := r.Group("/api")
	api.Use(jsonContentTypeMiddleware())
	api.GET("/init", chatH.Init)
	api.GET("/contacts", chatH.ListContacts)
	api.GET("/chats", chatH.ListChats)
	api.GET("/chats/:id", chatH.GetChat)
	api.POST("/chats", chatH.CreateChat)
	api.POST("/chats/:id/messages", chatH.PostMessage)
	api.POST("/profile", chatH.UpdateProfile)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
