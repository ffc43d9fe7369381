package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quickchat/internal/oauth"
	"quickchat/internal/service"
)

const oauthStateCookieName = "qc_oauth_state"

// AuthHandler mantiene dependencias para endpoints de autenticacion.
type AuthHandler struct {
	logger     *zap.Logger
	authServ   *service.AuthService
	otpServ    *service.OTPService
	tokenServ  *service.SessionTokenService
	providers  *oauth.Registry
	failureURL string
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, otpServ *service.OTPService, tokenServ *service.SessionTokenService, providers *oauth.Registry, failureURL string) *AuthHandler {
	if providers == nil {
		providers = oauth.NewRegistry(oauth.Credentials{}, oauth.Credentials{}, oauth.Credentials{})
	}
	if failureURL == "" {
		failureURL = "/login?error=oauth"
	}
	return &AuthHandler{
		logger:     logger,
		authServ:   authServ,
		otpServ:    otpServ,
		tokenServ:  tokenServ,
		providers:  providers,
		failureURL: failureURL,
	}
}

// ProviderNames expone los providers OAuth habilitados, para el router.
func (h *AuthHandler) ProviderNames() []string {
	return h.providers.Names()
}

// RequestPhoneOTP maneja POST /auth/phone.
func (h *AuthHandler) RequestPhoneOTP(c *gin.Context) {
	var req struct {
		CountryCode string `json:"countryCode"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid phone otp request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	if _, err := h.otpServ.Request(c.Request.Context(), req.CountryCode, req.PhoneNumber); err != nil {
		if errors.Is(err, service.ErrMissingPhone) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Country code and phone number are required"})
			return
		}
		h.logger.Error("request otp failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not request otp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// VerifyPhoneOTP maneja POST /auth/verify-otp.
func (h *AuthHandler) VerifyPhoneOTP(c *gin.Context) {
	var req struct {
		CountryCode string `json:"countryCode"`
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid otp verify request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	identity, sid, err := h.authServ.LoginWithPhone(c.Request.Context(), req.CountryCode, req.PhoneNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPhone):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Country code and phone number are required"})
		case errors.Is(err, service.ErrOTPNotRequested):
			c.JSON(http.StatusBadRequest, gin.H{"message": "OTP not found"})
		case errors.Is(err, service.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
		case errors.Is(err, service.ErrOTPMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		default:
			h.logger.Error("verify otp failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not verify otp"})
		}
		return
	}

	if err := h.setSessionCookie(c, sid); err != nil {
		h.logger.Error("session token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not establish session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully", "user": identity})
}

// BeginOAuth maneja GET /auth/{provider}: redirige al proveedor externo.
func (h *AuthHandler) BeginOAuth(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := h.providers.Get(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "login provider not available"})
			return
		}
		state := uuid.NewString()
		c.SetCookie(oauthStateCookieName, state, 300, "/", "", false, true)
		c.Redirect(http.StatusFound, provider.BeginAuth(state))
	}
}

// OAuthCallback maneja GET /auth/{provider}/callback.
func (h *AuthHandler) OAuthCallback(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := h.providers.Get(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "login provider not available"})
			return
		}

		state, _ := c.Cookie(oauthStateCookieName)
		code := c.Query("code")
		if code == "" || state == "" || c.Query("state") != state {
			h.logger.Warn("oauth callback rejected", zap.String("provider", name))
			c.Redirect(http.StatusFound, h.failureURL)
			return
		}
		c.SetCookie(oauthStateCookieName, "", -1, "/", "", false, true)

		profile, err := provider.HandleCallback(c.Request.Context(), code)
		if err != nil {
			h.logger.Warn("oauth callback failed", zap.Error(err), zap.String("provider", name))
			c.Redirect(http.StatusFound, h.failureURL)
			return
		}

		_, sid, err := h.authServ.LoginWithProvider(c.Request.Context(), name, profile)
		if err != nil {
			h.logger.Error("oauth login failed", zap.Error(err), zap.String("provider", name))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not complete login"})
			return
		}
		if err := h.setSessionCookie(c, sid); err != nil {
			h.logger.Error("session token issue failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not complete login"})
			return
		}

		c.Redirect(http.StatusFound, "/")
	}
}

// Logout maneja GET /auth/logout; es idempotente.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := GetSessionID(c); ok {
		if err := h.authServ.Logout(c.Request.Context(), sid); err != nil {
			h.logger.Warn("logout failed", zap.Error(err))
		}
	}
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile maneja GET /profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": identity})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sid string) error {
	token, err := h.tokenServ.Issue(sid)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookieName, token, int(h.tokenServ.TTL().Seconds()), "/", "", false, true)
	return nil
}
