package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quickchat/internal/domain"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrOAuthInvalid    = errors.New("oauth profile invalid")
)

// AuthService establece y consulta la identidad de sesion. Los caminos
// phone y OAuth solo comparten el "set session identity" final.
type AuthService struct {
	logger     *zap.Logger
	otp        *OTPService
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthService(logger *zap.Logger, otp *OTPService, sessions SessionStore, sessionTTL time.Duration) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		logger:     logger,
		otp:        otp,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// LoginWithPhone verifica el OTP y, si es valido, sintetiza una identidad
// nueva y la instala como identidad de la sesion.
func (s *AuthService) LoginWithPhone(ctx context.Context, countryCode, phoneNumber, code string) (domain.Identity, string, error) {
	if err := s.otp.Verify(ctx, countryCode, phoneNumber, code); err != nil {
		return domain.Identity{}, "", err
	}

	identity := domain.Identity{
		ID:       uuid.NewString(),
		Provider: domain.ProviderPhone,
		Phone:    strings.TrimSpace(countryCode) + " " + strings.TrimSpace(phoneNumber),
	}
	sid, err := s.establish(identity)
	if err != nil {
		return domain.Identity{}, "", err
	}
	return identity, sid, nil
}

// LoginWithProvider instala como identidad de sesion el perfil devuelto
// por un proveedor OAuth externo.
func (s *AuthService) LoginWithProvider(_ context.Context, provider string, profile domain.OAuthProfile) (domain.Identity, string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" || profile.Subject == "" {
		return domain.Identity{}, "", ErrOAuthInvalid
	}

	identity := domain.Identity{
		ID:       uuid.NewString(),
		Provider: provider,
		Profile:  &profile,
	}
	sid, err := s.establish(identity)
	if err != nil {
		return domain.Identity{}, "", err
	}
	return identity, sid, nil
}

// Logout limpia la sesion incondicionalmente; es un no-op si ya no existe.
func (s *AuthService) Logout(_ context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return nil
	}
	return s.sessions.Clear(sid)
}

// Profile devuelve la identidad de la sesion si esta presente.
func (s *AuthService) Profile(_ context.Context, sid string) (domain.Identity, error) {
	if strings.TrimSpace(sid) == "" {
		return domain.Identity{}, ErrUnauthenticated
	}
	identity, ok, err := s.sessions.Get(sid)
	if err != nil {
		return domain.Identity{}, err
	}
	if !ok {
		return domain.Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func (s *AuthService) establish(identity domain.Identity) (string, error) {
	sid := uuid.NewString()
	if err := s.sessions.Set(sid, identity, s.sessionTTL); err != nil {
		return "", err
	}
	return sid, nil
}
