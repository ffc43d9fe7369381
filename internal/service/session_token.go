package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

// SessionTokenService firma el id de sesion que viaja en la cookie,
// para que el cliente no pueda fabricar ids arbitrarios.
type SessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func NewSessionTokenService(secret string, ttl time.Duration) *SessionTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "quickchat",
	}
}

func (s *SessionTokenService) Issue(sid string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(sid) == "" {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := sessionClaims{
		SessionID: sid,
		TokenType: "session",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *SessionTokenService) Parse(token string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return "", ErrTokenInvalid
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.TokenType != "session" || claims.SessionID == "" {
		return "", ErrTokenInvalid
	}
	return claims.SessionID, nil
}

// TTL expone la vigencia configurada, usada para el max-age de la cookie.
func (s *SessionTokenService) TTL() time.Duration {
	return s.ttl
}
