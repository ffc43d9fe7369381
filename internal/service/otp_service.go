package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"quickchat/internal/domain"
	"quickchat/internal/repository"
	"quickchat/internal/sms"
)

var (
	ErrMissingPhone    = errors.New("country code and phone number required")
	ErrOTPNotRequested = errors.New("otp not requested")
	ErrOTPExpired      = errors.New("otp expired")
	ErrOTPMismatch     = errors.New("otp mismatch")
)

const otpTTL = 5 * time.Minute

// OTPService emite y verifica codigos OTP de un solo uso por telefono.
type OTPService struct {
	logger *zap.Logger
	otps   repository.OtpRepository
	sender sms.Sender
	ttl    time.Duration
	now    func() time.Time
}

func NewOTPService(logger *zap.Logger, otps repository.OtpRepository, sender sms.Sender, ttl time.Duration) *OTPService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = otpTTL
	}
	return &OTPService{
		logger: logger,
		otps:   otps,
		sender: sender,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Request genera un codigo nuevo para el telefono, pisando cualquier
// codigo anterior sin consumir de la misma clave.
func (s *OTPService) Request(ctx context.Context, countryCode, phoneNumber string) (string, error) {
	countryCode = strings.TrimSpace(countryCode)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if countryCode == "" || phoneNumber == "" {
		return "", ErrMissingPhone
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	expiresAt := s.now().Add(s.ttl)

	key := repository.OtpKey(countryCode, phoneNumber)
	if err := s.otps.Put(ctx, key, domain.OtpRecord{Code: code, ExpiresAt: expiresAt}); err != nil {
		return "", err
	}

	// Entrega simulada: una falla de envio no invalida el codigo emitido.
	if s.sender != nil {
		if err := s.sender.SendOTP(ctx, countryCode+" "+phoneNumber, code, expiresAt); err != nil {
			s.logger.Warn("send otp failed", zap.Error(err), zap.String("phone", countryCode+" "+phoneNumber))
		}
	}

	return code, nil
}

// Verify consume el codigo: exactamente una verificacion exitosa por
// codigo emitido. Un codigo vencido se borra en el primer lookup.
func (s *OTPService) Verify(ctx context.Context, countryCode, phoneNumber, code string) error {
	countryCode = strings.TrimSpace(countryCode)
	phoneNumber = strings.TrimSpace(phoneNumber)
	code = strings.TrimSpace(code)
	if countryCode == "" || phoneNumber == "" {
		return ErrMissingPhone
	}

	key := repository.OtpKey(countryCode, phoneNumber)
	record, err := s.otps.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOTPNotRequested
		}
		return err
	}

	if s.now().After(record.ExpiresAt) {
		if err := s.otps.Delete(ctx, key); err != nil {
			return err
		}
		return ErrOTPExpired
	}
	if record.Code != code {
		return ErrOTPMismatch
	}

	return s.otps.Delete(ctx, key)
}

func generateCode() (string, error) {
	// Uniforme sobre 100000-999999.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
