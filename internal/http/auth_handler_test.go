package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quickchat/internal/oauth"
	"quickchat/internal/repository"
	"quickchat/internal/service"
)

type mockSmsSender struct {
	lastPhone string
	lastCode  string
}

func (m *mockSmsSender) SendOTP(_ context.Context, phone string, code string, _ time.Time) error {
	m.lastPhone = phone
	m.lastCode = code
	return nil
}

type stubScheduler struct {
	pending []func()
}

func (s *stubScheduler) AfterFunc(_ time.Duration, fn func()) func() {
	s.pending = append(s.pending, fn)
	return func() {}
}

func (s *stubScheduler) fireAll() {
	for _, fn := range s.pending {
		fn()
	}
	s.pending = nil
}

type testEnv struct {
	router    *gin.Engine
	sender    *mockSmsSender
	scheduler *stubScheduler
}

func setupRouter(t *testing.T, providers *oauth.Registry) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	sender := &mockSmsSender{}
	scheduler := &stubScheduler{}

	otpRepo := repository.NewMemoryOtpRepository()
	contactRepo := repository.NewMemoryContactRepository(repository.SeedContacts())
	chatRepo := repository.NewMemoryChatRepository()
	userRepo := repository.NewMemoryUserRepository(repository.SeedUser())

	tokenServ := service.NewSessionTokenService("test-secret", time.Hour)
	otpServ := service.NewOTPService(logger, otpRepo, sender, 0)
	authServ := service.NewAuthService(logger, otpServ, service.NewMemorySessionStore(), time.Hour)
	chatServ := service.NewChatService(logger, chatRepo, contactRepo, scheduler, 0)
	userServ := service.NewUserService(logger, userRepo)

	authH := NewAuthHandler(logger, authServ, otpServ, tokenServ, providers, "")
	chatH := NewChatHandler(logger, contactRepo, chatRepo, chatServ, userServ)

	return &testEnv{
		router:    NewRouter(logger, authH, chatH, tokenServ, authServ),
		sender:    sender,
		scheduler: scheduler,
	}
}

func performRequest(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json body %q: %v", rec.Body.String(), err)
	}
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandlerPhoneOTP_MissingFields(t *testing.T) {
	env := setupRouter(t, nil)

	rec := performRequest(env.router, http.MethodPost, "/auth/phone", map[string]string{
		"countryCode": "+1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Country code and phone number are required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuthHandlerVerifyOTP_NotRequested(t *testing.T) {
	env := setupRouter(t, nil)

	rec := performRequest(env.router, http.MethodPost, "/auth/verify-otp", map[string]string{
		"countryCode": "+1",
		"phoneNumber": "5559999",
		"otp":         "123456",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "OTP not found" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandlerPhoneLogin_Scenario(t *testing.T) {
	env := setupRouter(t, nil)

	// Sin sesion, /profile rechaza.
	rec := performRequest(env.router, http.MethodGet, "/profile", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodPost, "/auth/phone", map[string]string{
		"countryCode": "+1",
		"phoneNumber": "5551234",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.sender.lastCode == "" {
		t.Fatalf("expected otp delivered via sms sender")
	}

	wrong := "000000"
	if wrong == env.sender.lastCode {
		wrong = "000001"
	}
	rec = performRequest(env.router, http.MethodPost, "/auth/verify-otp", map[string]string{
		"countryCode": "+1",
		"phoneNumber": "5551234",
		"otp":         wrong,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Invalid OTP" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodPost, "/auth/verify-otp", map[string]string{
		"countryCode": "+1",
		"phoneNumber": "5551234",
		"otp":         env.sender.lastCode,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in body, got %s", rec.Body.String())
	}
	if user["phone"] != "+1 5551234" || user["provider"] != "phone" {
		t.Fatalf("unexpected user: %v", user)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected session cookie set")
	}

	rec = performRequest(env.router, http.MethodGet, "/profile", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	profileUser, ok := decodeBody(t, rec)["user"].(map[string]any)
	if !ok || profileUser["phone"] != "+1 5551234" {
		t.Fatalf("unexpected profile body: %s", rec.Body.String())
	}

	// Logout limpia la sesion; el mismo token ya no sirve.
	rec = performRequest(env.router, http.MethodGet, "/auth/logout", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rec = performRequest(env.router, http.MethodGet, "/profile", nil, cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", rec.Code)
	}
}

func TestAuthHandlerVerifyOTP_SingleUse(t *testing.T) {
	env := setupRouter(t, nil)

	performRequest(env.router, http.MethodPost, "/auth/phone", map[string]string{
		"countryCode": "+1",
		"phoneNumber": "5551234",
	})
	code := env.sender.lastCode

	rec := performRequest(env.router, http.MethodPost, "/auth/verify-otp", map[string]string{
		"countryCode": "+1", "phoneNumber": "5551234", "otp": code,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodPost, "/auth/verify-otp", map[string]string{
		"countryCode": "+1", "phoneNumber": "5551234", "otp": code,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "OTP not found" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandlerLogout_WithoutSession(t *testing.T) {
	env := setupRouter(t, nil)

	rec := performRequest(env.router, http.MethodGet, "/auth/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected logout to be idempotent, got %d", rec.Code)
	}
}

func TestAuthHandlerOAuth_DisabledProviderNotRouted(t *testing.T) {
	env := setupRouter(t, nil)

	rec := performRequest(env.router, http.MethodGet, "/auth/google", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestAuthHandlerOAuth_BeginRedirects(t *testing.T) {
	providers := oauth.NewRegistry(
		oauth.Credentials{ClientID: "gid", ClientSecret: "gsecret", CallbackURL: "http://localhost/auth/google/callback"},
		oauth.Credentials{},
		oauth.Credentials{},
	)
	env := setupRouter(t, providers)

	rec := performRequest(env.router, http.MethodGet, "/auth/google", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "client_id=gid") || !strings.Contains(location, "state=") {
		t.Fatalf("unexpected redirect location: %q", location)
	}

	// Facebook quedo sin credenciales: la ruta no existe.
	rec = performRequest(env.router, http.MethodGet, "/auth/facebook", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestAuthHandlerOAuthCallback_RejectedWithoutState(t *testing.T) {
	providers := oauth.NewRegistry(
		oauth.Credentials{ClientID: "gid", ClientSecret: "gsecret", CallbackURL: "http://localhost/auth/google/callback"},
		oauth.Credentials{},
		oauth.Credentials{},
	)
	env := setupRouter(t, providers)

	rec := performRequest(env.router, http.MethodGet, "/auth/google/callback?code=abc&state=xyz", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "/login?error=oauth") {
		t.Fatalf("expected failure redirect, got %q", rec.Header().Get("Location"))
	}
}
