package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"quickchat/internal/domain"
)

var ErrProfileIncomplete = errors.New("provider profile incomplete")

// Credentials es el par de credenciales de un proveedor; un par ausente
// deshabilita ese camino de login en silencio.
type Credentials struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

func (c Credentials) configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Provider adapta un proveedor OAuth2 externo con el par de capacidades
// beginAuth / handleCallback.
type Provider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
}

func (p *Provider) Name() string {
	return p.name
}

// BeginAuth devuelve la URL de autorizacion del proveedor para el state dado.
func (p *Provider) BeginAuth(state string) string {
	return p.config.AuthCodeURL(state)
}

// HandleCallback intercambia el codigo de autorizacion y normaliza el
// perfil del proveedor.
func (p *Provider) HandleCallback(ctx context.Context, code string) (domain.OAuthProfile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domain.OAuthProfile{}, fmt.Errorf("oauth exchange: %w", err)
	}

	resp, err := p.config.Client(ctx, token).Get(p.userInfoURL)
	if err != nil {
		return domain.OAuthProfile{}, fmt.Errorf("oauth userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.OAuthProfile{}, fmt.Errorf("oauth userinfo status %d", resp.StatusCode)
	}

	var raw struct {
		Sub      string          `json:"sub"`
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Username string          `json:"username"`
		Email    string          `json:"email"`
		Picture  json.RawMessage `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.OAuthProfile{}, fmt.Errorf("oauth userinfo decode: %w", err)
	}

	profile := domain.OAuthProfile{
		Subject: raw.Sub,
		Name:    raw.Name,
		Email:   raw.Email,
	}
	if profile.Subject == "" {
		profile.Subject = raw.ID
	}
	if profile.Name == "" {
		profile.Name = raw.Username
	}
	// Google entrega picture como string; Facebook como objeto anidado,
	// que se ignora.
	var avatar string
	if len(raw.Picture) > 0 && json.Unmarshal(raw.Picture, &avatar) == nil {
		profile.Avatar = avatar
	}

	if profile.Subject == "" {
		return domain.OAuthProfile{}, ErrProfileIncomplete
	}
	return profile, nil
}

// Registry mantiene los providers habilitados por configuracion.
type Registry struct {
	providers map[string]*Provider
	order     []string
}

// NewRegistry construye adapters solo para los pares de credenciales
// presentes.
func NewRegistry(google, facebook, instagram Credentials) *Registry {
	r := &Registry{providers: make(map[string]*Provider)}
	if google.configured() {
		r.add(&Provider{
			name: domain.ProviderGoogle,
			config: &oauth2.Config{
				ClientID:     google.ClientID,
				ClientSecret: google.ClientSecret,
				RedirectURL:  google.CallbackURL,
				Endpoint:     endpoints.Google,
				Scopes:       []string{"openid", "profile", "email"},
			},
			userInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		})
	}
	if facebook.configured() {
		r.add(&Provider{
			name: domain.ProviderFacebook,
			config: &oauth2.Config{
				ClientID:     facebook.ClientID,
				ClientSecret: facebook.ClientSecret,
				RedirectURL:  facebook.CallbackURL,
				Endpoint:     endpoints.Facebook,
				Scopes:       []string{"email", "public_profile"},
			},
			userInfoURL: "https://graph.facebook.com/me?fields=id,name,email,picture",
		})
	}
	if instagram.configured() {
		r.add(&Provider{
			name: domain.ProviderInstagram,
			config: &oauth2.Config{
				ClientID:     instagram.ClientID,
				ClientSecret: instagram.ClientSecret,
				RedirectURL:  instagram.CallbackURL,
				Endpoint:     endpoints.Instagram,
				Scopes:       []string{"user_profile"},
			},
			userInfoURL: "https://graph.instagram.com/me?fields=id,username",
		})
	}
	return r
}

func (r *Registry) add(p *Provider) {
	r.providers[p.name] = p
	r.order = append(r.order, p.name)
}

func (r *Registry) Get(name string) (*Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names devuelve los providers habilitados en orden de registro.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
