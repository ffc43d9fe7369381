package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestRegistry_OnlyConfiguredProviders(t *testing.T) {
	r := NewRegistry(
		Credentials{ClientID: "gid", ClientSecret: "gsecret"},
		Credentials{ClientID: "fid"}, // sin secret: deshabilitado
		Credentials{},
	)

	names := r.Names()
	if len(names) != 1 || names[0] != "google" {
		t.Fatalf("expected only google enabled, got %v", names)
	}
	if _, ok := r.Get("google"); !ok {
		t.Fatalf("expected google provider")
	}
	if _, ok := r.Get("facebook"); ok {
		t.Fatalf("expected facebook disabled")
	}
}

func TestProviderBeginAuth(t *testing.T) {
	r := NewRegistry(
		Credentials{ClientID: "gid", ClientSecret: "gsecret", CallbackURL: "http://localhost/auth/google/callback"},
		Credentials{},
		Credentials{},
	)
	p, ok := r.Get("google")
	if !ok {
		t.Fatalf("expected google provider")
	}

	url := p.BeginAuth("state-123")
	if !strings.Contains(url, "client_id=gid") || !strings.Contains(url, "state=state-123") {
		t.Fatalf("unexpected auth url: %q", url)
	}
	if !strings.Contains(url, "redirect_uri=") {
		t.Fatalf("expected redirect_uri in auth url: %q", url)
	}
}

func TestProviderHandleCallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Authorization"), "tok-1") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"sub-1","name":"Test User","email":"test@example.com","picture":"http://img/avatar.png"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := &Provider{
		name: "google",
		config: &oauth2.Config{
			ClientID:     "gid",
			ClientSecret: "gsecret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		userInfoURL: srv.URL + "/userinfo",
	}

	profile, err := p.HandleCallback(context.Background(), "code-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Subject != "sub-1" || profile.Name != "Test User" || profile.Email != "test@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.Avatar != "http://img/avatar.png" {
		t.Fatalf("expected avatar from string picture, got %q", profile.Avatar)
	}
}

func TestProviderHandleCallback_ObjectPictureIgnored(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"fb-1","name":"Test User","picture":{"data":{"url":"http://img/a.png"}}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := &Provider{
		name: "facebook",
		config: &oauth2.Config{
			ClientID:     "fid",
			ClientSecret: "fsecret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		userInfoURL: srv.URL + "/userinfo",
	}

	profile, err := p.HandleCallback(context.Background(), "code-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Subject != "fb-1" || profile.Avatar != "" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestProviderHandleCallback_MissingSubject(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Nobody"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := &Provider{
		name: "google",
		config: &oauth2.Config{
			ClientID: "gid",
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		userInfoURL: srv.URL + "/userinfo",
	}

	if _, err := p.HandleCallback(context.Background(), "code-1"); err == nil {
		t.Fatalf("expected error for profile without subject")
	}
}
