package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

type stubProfileCache struct {
	entries     map[string]*domain.User
	failing     bool
	invalidated []string
}

func newStubProfileCache() *stubProfileCache {
	return &stubProfileCache{entries: make(map[string]*domain.User)}
}

func (s *stubProfileCache) Get(_ context.Context, username string) (*domain.User, error) {
	if s.failing {
		return nil, errors.New("cache unavailable")
	}
	return s.entries[username], nil
}

func (s *stubProfileCache) Set(_ context.Context, user *domain.User) error {
	if s.failing {
		return errors.New("cache unavailable")
	}
	s.entries[user.Username] = user
	return nil
}

func (s *stubProfileCache) Invalidate(_ context.Context, username string) error {
	s.invalidated = append(s.invalidated, username)
	delete(s.entries, username)
	return nil
}

func getWithClaims(e *echo.Echo, path, username string, roles []domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set("auth.username", username)
		c.Set("auth.roles", roles)
	}
	return c, rec
}

func TestUserHandler_Info(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubAuthService{}, nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/public/info", nil)
	rec := httptest.NewRecorder()
	if err := h.Info(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp infoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Service != "auth-service" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Profile_NoClaims(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubAuthService{}, nil, zerolog.Nop())

	c, _ := getWithClaims(e, "/api/user/profile", "", nil)
	err := h.Profile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Profile_StoreThenCache(t *testing.T) {
	e := newTestEcho()
	cache := newStubProfileCache()
	serviceCalls := 0
	stub := &stubAuthService{
		profileFn: func(_ context.Context, username string) (*domain.User, error) {
			serviceCalls++
			return &domain.User{ID: "u1", Username: username, Email: username + "@example.com", Roles: []domain.Role{domain.RoleUser}}, nil
		},
	}
	h := NewUserHandler(stub, cache, zerolog.Nop())

	// First read misses the cache and hits the store.
	c, rec := getWithClaims(e, "/api/user/profile", "lokesh", []domain.Role{domain.RoleUser})
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || serviceCalls != 1 {
		t.Fatalf("first read: code=%d serviceCalls=%d", rec.Code, serviceCalls)
	}

	// Second read is served from the cache.
	c, rec = getWithClaims(e, "/api/user/profile", "lokesh", []domain.Role{domain.RoleUser})
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || serviceCalls != 1 {
		t.Fatalf("second read: code=%d serviceCalls=%d", rec.Code, serviceCalls)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Username != "lokesh" || len(resp.Roles) != 1 || resp.Roles[0] != "USER" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Profile_CacheFailureFallsBack(t *testing.T) {
	e := newTestEcho()
	cache := newStubProfileCache()
	cache.failing = true
	stub := &stubAuthService{
		profileFn: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{Username: username, Roles: []domain.Role{domain.RoleUser}}, nil
		},
	}
	h := NewUserHandler(stub, cache, zerolog.Nop())

	c, rec := getWithClaims(e, "/api/user/profile", "lokesh", []domain.Role{domain.RoleUser})
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite failing cache, got %d", rec.Code)
	}
}
