package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn      func(ctx context.Context, username, password string) (string, error)
	createUserFn func(ctx context.Context, username, email, password string, roles []domain.Role) (*domain.User, error)
	profileFn    func(ctx context.Context, username string) (*domain.User, error)
	statsFn      func(ctx context.Context) (int64, int64, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CreateUser(ctx context.Context, username, email, password string, roles []domain.Role) (*domain.User, error) {
	return s.createUserFn(ctx, username, email, password, roles)
}

func (s *stubAuthService) Profile(ctx context.Context, username string) (*domain.User, error) {
	return s.profileFn(ctx, username)
}

func (s *stubAuthService) Stats(ctx context.Context) (int64, int64, error) {
	return s.statsFn(ctx)
}

func (s *stubAuthService) BootstrapAdmin(context.Context) error { return nil }

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, username, email, password string) (*domain.User, error) {
			if username != "lokesh" || email != "lokesh@example.com" || password != "123456" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &domain.User{
				ID:       "u1",
				Username: username,
				Email:    email,
				Roles:    []domain.Role{domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/auth/register", `{"username":"lokesh","email":"lokesh@example.com","password":"123456"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "lokesh" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	roles, ok := resp["roles"].([]any)
	if !ok || len(roles) != 1 || roles[0] != "USER" {
		t.Fatalf("expected roles [USER], got %v", resp["roles"])
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrDuplicateUsername
		},
	}
	h := NewAuthHandler(stub)

	c, _ := postJSON(e, "/api/auth/register", `{"username":"bob","email":"bob@example.com","password":"123456"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername passthrough, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := []string{
		"not-json",
		`{"username":"bob"}`,
		`{"username":"bob","email":"not-an-email","password":"123456"}`,
		`{"username":"bob","email":"bob@example.com","password":"123"}`,
	}
	for _, body := range cases {
		c, _ := postJSON(e, "/api/auth/register", body)
		err := h.Register(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, error) {
			if username != "lokesh" || password != "123456" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := postJSON(e, "/api/auth/login", `{"username":"lokesh","password":"123456"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := postJSON(e, "/api/auth/login", `{"username":"ghost","password":"nope"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}
