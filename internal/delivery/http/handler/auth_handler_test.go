package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-clinic-api/internal/delivery/dto"
	"go-clinic-api/internal/delivery/http/middleware"
	"go-clinic-api/internal/usecase"
	"go-clinic-api/pkg/validator"
)

type stubAuthUsecase struct {
	user   *dto.UserResponse
	auth   *dto.AuthResponse
	tokens *dto.TokenResponse
	err    error
}

func (s *stubAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return s.user, s.err
}

func (s *stubAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.auth, s.err
}

func (s *stubAuthUsecase) Logout(ctx context.Context, accessTokenID string) error {
	return s.err
}

func (s *stubAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return s.tokens, s.err
}

func (s *stubAuthUsecase) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	return s.user, s.err
}

func newAuthHandler(stub *stubAuthUsecase) *AuthHandler {
	return NewAuthHandler(stub, validator.NewValidator())
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{
			user: &dto.UserResponse{ID: 1, Name: "Jane", Email: "jane@example.com", Role: "patient"},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"secret1"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{err: usecase.ErrEmailAlreadyExists})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"secret1"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("ShortPassword", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"abc"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		body := decodeResponse(t, rec)
		if body.Message != "Validation failed" {
			t.Errorf("expected validation message, got %q", body.Message)
		}
	})

	t.Run("AdminRoleRejected", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"secret1","role":"admin"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{
			auth: &dto.AuthResponse{
				TokenResponse: dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900},
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"jane@example.com","password":"secret1"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("BadCredentials", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{err: usecase.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Run("Revoked", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{err: usecase.ErrTokenRevoked})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token",
			strings.NewReader(`{"refresh_token":"stale"}`))
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh-token", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetCurrentUserHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{
			user: &dto.UserResponse{ID: 7, Name: "Jane", Role: "patient"},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, uint(7)))
		rec := httptest.NewRecorder()
		h.GetCurrentUser(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("NoAuthContext", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()
		h.GetCurrentUser(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		h := newAuthHandler(&stubAuthUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.TokenIDKey, "token-id"))
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
