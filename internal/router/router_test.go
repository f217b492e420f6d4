package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/handler"
)

type fakeRevocations map[string]bool

func (f fakeRevocations) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	return f[tokenID], nil
}

func issue(t *testing.T, svc *auth.JWTService) (string, *auth.Claims) {
	t.Helper()
	token, err := svc.GenerateAccessToken(&auth.Actor{ID: 1, Email: "alice@example.com", Roles: []string{"ROLE_USER"}})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	return token, claims
}

func TestJWTMiddleware(t *testing.T) {
	svc := auth.NewJWTService("router-test-secret")
	token, claims := issue(t, svc)
	_, refreshToken, err := svc.GenerateRefreshToken(1, "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		revoked    fakeRevocations
		wantStatus int
	}{
		{name: "valid bearer token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "missing Bearer prefix", header: token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{name: "refresh token as bearer", header: "Bearer " + refreshToken, wantStatus: http.StatusUnauthorized},
		{
			name:       "token revoked on logout",
			header:     "Bearer " + token,
			revoked:    fakeRevocations{claims.ID: true},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			var seen *auth.Claims
			e.GET("/secured", func(c echo.Context) error {
				seen, _ = c.Get(handler.ContextKeyClaims).(*auth.Claims)
				return c.NoContent(http.StatusOK)
			}, JWTMiddleware(svc, tt.revoked))

			req := httptest.NewRequest(http.MethodGet, "/secured", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, uint(1), seen.UserID)
				assert.Equal(t, claims.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
			}
		})
	}
}

func TestRegister_Routes(t *testing.T) {
	e := echo.New()
	logger := zerolog.Nop()
	svc := auth.NewJWTService("router-test-secret")

	err := Register(e, &logger, svc, fakeRevocations{}, Handlers{
		Auth:     handler.NewAuthHandler(nil),
		Post:     handler.NewPostHandler(nil),
		Comment:  handler.NewCommentHandler(nil),
		Todoline: handler.NewTodolineHandler(nil),
	})
	require.NoError(t, err)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/healthz/", http.StatusOK},
		{http.MethodGet, "/api/v1/todoline", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/todoline/1", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/post", http.StatusUnauthorized},
		{http.MethodPut, "/api/v1/post/1", http.StatusUnauthorized},
		{http.MethodDelete, "/api/v1/comment/1", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/me", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/auth/logout", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/post/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestValidator_FrenchFieldMessages(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	err = v.Validate(&request{Email: "nope", Password: "abc"})
	require.Error(t, err)

	var invalid *apperrors.ValidationError
	require.True(t, errors.As(err, &invalid))
	require.Contains(t, invalid.Fields, "email")
	require.Contains(t, invalid.Fields, "password")
	assert.Contains(t, invalid.Fields["email"], "doit être")
	assert.NotContains(t, invalid.Fields["email"], "Field validation")
	assert.Contains(t, invalid.Fields["password"], "6")

	assert.NoError(t, v.Validate(&request{Email: "alice@example.com", Password: "secret"}))
}
