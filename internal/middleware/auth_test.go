package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/cuppa/pkg/jwt"
)

// ============================================================================
// Mock TokenValidator
// ============================================================================

type mockValidator struct {
	validateFunc func(token string) (*jwt.Claims, error)
}

func (m *mockValidator) Validate(token string) (*jwt.Claims, error) {
	return m.validateFunc(token)
}

func claimsFor(userID, role string) *jwt.Claims {
	return &jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: userID},
		Role:             role,
	}
}

func acceptingValidator(userID, role string) *mockValidator {
	return &mockValidator{validateFunc: func(string) (*jwt.Claims, error) {
		return claimsFor(userID, role), nil
	}}
}

func rejectingValidator(err error) *mockValidator {
	return &mockValidator{validateFunc: func(string) (*jwt.Claims, error) {
		return nil, err
	}}
}

func requestWithAuth(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/recommendations", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

// ============================================================================
// Auth Tests
// ============================================================================

func TestAuth_RejectsBadHeaders(t *testing.T) {
	t.Parallel()

	headers := []string{"", "token-only", "Bearer", "Bearer ", "Basic abc"}
	for _, header := range headers {
		h := &captureHandler{}
		rr := httptest.NewRecorder()
		Auth(acceptingValidator("user:1", jwt.RoleUser))(h).ServeHTTP(rr, requestWithAuth(header))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rr.Code)
		}
		if h.called {
			t.Errorf("header %q: handler should not be called", header)
		}
	}
}

func TestAuth_ValidToken_PopulatesContext(t *testing.T) {
	t.Parallel()

	h := &captureHandler{}
	rr := httptest.NewRecorder()
	Auth(acceptingValidator("user:ada", jwt.RoleUser))(h).ServeHTTP(rr, requestWithAuth("bearer abc"))

	if !h.called {
		t.Fatal("expected handler to be called")
	}
	if got := GetUserID(h.ctx); got != "user:ada" {
		t.Errorf("expected user:ada, got %q", got)
	}
	if claims := GetClaims(h.ctx); claims == nil || claims.IsAdmin() {
		t.Errorf("expected non-admin claims, got %+v", claims)
	}
}

func TestAuth_ValidatorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"expired", jwt.ErrTokenExpired, `"code":1002`},
		{"wrapped expired", errors.Join(errors.New("ctx"), jwt.ErrTokenExpired), `"code":1002`},
		{"bad signature", jwt.ErrInvalidSignature, `"code":1001`},
		{"other", jwt.ErrInvalidToken, `"code":1003`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			Auth(rejectingValidator(tt.err))(&captureHandler{}).ServeHTTP(rr, requestWithAuth("Bearer x"))

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tt.wantCode) {
				t.Errorf("expected %s in body, got %s", tt.wantCode, rr.Body.String())
			}
		})
	}
}

func TestAuth_WithSignedToken(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	svc := jwt.NewTestService(key, "cuppa-test", time.Hour)
	token, err := svc.Issue("user:signed", jwt.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	h := &captureHandler{}
	rr := httptest.NewRecorder()
	Chain(h, Auth(svc), RequireAdmin).ServeHTTP(rr, requestWithAuth("Bearer "+token))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if GetUserID(h.ctx) != "user:signed" {
		t.Errorf("expected user:signed, got %q", GetUserID(h.ctx))
	}
}

// ============================================================================
// OptionalAuth Tests
// ============================================================================

func TestOptionalAuth_NoToken_ProceedsAnonymous(t *testing.T) {
	t.Parallel()

	h := &captureHandler{}
	rr := httptest.NewRecorder()
	OptionalAuth(acceptingValidator("user:1", jwt.RoleUser))(h).ServeHTTP(rr, requestWithAuth(""))

	if !h.called {
		t.Fatal("expected handler to be called")
	}
	if GetUserID(h.ctx) != "" {
		t.Errorf("expected anonymous, got %q", GetUserID(h.ctx))
	}
}

func TestOptionalAuth_InvalidToken_ProceedsAnonymous(t *testing.T) {
	t.Parallel()

	h := &captureHandler{}
	rr := httptest.NewRecorder()
	OptionalAuth(rejectingValidator(jwt.ErrTokenExpired))(h).ServeHTTP(rr, requestWithAuth("Bearer stale"))

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if GetUserID(h.ctx) != "" {
		t.Errorf("expected anonymous, got %q", GetUserID(h.ctx))
	}
}

func TestOptionalAuth_ValidToken_SetsUser(t *testing.T) {
	t.Parallel()

	h := &captureHandler{}
	rr := httptest.NewRecorder()
	OptionalAuth(acceptingValidator("user:bo", jwt.RoleUser))(h).ServeHTTP(rr, requestWithAuth("Bearer ok"))

	if GetUserID(h.ctx) != "user:bo" {
		t.Errorf("expected user:bo, got %q", GetUserID(h.ctx))
	}
}

// ============================================================================
// RequireAdmin Tests
// ============================================================================

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		claims *jwt.Claims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"user role", claimsFor("user:1", jwt.RoleUser), http.StatusForbidden},
		{"admin role", claimsFor("user:2", jwt.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/v1/quiz/questions", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rr := httptest.NewRecorder()
			RequireAdmin(&captureHandler{}).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

// ============================================================================
// Context Helper Tests
// ============================================================================

func TestContextHelpers_Missing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if GetUserID(ctx) != "" {
		t.Error("expected empty user id")
	}
	if GetClaims(ctx) != nil {
		t.Error("expected nil claims")
	}

	ctx = context.WithValue(ctx, UserIDKey, 7)
	if GetUserID(ctx) != "" {
		t.Error("expected empty user id for wrong type")
	}
}
