package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/registrar/internal/pkg/auth"
)

type stubRevocationChecker struct {
	revoked map[string]bool
}

func (s *stubRevocationChecker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

func newTestRouter(jwtService *auth.JWTService, revoked *stubRevocationChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)

	middleware := NewAuthMiddleware(jwtService, revoked)

	router := gin.New()
	protected := router.Group("")
	protected.Use(middleware.JWTAuth())
	{
		protected.GET("/protected", func(c *gin.Context) {
			studentID, _ := StudentID(c)
			c.JSON(http.StatusOK, gin.H{"studentId": studentID})
		})

		fresh := protected.Group("")
		fresh.Use(middleware.FreshRequired())
		fresh.DELETE("/destructive", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	}
	return router
}

func newMiddlewareJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "registrar.test",
	})
}

func doRequest(router *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	jwtService := newMiddlewareJWTService(15 * time.Minute)
	router := newTestRouter(jwtService, &stubRevocationChecker{revoked: map[string]bool{}})

	token, err := jwtService.GenerateAccessToken(42, true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	recorder := doRequest(router, http.MethodGet, "/protected", "Bearer "+token)
	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	jwtService := newMiddlewareJWTService(15 * time.Minute)
	router := newTestRouter(jwtService, &stubRevocationChecker{revoked: map[string]bool{}})

	recorder := doRequest(router, http.MethodGet, "/protected", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", recorder.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	jwtService := newMiddlewareJWTService(-1 * time.Minute)
	router := newTestRouter(jwtService, &stubRevocationChecker{revoked: map[string]bool{}})

	token, err := jwtService.GenerateAccessToken(42, true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	recorder := doRequest(router, http.MethodGet, "/protected", "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", recorder.Code)
	}
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	jwtService := newMiddlewareJWTService(15 * time.Minute)
	router := newTestRouter(jwtService, &stubRevocationChecker{revoked: map[string]bool{}})

	token, err := jwtService.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	recorder := doRequest(router, http.MethodGet, "/protected", "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for refresh token on access endpoint, got %d", recorder.Code)
	}
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	jwtService := newMiddlewareJWTService(15 * time.Minute)
	revoked := &stubRevocationChecker{revoked: map[string]bool{}}
	router := newTestRouter(jwtService, revoked)

	token, err := jwtService.GenerateAccessToken(42, true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := jwtService.ValidateToken(token, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	revoked.revoked[claims.ID] = true

	recorder := doRequest(router, http.MethodGet, "/protected", "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", recorder.Code)
	}
}

func TestFreshRequired(t *testing.T) {
	jwtService := newMiddlewareJWTService(15 * time.Minute)
	router := newTestRouter(jwtService, &stubRevocationChecker{revoked: map[string]bool{}})

	freshToken, err := jwtService.GenerateAccessToken(42, true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	recorder := doRequest(router, http.MethodDelete, "/destructive", "Bearer "+freshToken)
	if recorder.Code != http.StatusOK {
		t.Errorf("fresh token should pass, got %d: %s", recorder.Code, recorder.Body.String())
	}

	staleToken, err := jwtService.GenerateAccessToken(42, false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	recorder = doRequest(router, http.MethodDelete, "/destructive", "Bearer "+staleToken)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("non-fresh token should be rejected with 401, got %d", recorder.Code)
	}

	// Freshness only gates the destructive group; the same token stays valid
	// everywhere else
	recorder = doRequest(router, http.MethodGet, "/protected", "Bearer "+staleToken)
	if recorder.Code != http.StatusOK {
		t.Errorf("non-fresh token should pass plain authenticated endpoints, got %d: %s", recorder.Code, recorder.Body.String())
	}
}
