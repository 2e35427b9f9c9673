package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models/dto"
	"github.com/campushub/registrar/internal/pkg/apperrors"
	"github.com/campushub/registrar/internal/pkg/auth"
)

func newTestAuthService() (*AuthService, *fakeStudentStore, *fakeRevocationStore, *auth.JWTService) {
	students := newFakeStudentStore()
	revoked := newFakeRevocationStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "registrar.test",
	})

	service := NewAuthService(students, revoked, jwtService, zerolog.Nop())
	return service, students, revoked, jwtService
}

func registerTestStudent(t *testing.T, service *AuthService, email string) int64 {
	t.Helper()

	student, err := service.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Juan dela Cruz",
		Email:    email,
		Password: "s3cret-password",
		Course:   "BSCS",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return student.ID
}

func TestRegister(t *testing.T) {
	service, students, _, _ := newTestAuthService()

	studentID := registerTestStudent(t, service, "Juan@Example.COM")

	stored, err := students.GetByID(context.Background(), studentID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if stored.Email != "juan@example.com" {
		t.Errorf("expected stored email to be lower-cased, got %q", stored.Email)
	}
	if stored.Password == "s3cret-password" {
		t.Error("password stored in plaintext")
	}
	if !auth.CheckPassword(stored.Password, "s3cret-password") {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _, _ := newTestAuthService()

	registerTestStudent(t, service, "juan@example.com")

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Impostor",
		Email:    "JUAN@example.com",
		Password: "another-password",
		Course:   "BSIT",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	service, _, _, _ := newTestAuthService()

	for name, req := range map[string]*dto.RegisterRequest{
		"empty email":    {Name: "A", Email: "", Password: "long-enough-pass", Course: "BSCS"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "long-enough-pass", Course: "BSCS"},
		"short password": {Name: "A", Email: "a@example.com", Password: "short", Course: "BSCS"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := service.Register(context.Background(), req); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	service, _, _, jwtService := newTestAuthService()

	studentID := registerTestStudent(t, service, "juan@example.com")

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if tokens.TokenType != "Bearer" {
		t.Errorf("expected token type Bearer, got %q", tokens.TokenType)
	}

	claims, err := jwtService.ValidateToken(tokens.AccessToken, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("validating access token: %v", err)
	}
	if claims.StudentID != studentID {
		t.Errorf("expected studentID %d in claims, got %d", studentID, claims.StudentID)
	}
	if !claims.Fresh {
		t.Error("access token from login should be fresh")
	}

	if _, err := jwtService.ValidateToken(tokens.RefreshToken, auth.TokenTypeRefresh); err != nil {
		t.Fatalf("validating refresh token: %v", err)
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	service, _, _, _ := newTestAuthService()

	registerTestStudent(t, service, "juan@example.com")

	if _, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "JUAN@Example.Com",
		Password: "s3cret-password",
	}); err != nil {
		t.Errorf("login with differently-cased email failed: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	service, _, _, _ := newTestAuthService()

	registerTestStudent(t, service, "juan@example.com")

	// Unknown email and wrong password must be indistinguishable
	for name, req := range map[string]*dto.LoginRequest{
		"unknown email":  {Email: "nobody@example.com", Password: "s3cret-password"},
		"wrong password": {Email: "juan@example.com", Password: "wrong-password"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := service.Login(context.Background(), req); !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	service, _, _, jwtService := newTestAuthService()

	registerTestStudent(t, service, "juan@example.com")

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := service.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	claims, err := jwtService.ValidateToken(refreshed.AccessToken, auth.TokenTypeAccess)
	if err != nil {
		t.Fatalf("validating refreshed access token: %v", err)
	}
	if claims.Fresh {
		t.Error("access token minted through refresh must not be fresh")
	}
	if refreshed.RefreshToken != "" {
		t.Error("refresh exchange should not issue a new refresh token")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	service, _, _, _ := newTestAuthService()

	registerTestStudent(t, service, "juan@example.com")

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := service.Refresh(context.Background(), tokens.AccessToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for access token, got %v", err)
	}
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	service, _, _, jwtService := newTestAuthService()

	registerTestStudent(t, service, "juan@example.com")

	tokens, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := jwtService.ValidateToken(tokens.RefreshToken, auth.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("validating refresh token: %v", err)
	}

	if err := service.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := service.Refresh(context.Background(), tokens.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	service, _, revoked, _ := newTestAuthService()

	if err := service.Logout(context.Background(), "some-jti"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := service.Logout(context.Background(), "some-jti"); err != nil {
		t.Errorf("second Logout of same jti should succeed, got %v", err)
	}

	isRevoked, err := revoked.IsRevoked(context.Background(), "some-jti")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !isRevoked {
		t.Error("jti should be revoked after logout")
	}
}
