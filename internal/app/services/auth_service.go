package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/app/models/dto"
	"github.com/campushub/registrar/internal/pkg/apperrors"
	"github.com/campushub/registrar/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// AuthService handles registration, login and the token lifecycle
type AuthService struct {
	students   StudentStore
	revoked    RevocationStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	students StudentStore,
	revoked RevocationStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		students:   students,
		revoked:    revoked,
		jwtService: jwtService,
		logger:     logger,
	}
}

// normalizeEmail applies the fixed case policy: emails are compared and stored
// lower-cased, so addresses differing only in case name the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateEmail validates an email address after normalization
func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}

	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register creates a new student account. Only a one-way hash of the password
// is stored; the plaintext is never persisted or logged.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Student, error) {
	email := normalizeEmail(req.Email)

	if err := s.validateEmail(email); err != nil {
		return nil, err
	}

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
		Course:   req.Course,
	}

	// The unique index on email decides duplicates; the repository surfaces
	// the violation as ErrEmailAlreadyExists.
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Msg("Student registered")

	return student, nil
}

// Login authenticates a student and issues a fresh access / refresh token pair.
// Unknown email and wrong password produce the same error and both cost a
// bcrypt comparison, so the response carries no hint which one happened.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			auth.CheckDummyPassword(req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up student: %w", err)
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(student.ID)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// Refresh mints a new access token from a refresh token. The new token is
// non-fresh: endpoints gated on freshness will reject it until the student
// logs in again.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.StudentID, false)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Logout revokes the presented access token's identifier. Revoking an already
// revoked identifier is a no-op.
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.revoked.Revoke(ctx, jti); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}

	s.logger.Info().Str("jti", jti).Msg("Token revoked")

	return nil
}
