package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content. Fresh marks tokens obtained directly from
// login; tokens minted through the refresh exchange are non-fresh and are
// rejected by endpoints that require a fresh credential.
type Claims struct {
	StudentID int64     `json:"studentId"`
	Fresh     bool      `json:"fresh"`
	TokenType TokenType `json:"tokenType"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed access token for a student.
func (s *JWTService) GenerateAccessToken(studentID int64, fresh bool) (string, error) {
	return s.generate(studentID, TokenTypeAccess, fresh, s.config.AccessTokenExp)
}

// GenerateRefreshToken creates a signed refresh token for a student.
// Refresh tokens are never fresh; they exist only to mint new access tokens.
func (s *JWTService) GenerateRefreshToken(studentID int64) (string, error) {
	return s.generate(studentID, TokenTypeRefresh, false, s.config.RefreshTokenExp)
}

// GenerateTokenPair creates the fresh access / refresh token pair issued on login.
func (s *JWTService) GenerateTokenPair(studentID int64) (accessToken, refreshToken string, expiresIn, refreshExpiresIn int, err error) {
	accessToken, err = s.GenerateAccessToken(studentID, true)
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err = s.GenerateRefreshToken(studentID)
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create refresh token: %w", err)
	}

	// Token durations in seconds
	expiresIn = int(s.config.AccessTokenExp.Seconds())
	refreshExpiresIn = int(s.config.RefreshTokenExp.Seconds())

	return accessToken, refreshToken, expiresIn, refreshExpiresIn, nil
}

func (s *JWTService) generate(studentID int64, tokenType TokenType, fresh bool, expiry time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		StudentID: studentID,
		Fresh:     fresh,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", studentID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken validates a token and checks it carries the expected type.
func (s *JWTService) ValidateToken(tokenString string, wantType TokenType) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.StudentID <= 0 || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	// An access token must never pass where a refresh token is expected and
	// vice versa.
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetAccessTokenExpiry returns the configured access token lifetime
func (s *JWTService) GetAccessTokenExpiry() time.Duration {
	return s.config.AccessTokenExp
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	// Otherwise just return the entire header value as the token
	return authHeader, nil
}
