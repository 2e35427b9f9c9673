package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/registrar/internal/app/models/dto"
	"github.com/campushub/registrar/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextStudentID = "studentID"
	ContextTokenJTI  = "tokenJTI"
	ContextFresh     = "tokenFresh"
)

// RevocationChecker is the part of the revocation list the middleware needs
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware authenticates requests with bearer access tokens
type AuthMiddleware struct {
	jwtService *auth.JWTService
	revoked    RevocationChecker
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, revoked RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		revoked:    revoked,
	}
}

// JWTAuth validates the bearer access token and consults the revocation list
// before letting the request through. On success the student identity, the
// token's jti and its freshness are placed on the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, auth.TokenTypeAccess)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"

			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		// Revocation is checked on every authenticated request; a logged-out
		// token stays rejected even before it expires.
		revoked, err := m.revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
			errorDetail = errorDetail.WithDetails("Failed to check token revocation")

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}
		if revoked {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRevokedToken, "Token revoked")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextTokenJTI, claims.ID)
		c.Set(ContextFresh, claims.Fresh)

		c.Next()
	}
}

// FreshRequired gates operations that mutate account state irreversibly.
// Tokens minted through the refresh exchange are non-fresh and are rejected;
// the student has to log in again.
func (m *AuthMiddleware) FreshRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		fresh, exists := c.Get(ContextFresh)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if isFresh, ok := fresh.(bool); !ok || !isFresh {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeFreshTokenRequired, "Fresh token required")
			errorDetail = errorDetail.WithDetails("This operation requires a token obtained directly from login")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// StudentID extracts the authenticated student's ID from the request context
func StudentID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextStudentID)
	if !exists {
		return 0, false
	}

	studentID, ok := value.(int64)
	return studentID, ok
}

// TokenJTI extracts the authenticated token's identifier from the request context
func TokenJTI(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextTokenJTI)
	if !exists {
		return "", false
	}

	jti, ok := value.(string)
	return jti, ok
}
