package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campushub/registrar/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for name, testcase := range map[string]struct {
		err        error
		wantStatus int
	}{
		"student not found":      {apperrors.ErrStudentNotFound, http.StatusNotFound},
		"subject not found":      {apperrors.ErrSubjectNotFound, http.StatusNotFound},
		"email already exists":   {apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		"subject already exists": {apperrors.ErrSubjectAlreadyExists, http.StatusConflict},
		"subject in use":         {apperrors.ErrSubjectInUse, http.StatusConflict},
		"already enrolled":       {apperrors.ErrAlreadyEnrolled, http.StatusBadRequest},
		"not enrolled":           {apperrors.ErrNotEnrolled, http.StatusBadRequest},
		"invalid credentials":    {apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		"token expired":          {apperrors.ErrTokenExpired, http.StatusUnauthorized},
		"token revoked":          {apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		"token invalid":          {apperrors.ErrTokenInvalid, http.StatusUnauthorized},
		"stale token":            {apperrors.ErrStaleToken, http.StatusUnauthorized},
		"validation failed":      {apperrors.ErrValidationFailed, http.StatusBadRequest},
		"unknown error":          {errors.New("connection reset"), http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			HandleAPIError(c, testcase.err)

			if recorder.Code != testcase.wantStatus {
				t.Errorf("expected status %d, got %d", testcase.wantStatus, recorder.Code)
			}
		})
	}
}

func TestHandleAPIErrorWrappedError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	wrapped := apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled, "already enrolled in subject 3")
	HandleAPIError(c, wrapped)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("wrapped sentinel should keep its mapping, got %d", recorder.Code)
	}
}
