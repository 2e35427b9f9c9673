package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models"
)

// StudentService handles student profile operations
type StudentService struct {
	students    StudentStore
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, enrollments EnrollmentStore, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students:    students,
		enrollments: enrollments,
		logger:      logger,
	}
}

// GetProfile returns a student together with the subjects they are enrolled in
func (s *StudentService) GetProfile(ctx context.Context, studentID int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	subjects, err := s.enrollments.ListSubjectsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled subjects: %w", err)
	}

	student.Subjects = subjects

	return student, nil
}

// DeleteAccount removes a student. Enrollments cascade away with the row; the
// caller is required to hold a fresh token, enforced by the middleware.
func (s *StudentService) DeleteAccount(ctx context.Context, studentID int64) error {
	if err := s.students.Delete(ctx, studentID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", studentID).Msg("Student account deleted")

	return nil
}
