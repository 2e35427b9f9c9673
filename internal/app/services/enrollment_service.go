package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/app/models/dto"
)

// EnrollmentService enforces the enrollment and grading rules over the
// (student, subject) join records.
type EnrollmentService struct {
	enrollments EnrollmentStore
	subjects    SubjectStore
	students    StudentStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollments EnrollmentStore,
	subjects SubjectStore,
	students StudentStore,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		subjects:    subjects,
		students:    students,
		logger:      logger,
	}
}

// Enroll links a student to a subject with all grades null. A duplicate pair,
// including one created by a racing request, loses at the storage layer with
// ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.Create(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", studentID).Int64("subjectId", subjectID).Msg("Student enrolled")

	return enrollment, nil
}

// Unenroll removes the link between a student and a subject, discarding the
// grades carried on it. Fails with ErrNotEnrolled when no link exists.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, subjectID int64) error {
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return err
	}

	if err := s.enrollments.Delete(ctx, studentID, subjectID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", studentID).Int64("subjectId", subjectID).Msg("Student unenrolled")

	return nil
}

// GetEnrolledSubject returns subject details only if the student is enrolled in it
func (s *EnrollmentService) GetEnrolledSubject(ctx context.Context, studentID, subjectID int64) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollments.GetByPair(ctx, studentID, subjectID); err != nil {
		return nil, err
	}

	return subject, nil
}

// GetGrades returns the enrollment record carrying a student's grades for a subject
func (s *EnrollmentService) GetGrades(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	return s.enrollments.GetByPair(ctx, studentID, subjectID)
}

// UpdateGrades applies a partial grade update: each present field overwrites
// the stored value, absent fields are left untouched. The write is a single
// statement, so it commits atomically or not at all.
func (s *EnrollmentService) UpdateGrades(ctx context.Context, studentID, subjectID int64, req *dto.UpdateGradesRequest) (*models.Enrollment, error) {
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.GetByPair(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}

	if req.PrelimsGrade != nil {
		enrollment.PrelimsGrade = req.PrelimsGrade
	}
	if req.MidtermsGrade != nil {
		enrollment.MidtermsGrade = req.MidtermsGrade
	}
	if req.FinalsGrade != nil {
		enrollment.FinalsGrade = req.FinalsGrade
	}

	if err := s.enrollments.UpdateGrades(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// ListSubjects returns the subjects a student is enrolled in, in enrollment order
func (s *EnrollmentService) ListSubjects(ctx context.Context, studentID int64) ([]*models.Subject, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	return s.enrollments.ListSubjectsByStudent(ctx, studentID)
}

// ListAllGrades returns one enrollment per subject the student is enrolled in,
// in enrollment order.
func (s *EnrollmentService) ListAllGrades(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	return s.enrollments.ListByStudent(ctx, studentID)
}
