package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/pkg/apperrors"
	"github.com/campushub/registrar/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for the enrollment join table
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new enrollment with all grades null. The unique index on
// (student_id, subject_id) is what makes a concurrent duplicate enroll lose
// with ErrAlreadyEnrolled instead of creating a second row; a check-then-insert
// here would not be race-free.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "subject_id").
		Values(studentID, subjectID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment insert query: %w", err)
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		SubjectID: subjectID,
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_id_subject_id_key") {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// GetByPair retrieves the enrollment linking a student to a subject
func (r *EnrollmentRepository) GetByPair(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "subject_id", "prelims_grade", "midterms_grade", "finals_grade").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "subject_id": subjectID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment select query: %w", err)
	}

	var enrollment models.Enrollment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.SubjectID,
		&enrollment.PrelimsGrade,
		&enrollment.MidtermsGrade,
		&enrollment.FinalsGrade,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotEnrolled
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// Delete removes the enrollment linking a student to a subject
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID, subjectID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "subject_id": subjectID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enrollment delete query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// UpdateGrades writes the three grade columns of an enrollment in one
// statement, so a partial update commits atomically or not at all.
func (r *EnrollmentRepository) UpdateGrades(ctx context.Context, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("prelims_grade", enrollment.PrelimsGrade).
		Set("midterms_grade", enrollment.MidtermsGrade).
		Set("finals_grade", enrollment.FinalsGrade).
		Where(squirrel.Eq{"id": enrollment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build grade update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating grades: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}

	return nil
}

// ListByStudent retrieves a student's enrollments in enrollment order
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "subject_id", "prelims_grade", "midterms_grade", "finals_grade").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.SubjectID,
			&enrollment.PrelimsGrade,
			&enrollment.MidtermsGrade,
			&enrollment.FinalsGrade,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListSubjectsByStudent retrieves the subjects a student is enrolled in,
// joined through the enrollment table, in enrollment order.
func (r *EnrollmentRepository) ListSubjectsByStudent(ctx context.Context, studentID int64) ([]*models.Subject, error) {
	query := `
		SELECT s.id, s.code, s.description, s.unit
		FROM subjects s
		JOIN enrollments e ON e.subject_id = s.id
		WHERE e.student_id = $1
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Code,
			&subject.Description,
			&subject.Unit,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}
