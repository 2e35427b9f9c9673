package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/pkg/apperrors"
	"github.com/campushub/registrar/internal/pkg/dberrors"
)

// SubjectRepository handles database operations for the subject catalog
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

// Create inserts a new catalog subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (code, description, unit)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, subject.Code, subject.Description, subject.Unit).Scan(&subject.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, code, description, unit
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Code,
		&subject.Description,
		&subject.Unit,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// GetAll retrieves the whole subject catalog
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT id, code, description, unit
		FROM subjects
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
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

// Delete removes a subject by ID. The foreign key from enrollments restricts
// the delete while students are still enrolled; that violation is surfaced as
// ErrSubjectInUse so the handler can answer with a conflict instead of a
// generic storage failure.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSubjectInUse
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
