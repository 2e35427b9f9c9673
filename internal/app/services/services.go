package services

import (
	"context"

	"github.com/campushub/registrar/internal/app/models"
)

// Storage interfaces consumed by the services. The pgx repositories in
// internal/app/repositories satisfy them; tests substitute in-memory fakes.

// StudentStore persists student accounts
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// SubjectStore persists the subject catalog
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore persists the student/subject join records
type EnrollmentStore interface {
	Create(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error)
	GetByPair(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error)
	Delete(ctx context.Context, studentID, subjectID int64) error
	UpdateGrades(ctx context.Context, enrollment *models.Enrollment) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	ListSubjectsByStudent(ctx context.Context, studentID int64) ([]*models.Subject, error)
}

// RevocationStore persists revoked token identifiers
type RevocationStore interface {
	Revoke(ctx context.Context, jti string) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
