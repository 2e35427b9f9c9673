package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	SubjectRepository      *SubjectRepository
	EnrollmentRepository   *EnrollmentRepository
	RevokedTokenRepository *RevokedTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(db),
		SubjectRepository:      NewSubjectRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		RevokedTokenRepository: NewRevokedTokenRepository(db),
	}
}
