package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/app/models/dto"
)

// SubjectService handles subject catalog operations
type SubjectService struct {
	subjects SubjectStore
	logger   zerolog.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects SubjectStore, logger zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		logger:   logger,
	}
}

// ListCatalog returns all catalog subjects
func (s *SubjectService) ListCatalog(ctx context.Context) ([]*models.Subject, error) {
	return s.subjects.GetAll(ctx)
}

// GetSubject returns a subject by ID
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

// CreateSubject adds a subject to the catalog. Duplicate code or description
// surfaces as ErrSubjectAlreadyExists.
func (s *SubjectService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		Code:        req.Code,
		Description: req.Description,
		Unit:        req.Unit,
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectId", subject.ID).Str("code", subject.Code).Msg("Subject created")

	return subject, nil
}

// DeleteSubject removes a subject from the catalog. A subject still referenced
// by enrollments fails with ErrSubjectInUse, distinct from a storage failure.
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}
