package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/app/models/dto"
	"github.com/campushub/registrar/internal/pkg/apperrors"
)

func TestCreateSubject(t *testing.T) {
	subjects := newFakeSubjectStore()
	service := NewSubjectService(subjects, zerolog.Nop())

	subject, err := service.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
		Code:        "CS101",
		Description: "Introduction to Computing",
		Unit:        3,
	})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}
	if subject.ID == 0 {
		t.Error("created subject should have an ID assigned")
	}

	_, err = service.CreateSubject(context.Background(), &dto.CreateSubjectRequest{
		Code:        "CS101",
		Description: "Another description",
		Unit:        3,
	})
	if !errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
		t.Errorf("expected ErrSubjectAlreadyExists, got %v", err)
	}
}

func TestCreateSubjectDuplicateDescription(t *testing.T) {
	subjects := newFakeSubjectStore()
	service := NewSubjectService(subjects, zerolog.Nop())
	ctx := context.Background()

	if _, err := service.CreateSubject(ctx, &dto.CreateSubjectRequest{
		Code:        "CS101",
		Description: "Introduction to Computing",
		Unit:        3,
	}); err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}

	// Description is unique on its own, even under a different code
	_, err := service.CreateSubject(ctx, &dto.CreateSubjectRequest{
		Code:        "CS999",
		Description: "Introduction to Computing",
		Unit:        3,
	})
	if !errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
		t.Errorf("expected ErrSubjectAlreadyExists for duplicate description, got %v", err)
	}
}

func TestListCatalog(t *testing.T) {
	subjects := newFakeSubjectStore()
	service := NewSubjectService(subjects, zerolog.Nop())
	ctx := context.Background()

	for _, code := range []string{"CS101", "MATH201", "PHYS101"} {
		if _, err := service.CreateSubject(ctx, &dto.CreateSubjectRequest{
			Code:        code,
			Description: code + " description",
			Unit:        3,
		}); err != nil {
			t.Fatalf("CreateSubject(%s): %v", code, err)
		}
	}

	catalog, err := service.ListCatalog(ctx)
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if len(catalog) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(catalog))
	}
	for i, code := range []string{"CS101", "MATH201", "PHYS101"} {
		if catalog[i].Code != code {
			t.Errorf("expected subject %d to be %s, got %s", i, code, catalog[i].Code)
		}
	}
}

func TestGetSubjectNotFound(t *testing.T) {
	service := NewSubjectService(newFakeSubjectStore(), zerolog.Nop())

	if _, err := service.GetSubject(context.Background(), 42); !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestDeleteSubject(t *testing.T) {
	subjects := newFakeSubjectStore()
	service := NewSubjectService(subjects, zerolog.Nop())
	ctx := context.Background()

	subject, err := service.CreateSubject(ctx, &dto.CreateSubjectRequest{
		Code:        "CS101",
		Description: "Introduction to Computing",
		Unit:        3,
	})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}

	if err := service.DeleteSubject(ctx, subject.ID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}

	if err := service.DeleteSubject(ctx, subject.ID); !errors.Is(err, apperrors.ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestDeleteSubjectWithEnrollments(t *testing.T) {
	students := newFakeStudentStore()
	subjects := newFakeSubjectStore()
	enrollments := newFakeEnrollmentStore(subjects)
	service := NewSubjectService(subjects, zerolog.Nop())
	ctx := context.Background()

	student := &models.Student{Name: "Juan", Email: "juan@example.com", Password: "hash", Course: "BSCS"}
	if err := students.Create(ctx, student); err != nil {
		t.Fatalf("creating student: %v", err)
	}

	subject, err := service.CreateSubject(ctx, &dto.CreateSubjectRequest{
		Code:        "CS101",
		Description: "Introduction to Computing",
		Unit:        3,
	})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}

	if _, err := enrollments.Create(ctx, student.ID, subject.ID); err != nil {
		t.Fatalf("creating enrollment: %v", err)
	}

	if err := service.DeleteSubject(ctx, subject.ID); !errors.Is(err, apperrors.ErrSubjectInUse) {
		t.Errorf("expected ErrSubjectInUse, got %v", err)
	}

	// The subject survives the failed delete
	if _, err := service.GetSubject(ctx, subject.ID); err != nil {
		t.Errorf("subject should still exist after refused delete: %v", err)
	}
}
