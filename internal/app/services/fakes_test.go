package services

import (
	"context"
	"sync"

	"github.com/campushub/registrar/internal/app/models"
	"github.com/campushub/registrar/internal/pkg/apperrors"
)

// In-memory stores mirroring the error contract of the pgx repositories.

type fakeStudentStore struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	f.nextID++
	student.ID = f.nextID
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, student := range f.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeSubjectStore struct {
	mu       sync.Mutex
	nextID   int64
	subjects map[int64]*models.Subject

	// When linked, Delete refuses subjects that still have enrollments,
	// matching the RESTRICT foreign key.
	enrollments *fakeEnrollmentStore
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: make(map[int64]*models.Subject)}
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Code and description are each globally unique, like the real table
	for _, existing := range f.subjects {
		if existing.Code == subject.Code || existing.Description == subject.Description {
			return apperrors.ErrSubjectAlreadyExists
		}
	}

	f.nextID++
	subject.ID = f.nextID
	copied := *subject
	f.subjects[subject.ID] = &copied
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subject, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	copied := *subject
	return &copied, nil
}

func (f *fakeSubjectStore) GetAll(_ context.Context) ([]*models.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subjects := make([]*models.Subject, 0, len(f.subjects))
	for id := int64(1); id <= f.nextID; id++ {
		if subject, ok := f.subjects[id]; ok {
			copied := *subject
			subjects = append(subjects, &copied)
		}
	}
	return subjects, nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}

	if f.enrollments != nil && f.enrollments.subjectInUse(id) {
		return apperrors.ErrSubjectInUse
	}

	delete(f.subjects, id)
	return nil
}

type fakeEnrollmentStore struct {
	mu          sync.Mutex
	nextID      int64
	enrollments []*models.Enrollment

	subjects *fakeSubjectStore
}

func newFakeEnrollmentStore(subjects *fakeSubjectStore) *fakeEnrollmentStore {
	store := &fakeEnrollmentStore{subjects: subjects}
	if subjects != nil {
		subjects.enrollments = store
	}
	return store
}

func (f *fakeEnrollmentStore) subjectInUse(subjectID int64) bool {
	for _, enrollment := range f.enrollments {
		if enrollment.SubjectID == subjectID {
			return true
		}
	}
	return false
}

func (f *fakeEnrollmentStore) Create(_ context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.enrollments {
		if existing.StudentID == studentID && existing.SubjectID == subjectID {
			return nil, apperrors.ErrAlreadyEnrolled
		}
	}

	f.nextID++
	enrollment := &models.Enrollment{
		ID:        f.nextID,
		StudentID: studentID,
		SubjectID: subjectID,
	}
	f.enrollments = append(f.enrollments, enrollment)

	copied := *enrollment
	return &copied, nil
}

func (f *fakeEnrollmentStore) GetByPair(_ context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, enrollment := range f.enrollments {
		if enrollment.StudentID == studentID && enrollment.SubjectID == subjectID {
			copied := *enrollment
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotEnrolled
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, studentID, subjectID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, enrollment := range f.enrollments {
		if enrollment.StudentID == studentID && enrollment.SubjectID == subjectID {
			f.enrollments = append(f.enrollments[:i], f.enrollments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotEnrolled
}

func (f *fakeEnrollmentStore) UpdateGrades(_ context.Context, updated *models.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, enrollment := range f.enrollments {
		if enrollment.ID == updated.ID {
			enrollment.PrelimsGrade = updated.PrelimsGrade
			enrollment.MidtermsGrade = updated.MidtermsGrade
			enrollment.FinalsGrade = updated.FinalsGrade
			return nil
		}
	}
	return apperrors.ErrNotEnrolled
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*models.Enrollment
	for _, enrollment := range f.enrollments {
		if enrollment.StudentID == studentID {
			copied := *enrollment
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeEnrollmentStore) ListSubjectsByStudent(ctx context.Context, studentID int64) ([]*models.Subject, error) {
	f.mu.Lock()
	var subjectIDs []int64
	for _, enrollment := range f.enrollments {
		if enrollment.StudentID == studentID {
			subjectIDs = append(subjectIDs, enrollment.SubjectID)
		}
	}
	f.mu.Unlock()

	var subjects []*models.Subject
	for _, id := range subjectIDs {
		subject, err := f.subjects.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]bool)}
}

func (f *fakeRevocationStore) Revoke(_ context.Context, jti string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.revoked[jti] = true
	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.revoked[jti], nil
}
