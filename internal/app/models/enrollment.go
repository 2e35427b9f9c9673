package models

import "math"

// Enrollment is the join record linking one student to one subject, carrying
// that student's grades for that subject. At most one enrollment exists per
// (student, subject) pair; the storage layer enforces this with a unique index.
type Enrollment struct {
	ID        int64 `json:"id" db:"id" example:"1"`
	StudentID int64 `json:"student_id" db:"student_id" example:"1"`
	SubjectID int64 `json:"subject_id" db:"subject_id" example:"2"`

	// Grades; each is null until set
	PrelimsGrade  *float64 `json:"prelims_grade" db:"prelims_grade"`
	MidtermsGrade *float64 `json:"midterms_grade" db:"midterms_grade"`
	FinalsGrade   *float64 `json:"finals_grade" db:"finals_grade"`
}

// AverageGrade returns the arithmetic mean of the grades that are present,
// rounded to two decimal places. It is nil, not zero, when no grade is set.
// The value is derived on read and never stored.
func (e *Enrollment) AverageGrade() *float64 {
	var sum float64
	var count int

	for _, grade := range []*float64{e.PrelimsGrade, e.MidtermsGrade, e.FinalsGrade} {
		if grade != nil {
			sum += *grade
			count++
		}
	}

	if count == 0 {
		return nil
	}

	avg := math.Round(sum/float64(count)*100) / 100
	return &avg
}
